package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetRemoveRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set(KeyToken, "abc123"))

	got, ok := s.Get(KeyToken)
	require.True(t, ok)
	assert.Equal(t, "abc123", got)

	require.NoError(t, s.Remove(KeyToken))
	_, ok = s.Get(KeyToken)
	assert.False(t, ok)

	// Removing again is not an error.
	require.NoError(t, s.Remove(KeyToken))
}

func TestStore_ExpiredValueReportedAbsent(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s, err := Open(t.TempDir(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	require.NoError(t, s.SetWithExpiry(KeyLanguage, "hi", time.Minute))

	_, ok := s.Get(KeyLanguage)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = s.Get(KeyLanguage)
	assert.False(t, ok, "value must expire once its ttl elapses")

	// Expired file is cleaned up, not just masked.
	_, ok = s.Get(KeyLanguage)
	assert.False(t, ok)
}

func TestStore_MalformedFileIsAbsentAndRemoved(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "selectedTheme.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := s.Get(KeyTheme)
	assert.False(t, ok)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "malformed file should be removed on read")
}

func TestStore_JSONHelpers(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	history := []string{"wheat", "rice"}
	require.NoError(t, s.SetJSON(KeySearchHistory, history))

	var got []string
	require.True(t, s.GetJSON(KeySearchHistory, &got))
	assert.Equal(t, history, got)

	var wrong int
	assert.False(t, s.GetJSON(KeySearchHistory, &wrong))
}

func TestOpen_ExpandsHomeAndCreatesDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyTheme, "dark"))

	_, statErr := os.Stat(filepath.Join(home, ".local", "share", "sahayak", "selectedTheme.json"))
	assert.NoError(t, statErr)
}
