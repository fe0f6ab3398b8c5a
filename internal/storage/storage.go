// Package storage provides the durable key-value store backing session and
// preference persistence. Values are JSON files under a data directory, each
// wrapped with a write timestamp and optional expiry; expired items are
// removed on read and reported absent.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Well-known keys used by the app layer.
const (
	KeyToken         = "token"
	KeyUser          = "user"
	KeyPreferences   = "userPreferences"
	KeyLanguage      = "selectedLanguage"
	KeyTheme         = "selectedTheme"
	KeySearchHistory = "searchHistory"
)

const defaultDir = "~/.local/share/sahayak"

// DefaultDir returns the default storage directory.
func DefaultDir() string {
	return defaultDir
}

// item is the on-disk envelope. ExpiryMS of zero means the value never
// expires.
type item struct {
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
	ExpiryMS  int64  `json:"expiry,omitempty"`
}

// Store reads and writes expiry-wrapped string values.
type Store struct {
	dir string
	now func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open prepares the storage directory, creating it as needed. An empty dir
// uses the default under the user's home.
func Open(dir string, opts ...Option) (*Store, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	s := &Store{dir: resolved, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Set writes a value with no expiry.
func (s *Store) Set(key, value string) error {
	return s.SetWithExpiry(key, value, 0)
}

// SetWithExpiry writes a value that Get will report absent once ttl elapses.
// A non-positive ttl means the value never expires.
func (s *Store) SetWithExpiry(key, value string, ttl time.Duration) error {
	it := item{Value: value, Timestamp: s.now().UnixMilli()}
	if ttl > 0 {
		it.ExpiryMS = ttl.Milliseconds()
	}
	raw, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), raw, 0o600); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Get returns the stored value. Missing, malformed, and expired items all
// report absent; malformed and expired files are cleaned up on the way out.
func (s *Store) Get(key string) (string, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	var it item
	if err := json.Unmarshal(raw, &it); err != nil {
		_ = os.Remove(s.path(key))
		return "", false
	}
	if it.ExpiryMS > 0 && s.now().UnixMilli() >= it.Timestamp+it.ExpiryMS {
		_ = os.Remove(s.path(key))
		return "", false
	}
	return it.Value, true
}

// GetJSON decodes the stored value into dest.
func (s *Store) GetJSON(key string, dest any) bool {
	value, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false
	}
	return true
}

// SetJSON encodes value as JSON and stores it with no expiry.
func (s *Store) SetJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// Remove deletes a key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitize(key)+".json")
}

// sanitize keeps key-derived filenames to a safe character set.
func sanitize(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func resolveDir(dir string) (string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		trimmed = defaultDir
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
