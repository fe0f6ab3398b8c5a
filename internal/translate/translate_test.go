package translate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishisahayak/sahayak/internal/store"
)

type fakeTranslator struct {
	calls atomic.Int64
	fn    func(text, from, to string) (string, error)
}

func (f *fakeTranslator) Translate(_ context.Context, text, from, to string) (string, error) {
	f.calls.Add(1)
	return f.fn(text, from, to)
}

func TestIsSupported(t *testing.T) {
	for _, code := range []string{"en", "hi", "te", "ta", "bn", "gu", "mr", "pa"} {
		assert.True(t, IsSupported(code), code)
	}
	assert.False(t, IsSupported("fr"))
	assert.False(t, IsSupported(""))
}

func TestLoad_StaleThenFreshResolution(t *testing.T) {
	s := store.New()
	s.Dispatch(store.SetLanguage{Language: "hi"})

	// Before the loader resolves, lookups fall back to the source phrase.
	assert.Equal(t, "Price", s.Translate("Price"))

	translator := &fakeTranslator{fn: func(text, _, _ string) (string, error) {
		if text == "Price" {
			return "कीमत", nil
		}
		return text + "-hi", nil
	}}
	loader := NewLoader(translator, s, nil)

	require.NoError(t, loader.Load(context.Background(), "hi"))
	assert.Equal(t, "कीमत", s.Translate("Price"))
	assert.Equal(t, "Crop-hi", s.Translate("Crop"))
}

func TestLoad_BackendFailureUsesStaticFallbacks(t *testing.T) {
	s := store.New()
	s.Dispatch(store.SetLanguage{Language: "hi"})

	translator := &fakeTranslator{fn: func(string, string, string) (string, error) {
		return "", errors.New("backend down")
	}}
	loader := NewLoader(translator, s, nil)

	err := loader.Load(context.Background(), "hi")
	require.Error(t, err)

	// Static table covers the common phrases for hi.
	assert.Equal(t, "कीमत", s.Translate("Price"))
	assert.Equal(t, "मौसम", s.Translate("Weather"))
	// Anything without a fallback keeps rendering the source phrase.
	assert.Equal(t, "Harvest", s.Translate("Harvest"))
}

func TestLoad_CancelledContextNeverDispatches(t *testing.T) {
	s := store.New()
	translator := &fakeTranslator{fn: func(text, _, _ string) (string, error) {
		return text + "-hi", nil
	}}
	loader := NewLoader(translator, s, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loader.Load(ctx, "hi")
	require.Error(t, err)
	assert.Empty(t, s.State().Translations["hi"])
}

func TestEnsureLanguage_SkipsCachedAndUnsupported(t *testing.T) {
	s := store.New()
	s.Dispatch(store.SetTranslations{Language: "hi", Translations: map[string]string{"Price": "कीमत"}})

	translator := &fakeTranslator{fn: func(text, _, _ string) (string, error) {
		return text, nil
	}}
	loader := NewLoader(translator, s, nil)

	loader.EnsureLanguage(context.Background(), "hi") // cached
	loader.EnsureLanguage(context.Background(), "en") // identity
	loader.EnsureLanguage(context.Background(), "xx") // unsupported

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, translator.calls.Load())
}

func TestEnsureLanguage_LoadsInBackground(t *testing.T) {
	s := store.New()
	translator := &fakeTranslator{fn: func(text, _, _ string) (string, error) {
		return text + "-ta", nil
	}}
	loader := NewLoader(translator, s, nil)

	loader.EnsureLanguage(context.Background(), "ta")

	require.Eventually(t, func() bool {
		return len(s.State().Translations["ta"]) > 0
	}, time.Second, 5*time.Millisecond)
	s.Dispatch(store.SetLanguage{Language: "ta"})
	assert.Equal(t, "Price-ta", s.Translate("Price"))
}
