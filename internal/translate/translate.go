// Package translate provides the language catalog and the lazy loader that
// fills the store's phrase maps when the user switches language.
package translate

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/krishisahayak/sahayak/internal/store"
)

// Language describes one supported UI language.
type Language struct {
	Code   string
	Name   string
	Native string
}

var supported = []Language{
	{Code: "en", Name: "English", Native: "English"},
	{Code: "hi", Name: "Hindi", Native: "हिंदी"},
	{Code: "te", Name: "Telugu", Native: "తెలుగు"},
	{Code: "ta", Name: "Tamil", Native: "தமிழ்"},
	{Code: "bn", Name: "Bengali", Native: "বাংলা"},
	{Code: "gu", Name: "Gujarati", Native: "ગુજરાતી"},
	{Code: "mr", Name: "Marathi", Native: "मराठी"},
	{Code: "pa", Name: "Punjabi", Native: "ਪੰਜਾਬੀ"},
}

// Supported lists every language in display order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether code is a known language code.
func IsSupported(code string) bool {
	for _, lang := range supported {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// commonPhrases is the fixed list loaded eagerly for a new language. Any
// other phrase renders in English until a page loads it.
var commonPhrases = []string{
	"Hello", "Thank you", "Price", "Crop", "Disease", "Weather",
	"Search", "Login", "Signup", "Dashboard", "Loading...",
}

// fallbacks are static translations used when the backend is unreachable.
var fallbacks = map[string]map[string]string{
	"hi": {
		"Hello":      "नमस्ते",
		"Thank you":  "धन्यवाद",
		"Price":      "कीमत",
		"Crop":       "फसल",
		"Disease":    "रोग",
		"Weather":    "मौसम",
		"Loading...": "लोड हो रहा है...",
		"Search":     "खोजें",
		"Login":      "लॉग इन",
		"Signup":     "साइन अप",
	},
	"te": {
		"Hello":     "నమస్కారం",
		"Thank you": "ధన్యవాదాలు",
		"Price":     "ధర",
		"Crop":      "పంట",
		"Disease":   "వ్యాధి",
		"Weather":   "వాతావరణం",
	},
	"ta": {
		"Hello":     "வணக்கம்",
		"Thank you": "நன்றி",
		"Price":     "விலை",
		"Crop":      "பயிர்",
		"Disease":   "நோய்",
		"Weather":   "வானிலை",
	},
}

// Fallback returns the static translation for a phrase, if one exists.
func Fallback(text, lang string) (string, bool) {
	phrases, ok := fallbacks[lang]
	if !ok {
		return "", false
	}
	translated, ok := phrases[text]
	return translated, ok
}

// Translator is the backend surface the loader needs; *api.Client satisfies
// it.
type Translator interface {
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)
}

// Loader fetches phrase maps for newly selected languages and dispatches
// them into the store. Loads are deduplicated per language, so a user
// flipping back and forth does not stack requests.
type Loader struct {
	client Translator
	store  *store.Store
	log    *zap.Logger

	mu       sync.Mutex
	inflight map[string]bool
}

// NewLoader builds a Loader. A nil logger disables logging.
func NewLoader(client Translator, st *store.Store, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		client:   client,
		store:    st,
		log:      log,
		inflight: map[string]bool{},
	}
}

// EnsureLanguage loads the common phrases for lang in the background when
// they are not cached yet. The language switch itself never waits: callers
// dispatch SetLanguage first and the UI renders with source-phrase
// fallbacks until the load resolves.
func (l *Loader) EnsureLanguage(ctx context.Context, lang string) {
	if lang == "en" || !IsSupported(lang) {
		return
	}
	if phrases := l.store.State().Translations[lang]; len(phrases) > 0 {
		return
	}

	l.mu.Lock()
	if l.inflight[lang] {
		l.mu.Unlock()
		return
	}
	l.inflight[lang] = true
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.inflight, lang)
			l.mu.Unlock()
		}()
		if err := l.Load(ctx, lang); err != nil {
			l.log.Warn("translation load failed", zap.String("language", lang), zap.Error(err))
		}
	}()
}

// Load translates the common phrase list into lang and dispatches the
// result. Phrases the backend cannot translate fall back to the static
// tables; phrases with no fallback are skipped and keep rendering in the
// source language. Load honors ctx so a shutdown never dispatches into a
// torn-down store.
func (l *Loader) Load(ctx context.Context, lang string) error {
	phrases := make(map[string]string, len(commonPhrases))
	var firstErr error

	for _, phrase := range commonPhrases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("translation load cancelled: %w", err)
		}
		translated, err := l.client.Translate(ctx, phrase, "en", lang)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if fallback, ok := Fallback(phrase, lang); ok {
				phrases[phrase] = fallback
			}
			continue
		}
		if translated != "" {
			phrases[phrase] = translated
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("translation load cancelled: %w", err)
	}
	if len(phrases) > 0 {
		l.store.Dispatch(store.SetTranslations{Language: lang, Translations: phrases})
	}
	if firstErr != nil {
		return fmt.Errorf("translate phrases to %s: %w", lang, firstErr)
	}
	return nil
}
