package app

import (
	"encoding/json"
	"reflect"

	"go.uber.org/zap"

	"github.com/krishisahayak/sahayak/internal/auth"
	"github.com/krishisahayak/sahayak/internal/storage"
	"github.com/krishisahayak/sahayak/internal/store"
	"github.com/krishisahayak/sahayak/internal/translate"
)

// Provider bridges the in-memory store and durable storage. Hydrate replays
// persisted session and settings into the store at startup; afterwards a
// subscriber mirrors every relevant change back to disk, so the store stays
// the single writer of truth and disk is a shadow of it.
type Provider struct {
	store       *store.Store
	storage     *storage.Store
	sessions    *auth.Manager
	log         *zap.Logger
	unsubscribe func()
}

// NewProvider wires persistence to the store. A nil logger disables
// logging.
func NewProvider(st *store.Store, disk *storage.Store, sessions *auth.Manager, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{store: st, storage: disk, sessions: sessions, log: log}
}

// Hydrate loads the persisted session, preferences, language, theme, and
// search history into the store, clears the startup loading flag, and
// starts mirroring changes back to disk. Preferences belong to the account,
// so they are only restored into an authenticated session. Absent or
// expired values leave the defaults in place.
func (p *Provider) Hydrate() {
	if p.sessions.IsAuthenticated() {
		if user, ok := p.sessions.CurrentUser(); ok {
			p.store.Dispatch(store.SetUser{User: user})
		}

		var prefs store.Preferences
		if p.loadJSON(storage.KeyPreferences, &prefs) {
			p.store.Dispatch(store.UpdatePreferences{Patch: store.FullPreferencePatch(prefs)})
		}
	}

	if lang, ok := p.storage.Get(storage.KeyLanguage); ok && translate.IsSupported(lang) {
		p.store.Dispatch(store.SetLanguage{Language: lang})
	}

	if theme, ok := p.storage.Get(storage.KeyTheme); ok {
		if theme == store.ThemeLight || theme == store.ThemeDark {
			p.store.Dispatch(store.SetTheme{Theme: theme})
		}
	}

	var history []string
	if p.loadJSON(storage.KeySearchHistory, &history) {
		// Stored newest first; replay oldest first so the reducer rebuilds
		// the same order.
		for i := len(history) - 1; i >= 0; i-- {
			p.store.Dispatch(store.AddSearchQuery{Query: history[i]})
		}
	}

	p.store.Dispatch(store.SetLoading{Loading: false})
	p.unsubscribe = p.store.Subscribe(p.mirror)
}

// Close stops mirroring. The last persisted snapshot stays on disk.
func (p *Provider) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// mirror persists the slices of state that survive restarts. Write failures
// are logged and otherwise ignored; the in-memory state is already updated
// and a failed mirror only costs persistence across restarts.
func (p *Provider) mirror(prev, next store.AppState) {
	if next.Language != prev.Language {
		p.persist(storage.KeyLanguage, p.storage.Set(storage.KeyLanguage, next.Language))
	}
	if next.Theme != prev.Theme {
		p.persist(storage.KeyTheme, p.storage.Set(storage.KeyTheme, next.Theme))
	}
	// Preferences are per-account; without a user the reducer holds the
	// defaults and writing those would clobber the stored record before the
	// next login.
	if next.User != nil && !reflect.DeepEqual(next.Preferences, prev.Preferences) {
		p.persist(storage.KeyPreferences, p.storage.SetJSON(storage.KeyPreferences, next.Preferences))
	}
	if !reflect.DeepEqual(next.SearchHistory, prev.SearchHistory) {
		p.persist(storage.KeySearchHistory, p.storage.SetJSON(storage.KeySearchHistory, next.SearchHistory))
	}
	if next.User != nil && !reflect.DeepEqual(prev.User, next.User) {
		p.persist(storage.KeyUser, p.storage.SetJSON(storage.KeyUser, *next.User))
	}
	if next.User == nil && prev.User != nil {
		p.sessions.Logout()
	}
}

// loadJSON decodes a stored value into dest. Absent values are silent; a
// value that is present but undecodable surfaces as a store error so the
// UI can report it.
func (p *Provider) loadJSON(key string, dest any) bool {
	raw, ok := p.storage.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		p.log.Warn("stored value undecodable", zap.String("key", key), zap.Error(err))
		p.store.Dispatch(store.SetError{Message: "Failed to load saved data"})
		return false
	}
	return true
}

func (p *Provider) persist(key string, err error) {
	if err != nil {
		p.log.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}
