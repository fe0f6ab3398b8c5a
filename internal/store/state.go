package store

import (
	"time"
)

// Limits applied by the reducer. Oldest entries are dropped on overflow.
const (
	maxSearchHistory = 10
	maxRecentQueries = 5
	maxNotifications = 50

	// DefaultCacheExpiry is applied to cache writes that do not specify one.
	DefaultCacheExpiry = 5 * time.Minute
)

// Theme names understood by the UI.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// User is the authenticated account record. A nil *User means signed out.
type User struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Location     string   `json:"location"`
	FarmSize     string   `json:"farmSize"`
	PrimaryCrops []string `json:"primaryCrops"`
}

// Preferences holds per-user settings. FavoriteCrops preserves insertion
// order and never contains duplicates.
type Preferences struct {
	AutoTranslate bool     `json:"autoTranslate"`
	VoiceEnabled  bool     `json:"voiceEnabled"`
	Notifications bool     `json:"notifications"`
	Location      string   `json:"location"`
	FavoriteCrops []string `json:"favoriteCrops"`
}

// DefaultPreferences returns the preferences applied to a fresh session and
// restored on logout.
func DefaultPreferences() Preferences {
	return Preferences{
		AutoTranslate: true,
		VoiceEnabled:  true,
		Notifications: true,
	}
}

// Namespace partitions the TTL cache by data family.
type Namespace string

const (
	NamespacePrices   Namespace = "prices"
	NamespaceCrops    Namespace = "crops"
	NamespaceDiseases Namespace = "diseases"
)

// Namespaces lists every cache namespace in a stable order.
func Namespaces() []Namespace {
	return []Namespace{NamespacePrices, NamespaceCrops, NamespaceDiseases}
}

// CacheEntry pairs cached data with its write time and lifetime. An entry is
// valid only while now-Timestamp < Expiry; expired entries stay in the map
// and are masked by the accessor.
type CacheEntry struct {
	Data      any
	Timestamp time.Time
	Expiry    time.Duration
}

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	ID        string
	Timestamp time.Time
	Type      Severity
	Title     string
	Message   string
}

// AppState is the single root record for the client. It is owned by a Store
// and mutated only through reducer-processed actions.
type AppState struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool

	Language     string
	Translations map[string]map[string]string

	Theme       string
	Preferences Preferences

	SearchHistory []string
	RecentQueries []string

	Cache map[Namespace]map[string]CacheEntry

	Notifications []Notification

	Err      string
	IsOnline bool
}

// NewState returns the initial application state: loading, English, light
// theme, empty caches, assumed online until the watcher reports otherwise.
func NewState() AppState {
	return AppState{
		IsLoading:    true,
		Language:     "en",
		Translations: map[string]map[string]string{},
		Theme:        ThemeLight,
		Preferences:  DefaultPreferences(),
		Cache:        emptyCache(),
		IsOnline:     true,
	}
}

func emptyCache() map[Namespace]map[string]CacheEntry {
	c := make(map[Namespace]map[string]CacheEntry, len(Namespaces()))
	for _, ns := range Namespaces() {
		c[ns] = map[string]CacheEntry{}
	}
	return c
}

// Clone returns a deep copy so callers can hold a snapshot without racing
// the next dispatch.
func (s AppState) Clone() AppState {
	dup := s
	if s.User != nil {
		u := *s.User
		u.PrimaryCrops = cloneStrings(s.User.PrimaryCrops)
		dup.User = &u
	}
	dup.Translations = make(map[string]map[string]string, len(s.Translations))
	for lang, phrases := range s.Translations {
		inner := make(map[string]string, len(phrases))
		for k, v := range phrases {
			inner[k] = v
		}
		dup.Translations[lang] = inner
	}
	dup.Preferences.FavoriteCrops = cloneStrings(s.Preferences.FavoriteCrops)
	dup.SearchHistory = cloneStrings(s.SearchHistory)
	dup.RecentQueries = cloneStrings(s.RecentQueries)
	dup.Cache = make(map[Namespace]map[string]CacheEntry, len(s.Cache))
	for ns, entries := range s.Cache {
		inner := make(map[string]CacheEntry, len(entries))
		for k, v := range entries {
			inner[k] = v
		}
		dup.Cache[ns] = inner
	}
	if len(s.Notifications) > 0 {
		dup.Notifications = make([]Notification, len(s.Notifications))
		copy(dup.Notifications, s.Notifications)
	}
	return dup
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
