package store

import "time"

// Action is the closed set of state transitions. Each kind is a small record
// consumed by Reduce; the marker method keeps the set closed to this package's
// declarations so the reducer switch stays exhaustive.
type Action interface {
	isAction()
}

// SetUser replaces the account record. A nil user signs the session out of
// the authenticated view without running the full Logout reset.
type SetUser struct {
	User *User
}

// SetLoading toggles the startup loading flag.
type SetLoading struct {
	Loading bool
}

// Logout clears the user, preferences, cache, and search history while
// leaving language and theme untouched.
type Logout struct{}

// SetLanguage switches the active language. Callers are responsible for
// rejecting unsupported codes before dispatching.
type SetLanguage struct {
	Language string
}

// SetTranslations merges a phrase map into the translations for one
// language. The merge is additive; previously loaded phrases survive.
type SetTranslations struct {
	Language     string
	Translations map[string]string
}

// SetTheme switches the UI theme.
type SetTheme struct {
	Theme string
}

// UpdatePreferences shallow-merges the patch into the current preferences.
type UpdatePreferences struct {
	Patch PreferencePatch
}

// PreferencePatch carries optional preference fields; nil fields are left
// unchanged by the merge.
type PreferencePatch struct {
	AutoTranslate *bool
	VoiceEnabled  *bool
	Notifications *bool
	Location      *string
	FavoriteCrops *[]string
}

// apply merges the patch over p, field by field.
func (patch PreferencePatch) apply(p Preferences) Preferences {
	if patch.AutoTranslate != nil {
		p.AutoTranslate = *patch.AutoTranslate
	}
	if patch.VoiceEnabled != nil {
		p.VoiceEnabled = *patch.VoiceEnabled
	}
	if patch.Notifications != nil {
		p.Notifications = *patch.Notifications
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.FavoriteCrops != nil {
		p.FavoriteCrops = cloneStrings(*patch.FavoriteCrops)
	}
	return p
}

// FullPreferencePatch converts a complete preferences record into a patch,
// used when rehydrating stored preferences over the defaults.
func FullPreferencePatch(p Preferences) PreferencePatch {
	return PreferencePatch{
		AutoTranslate: &p.AutoTranslate,
		VoiceEnabled:  &p.VoiceEnabled,
		Notifications: &p.Notifications,
		Location:      &p.Location,
		FavoriteCrops: &p.FavoriteCrops,
	}
}

// AddFavoriteCrop appends the crop if absent; dispatching it for a crop that
// is already present is a no-op.
type AddFavoriteCrop struct {
	Crop string
}

// RemoveFavoriteCrop removes every occurrence of the crop.
type RemoveFavoriteCrop struct {
	Crop string
}

// AddSearchQuery moves or inserts the query at the front of both history
// sequences, deduplicating and enforcing the caps.
type AddSearchQuery struct {
	Query string
}

// ClearSearchHistory empties both history sequences.
type ClearSearchHistory struct{}

// UpdateCache writes a cache entry, overwriting any existing entry for the
// key. A zero Expiry means DefaultCacheExpiry; a zero Timestamp is stamped
// with the store clock at dispatch time.
type UpdateCache struct {
	Namespace Namespace
	Key       string
	Data      any
	Expiry    time.Duration
	Timestamp time.Time
}

// ClearCache empties one namespace, or every namespace when Namespace is "".
type ClearCache struct {
	Namespace Namespace
}

// AddNotification prepends a notification, truncating to the cap. A zero ID
// or Timestamp is stamped at dispatch time.
type AddNotification struct {
	Notification Notification
}

// RemoveNotification drops the notification with the given ID; unknown IDs
// are a no-op.
type RemoveNotification struct {
	ID string
}

// ClearNotifications empties the notification list.
type ClearNotifications struct{}

// SetError records the last app-level error for display.
type SetError struct {
	Message string
}

// ClearError clears the recorded error.
type ClearError struct{}

// SetOnlineStatus mirrors network connectivity.
type SetOnlineStatus struct {
	Online bool
}

func (SetUser) isAction()            {}
func (SetLoading) isAction()         {}
func (Logout) isAction()             {}
func (SetLanguage) isAction()        {}
func (SetTranslations) isAction()    {}
func (SetTheme) isAction()           {}
func (UpdatePreferences) isAction()  {}
func (AddFavoriteCrop) isAction()    {}
func (RemoveFavoriteCrop) isAction() {}
func (AddSearchQuery) isAction()     {}
func (ClearSearchHistory) isAction() {}
func (UpdateCache) isAction()        {}
func (ClearCache) isAction()         {}
func (AddNotification) isAction()    {}
func (RemoveNotification) isAction() {}
func (ClearNotifications) isAction() {}
func (SetError) isAction()           {}
func (ClearError) isAction()         {}
func (SetOnlineStatus) isAction()    {}
