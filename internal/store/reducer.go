package store

// Reduce computes the next state from the current state and an action. It is
// pure and total: no I/O, no clock reads, and unknown action values return
// the state unchanged. Persistence, timers, and network effects live in the
// app layer.
func Reduce(s AppState, a Action) AppState {
	switch a := a.(type) {
	case SetUser:
		s.User = a.User
		s.IsAuthenticated = a.User != nil
		s.IsLoading = false
		return s

	case SetLoading:
		s.IsLoading = a.Loading
		return s

	case Logout:
		s.User = nil
		s.IsAuthenticated = false
		s.Preferences = DefaultPreferences()
		s.Cache = emptyCache()
		s.SearchHistory = nil
		s.RecentQueries = nil
		return s

	case SetLanguage:
		s.Language = a.Language
		return s

	case SetTranslations:
		merged := make(map[string]map[string]string, len(s.Translations)+1)
		for lang, phrases := range s.Translations {
			merged[lang] = phrases
		}
		existing := merged[a.Language]
		phrases := make(map[string]string, len(existing)+len(a.Translations))
		for k, v := range existing {
			phrases[k] = v
		}
		for k, v := range a.Translations {
			phrases[k] = v
		}
		merged[a.Language] = phrases
		s.Translations = merged
		return s

	case SetTheme:
		s.Theme = a.Theme
		return s

	case UpdatePreferences:
		s.Preferences = a.Patch.apply(s.Preferences)
		return s

	case AddFavoriteCrop:
		for _, crop := range s.Preferences.FavoriteCrops {
			if crop == a.Crop {
				return s
			}
		}
		crops := make([]string, 0, len(s.Preferences.FavoriteCrops)+1)
		crops = append(crops, s.Preferences.FavoriteCrops...)
		s.Preferences.FavoriteCrops = append(crops, a.Crop)
		return s

	case RemoveFavoriteCrop:
		var crops []string
		for _, crop := range s.Preferences.FavoriteCrops {
			if crop != a.Crop {
				crops = append(crops, crop)
			}
		}
		s.Preferences.FavoriteCrops = crops
		return s

	case AddSearchQuery:
		s.SearchHistory = promote(s.SearchHistory, a.Query, maxSearchHistory)
		s.RecentQueries = promote(s.RecentQueries, a.Query, maxRecentQueries)
		return s

	case ClearSearchHistory:
		s.SearchHistory = nil
		s.RecentQueries = nil
		return s

	case UpdateCache:
		expiry := a.Expiry
		if expiry <= 0 {
			expiry = DefaultCacheExpiry
		}
		cache := make(map[Namespace]map[string]CacheEntry, len(s.Cache))
		for ns, entries := range s.Cache {
			cache[ns] = entries
		}
		existing := cache[a.Namespace]
		entries := make(map[string]CacheEntry, len(existing)+1)
		for k, v := range existing {
			entries[k] = v
		}
		entries[a.Key] = CacheEntry{Data: a.Data, Timestamp: a.Timestamp, Expiry: expiry}
		cache[a.Namespace] = entries
		s.Cache = cache
		return s

	case ClearCache:
		if a.Namespace == "" {
			s.Cache = emptyCache()
			return s
		}
		cache := make(map[Namespace]map[string]CacheEntry, len(s.Cache))
		for ns, entries := range s.Cache {
			cache[ns] = entries
		}
		cache[a.Namespace] = map[string]CacheEntry{}
		s.Cache = cache
		return s

	case AddNotification:
		list := make([]Notification, 0, len(s.Notifications)+1)
		list = append(list, a.Notification)
		list = append(list, s.Notifications...)
		if len(list) > maxNotifications {
			list = list[:maxNotifications]
		}
		s.Notifications = list
		return s

	case RemoveNotification:
		var list []Notification
		for _, n := range s.Notifications {
			if n.ID != a.ID {
				list = append(list, n)
			}
		}
		s.Notifications = list
		return s

	case ClearNotifications:
		s.Notifications = nil
		return s

	case SetError:
		s.Err = a.Message
		return s

	case ClearError:
		s.Err = ""
		return s

	case SetOnlineStatus:
		s.IsOnline = a.Online
		return s

	default:
		// Forward compatibility: unhandled kinds leave state untouched.
		return s
	}
}

// promote moves value to the front of list, removing any prior occurrence,
// and truncates to limit.
func promote(list []string, value string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, value)
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
