package store

import "time"

// CachedDataAt returns the cached value for (namespace, key) when the entry
// is still within its lifetime at now. Expired entries are masked, not
// removed; they stay in memory until overwritten or the namespace is
// cleared.
func (s AppState) CachedDataAt(ns Namespace, key string, now time.Time) (any, bool) {
	entries, ok := s.Cache[ns]
	if !ok {
		return nil, false
	}
	entry, ok := entries[key]
	if !ok {
		return nil, false
	}
	if now.Sub(entry.Timestamp) >= entry.Expiry {
		return nil, false
	}
	return entry.Data, true
}

// CachedData reads through the store's clock. It is a derived read computed
// against wall-clock time on every call, never memoized.
func (s *Store) CachedData(ns Namespace, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CachedDataAt(ns, key, s.now())
}
