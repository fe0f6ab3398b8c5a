// Package store implements the client application state for Krishi Sahayak.
//
// # Overview
//
// All shared state lives in a single AppState record owned by a Store. The
// only way to change it is to dispatch an Action through the pure reducer;
// persistence, timers, and network effects are layered on top by the app
// package. This mirrors the classic reducer architecture: UI and services
// dispatch actions, the reducer computes the next state, subscribers react.
//
// # Core Types
//
// AppState:
//   - Root record: user/session, language and translations, theme,
//     preferences, search history, TTL cache, notifications, error, and
//     connectivity flag.
//   - Deep-copied on every read so snapshots never race a dispatch.
//
// Action:
//   - Closed sum type (interface with an unexported marker method). The
//     reducer switch handles every kind; unknown values are a deliberate
//     no-op for forward compatibility.
//
// Store:
//   - Explicitly constructed container, no package-level singleton. The
//     composition root builds one and passes it down.
//   - Dispatch serializes reductions under a mutex, so each action runs to
//     completion before the next is processed.
//   - The clock is injectable (WithClock) so tests can drive cache expiry
//     deterministically.
//
// Notifier:
//   - Bounded, most-recent-first message queue over the store. Each Show
//     schedules auto-removal (default 5s, per-call override) and Close
//     cancels every pending timer.
//
// # Invariants
//
//   - IsAuthenticated is always derived from User != nil, never set
//     independently.
//   - SearchHistory (cap 10) and RecentQueries (cap 5) are deduplicated;
//     re-adding an entry moves it to the front.
//   - FavoriteCrops never contains duplicates.
//   - Notifications is capped at 50, newest first.
//   - A cache entry is valid only while now-Timestamp < Expiry. Expired
//     entries are masked by the accessor, not purged; the working key set
//     (crop names, states) is small and fixed, so growth is bounded in
//     practice.
//   - Logout resets user, preferences, cache, and search history but leaves
//     language and theme alone.
//
// # Purity
//
// Reduce never reads the clock and never generates IDs. Cache-write
// timestamps and notification IDs are stamped by Dispatch before reduction,
// which keeps the reducer a pure (state, action) -> state function that
// tests can exercise with explicit inputs.
//
// # Concurrency
//
// Dispatches may arrive from any goroutine (UI events, the connectivity
// watcher, the translation loader, notification timers); the dispatch mutex
// serializes them, which is the whole synchronization story. Subscribers
// receive before/after deep copies and must not dispatch from the callback.
package store
