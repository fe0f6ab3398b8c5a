// Package ui provides the terminal user interface for Krishi Sahayak.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. The root Model never owns application
// state: it holds a snapshot of store.AppState and re-renders whenever the
// store publishes a new one. Every user action that changes state goes
// through a store dispatch or a service call; the UI reacts to the
// resulting snapshot rather than mutating anything locally.
//
// # Package Structure
//
//   - app.go: Model, message types, key handling, and the main Run function
//   - views.go: Per-view rendering (dashboard, prices, search, notifications)
//   - keys.go: Keyboard bindings
//   - theme.go: Light and dark themes with Lipgloss style construction
//
// # Event Flow
//
//  1. Run() builds the Model from a store snapshot and starts the program
//  2. A store subscription forwards each new state as a stateMsg
//  3. Key handling dispatches actions or runs service calls as tea.Cmds
//  4. Price lookups return as pricesMsg with their data origin attached
//  5. Context cancellation cleanly shuts down the program
//
// # Key Bindings
//
//   - 1/2/3/4: Dashboard, prices, search, notifications views
//   - /: New search; enter submits, esc cancels
//   - r: Refresh prices, bypassing the cache
//   - d/D: Dismiss selected/all notifications
//   - X: Clear search history
//   - O: Sign out
//   - T: Cycle theme
//   - L: Cycle language
//   - ?: Help overlay
//   - q or Ctrl+C: Exit
package ui
