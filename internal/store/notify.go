package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDismissAfter is how long a notification stays visible unless the
// caller asks for a different delay. Higher-severity call sites pass longer.
const DefaultDismissAfter = 5 * time.Second

// ShowOption customizes a single Show call.
type ShowOption func(*showConfig)

type showConfig struct {
	dismissAfter time.Duration
	autoRemove   bool
}

// WithDismissAfter overrides the auto-removal delay.
func WithDismissAfter(d time.Duration) ShowOption {
	return func(c *showConfig) {
		if d > 0 {
			c.dismissAfter = d
		}
	}
}

// WithoutAutoRemove keeps the notification until it is removed explicitly.
func WithoutAutoRemove() ShowOption {
	return func(c *showConfig) {
		c.autoRemove = false
	}
}

// Notifier is the transient message queue over a Store. Every Show is an
// independent enqueue; concurrent callers never coalesce or lose messages.
// Auto-removal timers are cancelled by Close so nothing dispatches into a
// torn-down provider.
type Notifier struct {
	store *Store

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewNotifier wires a Notifier to the store.
func NewNotifier(store *Store) *Notifier {
	return &Notifier{
		store:  store,
		timers: map[string]*time.Timer{},
	}
}

// Show enqueues a notification and schedules its removal. It returns the
// notification ID so callers can remove it early.
func (n *Notifier) Show(severity Severity, title, message string, opts ...ShowOption) string {
	cfg := showConfig{dismissAfter: DefaultDismissAfter, autoRemove: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.NewString()

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ""
	}
	n.mu.Unlock()

	n.store.Dispatch(AddNotification{Notification: Notification{
		ID:      id,
		Type:    severity,
		Title:   title,
		Message: message,
	}})

	if cfg.autoRemove {
		n.mu.Lock()
		if !n.closed {
			n.timers[id] = time.AfterFunc(cfg.dismissAfter, func() {
				n.Remove(id)
			})
		}
		n.mu.Unlock()
	}
	return id
}

// Remove dismisses a notification. Removing an unknown or already-removed ID
// is a no-op.
func (n *Notifier) Remove(id string) {
	n.mu.Lock()
	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	closed := n.closed
	n.mu.Unlock()
	if closed {
		return
	}
	n.store.Dispatch(RemoveNotification{ID: id})
}

// Clear dismisses everything at once.
func (n *Notifier) Clear() {
	n.mu.Lock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	closed := n.closed
	n.mu.Unlock()
	if closed {
		return
	}
	n.store.Dispatch(ClearNotifications{})
}

// Close stops every pending timer. Subsequent Show calls are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
}
