package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscriber observes completed dispatches. It receives deep copies of the
// state before and after the action and must not dispatch from within the
// callback.
type Subscriber func(prev, next AppState)

// Store owns the application state. It is an explicitly constructed
// container: the composition root builds one and hands it to the packages
// that need it, so there is no ambient global to reach for.
//
// Dispatches are serialized; each action reduces to completion before the
// next is processed.
type Store struct {
	dispatchMu sync.Mutex

	mu    sync.RWMutex
	state AppState

	now func() time.Time

	subMu   sync.RWMutex
	subs    map[int]Subscriber
	nextSub int
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the wall clock, used by tests to control cache expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInitialState replaces the default initial state.
func WithInitialState(state AppState) Option {
	return func(s *Store) {
		s.state = state.Clone()
	}
}

// New builds a Store seeded with NewState.
func New(opts ...Option) *Store {
	s := &Store{
		state: NewState(),
		now:   time.Now,
		subs:  map[int]Subscriber{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch runs the action through the reducer and notifies subscribers.
// Cache writes and notifications missing timestamps or IDs are stamped here,
// keeping Reduce itself free of clock and randomness.
func (s *Store) Dispatch(a Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	a = s.stamp(a)

	s.mu.Lock()
	prev := s.state.Clone()
	s.state = Reduce(s.state, a)
	next := s.state.Clone()
	s.mu.Unlock()

	s.subMu.RLock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(prev, next)
	}
}

func (s *Store) stamp(a Action) Action {
	switch a := a.(type) {
	case UpdateCache:
		if a.Timestamp.IsZero() {
			a.Timestamp = s.now()
		}
		return a
	case AddNotification:
		if a.Notification.ID == "" {
			a.Notification.ID = uuid.NewString()
		}
		if a.Notification.Timestamp.IsZero() {
			a.Notification.Timestamp = s.now()
		}
		return a
	default:
		return a
	}
}

// State returns a deep copy of the current state.
func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn for every completed dispatch and returns an
// unsubscribe func.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Translate looks up text in the active language's phrase map, falling back
// to the original text while the lazy loader has not resolved it yet.
func (s *Store) Translate(text string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Language == "en" {
		return text
	}
	if phrases, ok := s.state.Translations[s.state.Language]; ok {
		if translated, ok := phrases[text]; ok && translated != "" {
			return translated
		}
	}
	return text
}

// IsFavoriteCrop reports whether crop is in the favorites list.
func (s *Store) IsFavoriteCrop(crop string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.state.Preferences.FavoriteCrops {
		if c == crop {
			return true
		}
	}
	return false
}
