package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishisahayak/sahayak/internal/store"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakePinger) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func TestWatcherSingleFailureIsNotOffline(t *testing.T) {
	st := store.New()
	w := &watcher{store: st, notifier: store.NewNotifier(st), client: &fakePinger{}, log: zap.NewNop()}

	w.client.(*fakePinger).setErr(errors.New("connection refused"))
	w.check(context.Background())

	assert.True(t, st.State().IsOnline)
	assert.Empty(t, st.State().Notifications)
}

func TestWatcherMarksOfflineAfterConsecutiveFailures(t *testing.T) {
	st := store.New()
	pinger := &fakePinger{err: errors.New("connection refused")}
	w := &watcher{store: st, notifier: store.NewNotifier(st), client: pinger, log: zap.NewNop()}

	w.check(context.Background())
	w.check(context.Background())

	state := st.State()
	assert.False(t, state.IsOnline)
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, store.SeverityWarning, state.Notifications[0].Type)
	assert.Equal(t, "Connection Lost", state.Notifications[0].Title)

	// Staying offline does not repeat the notification.
	w.check(context.Background())
	assert.Len(t, st.State().Notifications, 1)
}

func TestWatcherRecoveryNotifiesOnce(t *testing.T) {
	st := store.New()
	pinger := &fakePinger{err: errors.New("connection refused")}
	w := &watcher{store: st, notifier: store.NewNotifier(st), client: pinger, log: zap.NewNop()}

	w.check(context.Background())
	w.check(context.Background())
	require.False(t, st.State().IsOnline)

	pinger.setErr(nil)
	w.check(context.Background())

	state := st.State()
	assert.True(t, state.IsOnline)
	require.Len(t, state.Notifications, 2)
	assert.Equal(t, "Connection Restored", state.Notifications[0].Title)
	assert.Equal(t, store.SeverityInfo, state.Notifications[0].Type)

	// Staying online stays quiet.
	w.check(context.Background())
	assert.Len(t, st.State().Notifications, 2)
}

func TestWatcherSuccessResetsFailureCount(t *testing.T) {
	st := store.New()
	pinger := &fakePinger{err: errors.New("connection refused")}
	w := &watcher{store: st, notifier: store.NewNotifier(st), client: pinger, log: zap.NewNop()}

	w.check(context.Background())
	pinger.setErr(nil)
	w.check(context.Background())
	pinger.setErr(errors.New("connection refused"))
	w.check(context.Background())

	// One failure after a success is still just a blip.
	assert.True(t, st.State().IsOnline)
}

func TestStartWatcherRunsInBackground(t *testing.T) {
	st := store.New()
	pinger := &fakePinger{err: errors.New("connection refused")}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	StartWatcher(ctx, st, store.NewNotifier(st), pinger, 10*time.Millisecond, nil)

	require.Eventually(t, func() bool {
		return !st.State().IsOnline
	}, time.Second, 5*time.Millisecond)
}
