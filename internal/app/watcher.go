package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/krishisahayak/sahayak/internal/store"
)

const defaultPingInterval = 15 * time.Second

// offlineAfterFailures is how many consecutive failed pings mark the
// session offline. A single miss is treated as a blip.
const offlineAfterFailures = 2

// Pinger is the reachability probe the watcher needs; *api.Client
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartWatcher launches a background goroutine that probes the backend at a
// fixed cadence and mirrors the result into the store's online flag. It
// returns immediately.
func StartWatcher(ctx context.Context, st *store.Store, notifier *store.Notifier, client Pinger, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = defaultPingInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	w := &watcher{store: st, notifier: notifier, client: client, log: log}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			w.check(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

type watcher struct {
	store    *store.Store
	notifier *store.Notifier
	client   Pinger
	log      *zap.Logger
	failures int
}

func (w *watcher) check(ctx context.Context) {
	err := w.client.Ping(ctx)
	online := w.store.State().IsOnline

	if err != nil {
		w.failures++
		w.log.Debug("ping failed",
			zap.Int("consecutive", w.failures),
			zap.Error(err))
		if w.failures >= offlineAfterFailures && online {
			w.store.Dispatch(store.SetOnlineStatus{Online: false})
			w.notifier.Show(store.SeverityWarning, "Connection Lost",
				"You are offline. Cached data will be shown where available.")
		}
		return
	}

	w.failures = 0
	if !online {
		w.store.Dispatch(store.SetOnlineStatus{Online: true})
		w.notifier.Show(store.SeverityInfo, "Connection Restored",
			"You are back online.")
	}
}
