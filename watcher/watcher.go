// Package watcher detects newly arrived orders by polling the gateway and
// diffing the observed order-id set against everything seen so far.
package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tacotown/models"
)

// Lister is the slice of the gateway the watcher needs.
type Lister interface {
	List(ctx context.Context) ([]models.Order, error)
}

// AlertFunc receives the number of newly arrived orders. It is called at
// most once per poll cycle.
type AlertFunc func(count int)

// Watcher keeps a monotonic set of known order ids. Ids are never evicted
// for the lifetime of the process, so an order deleted and recreated under
// the same id is not re-alerted. Safe for concurrent polls: the interval
// ticker and a manual refresh go through the same guarded path.
type Watcher struct {
	lister Lister
	alert  AlertFunc
	log    *slog.Logger

	mu     sync.Mutex
	known  map[string]struct{}
	seeded bool
}

func New(lister Lister, alert AlertFunc, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		lister: lister,
		alert:  alert,
		log:    log,
		known:  make(map[string]struct{}),
	}
}

// Poll fetches the current orders once. A failed fetch leaves the known set
// untouched and is not fatal; the next cycle simply retries. The first
// successful poll seeds the set without alerting, so a cold start over an
// existing backlog stays quiet.
func (w *Watcher) Poll(ctx context.Context) error {
	orders, err := w.lister.List(ctx)
	if err != nil {
		w.log.Warn("order poll failed", "error", err)
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.seeded {
		for _, o := range orders {
			w.known[o.OrderID] = struct{}{}
		}
		w.seeded = true
		return nil
	}

	arrivals := 0
	for _, o := range orders {
		if _, seen := w.known[o.OrderID]; !seen {
			w.known[o.OrderID] = struct{}{}
			arrivals++
		}
	}
	if arrivals > 0 {
		w.log.Info("new orders observed", "count", arrivals)
		if w.alert != nil {
			w.alert(arrivals)
		}
	}
	return nil
}

// Run polls immediately and then on a fixed interval until ctx is done.
// Poll errors are logged and swallowed; the loop never stops on them.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	_ = w.Poll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = w.Poll(ctx)
		}
	}
}

// KnownCount reports how many distinct order ids have been observed.
func (w *Watcher) KnownCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.known)
}
