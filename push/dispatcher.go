package push

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
	"github.com/giygas/medreminder/metrics"
)

// Dispatcher shows notifications on the board and pushes them without
// blocking the caller. A failed push is logged and counted, never retried.
type Dispatcher struct {
	board   interfaces.Board
	pusher  interfaces.Pusher
	limiter *rate.Limiter
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ interfaces.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher allowing ratePerSec pushes per second.
func NewDispatcher(board interfaces.Board, pusher interfaces.Pusher, ratePerSec int, timeout time.Duration) *Dispatcher {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		board:  board,
		pusher: pusher,
		// Token bucket: burst = rate per sec, so a tick's batch goes out at once
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		timeout: timeout,
	}
}

// Dispatch adds n to the board, then pushes it in the background.
func (d *Dispatcher) Dispatch(n entities.Notification) {
	d.board.Add(n)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logging.Error("panic in push dispatch", "panic", r, "stack", string(debug.Stack()))
			}
		}()
		d.push(n)
	}()
}

func (d *Dispatcher) push(n entities.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	provider := d.pusher.Name()

	err := d.limiter.Wait(ctx)
	if err == nil {
		err = d.pusher.Push(ctx, interfaces.PushRequest{Title: n.Title, Message: n.Message})
	}

	if err != nil {
		metrics.PushDispatchTotal.WithLabelValues(provider, "failure").Inc()
		logging.Warn("Push notification failed",
			"provider", provider,
			"notification_id", n.ID,
			"title", n.Title,
			"error", err)
		return
	}

	metrics.PushDispatchTotal.WithLabelValues(provider, "success").Inc()
	logging.Debug("Push notification sent", "provider", provider, "notification_id", n.ID)
}

// Wait blocks until every in-flight push has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
