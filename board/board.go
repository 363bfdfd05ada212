// Package board keeps the notifications currently on display. Each added
// notification dismisses itself after a fixed TTL unless the user dismisses
// it first, and every change is broadcast to subscribers.
package board

import (
	"errors"
	"sync"
	"time"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/metrics"
)

// DefaultTTL is how long a notification stays on the board.
const DefaultTTL = 30 * time.Second

// subscriberBuffer is the per-subscriber event backlog before events drop.
const subscriberBuffer = 32

// ErrNotFound is returned when dismissing an id that is not on the board.
var ErrNotFound = errors.New("notification not found")

// Compile-time check to ensure Board implements interfaces.Board
var _ interfaces.Board = (*Board)(nil)

type item struct {
	notification entities.Notification
	timer        interfaces.Timer
}

// Board is safe for concurrent use.
type Board struct {
	clock interfaces.Clock
	ttl   time.Duration

	mu      sync.Mutex
	items   []*item
	subs    map[int]chan entities.BoardEvent
	nextSub int
}

// New creates a board. A ttl of zero or less disables auto-dismiss.
func New(clk interfaces.Clock, ttl time.Duration) *Board {
	return &Board{
		clock: clk,
		ttl:   ttl,
		subs:  make(map[int]chan entities.BoardEvent),
	}
}

// Add shows n and arms its auto-dismiss timer.
func (b *Board) Add(n entities.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	it := &item{notification: n}
	if b.ttl > 0 {
		id := n.ID
		it.timer = b.clock.AfterFunc(b.ttl, func() {
			b.remove(id, entities.BoardEventExpired)
		})
	}
	b.items = append(b.items, it)
	metrics.BoardActiveNotifications.Set(float64(len(b.items)))

	b.publishLocked(entities.BoardEvent{Type: entities.BoardEventAdded, Notification: n})
}

// Dismiss removes a notification before its TTL runs out.
func (b *Board) Dismiss(id string) error {
	if !b.remove(id, entities.BoardEventDismissed) {
		return ErrNotFound
	}
	return nil
}

// List returns the active notifications, oldest first.
func (b *Board) List() []entities.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entities.Notification, 0, len(b.items))
	for _, it := range b.items {
		out = append(out, it.notification)
	}
	return out
}

// Subscribe returns a channel of board events and a func that closes it.
// Events are dropped for a subscriber whose buffer is full.
func (b *Board) Subscribe() (<-chan entities.BoardEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	ch := make(chan entities.BoardEvent, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Board) remove(id string, reason entities.BoardEventType) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, it := range b.items {
		if it.notification.ID != id {
			continue
		}
		if it.timer != nil && reason != entities.BoardEventExpired {
			it.timer.Stop()
		}
		b.items = append(b.items[:i], b.items[i+1:]...)
		metrics.BoardActiveNotifications.Set(float64(len(b.items)))
		b.publishLocked(entities.BoardEvent{Type: reason, Notification: it.notification})
		return true
	}
	return false
}

func (b *Board) publishLocked(ev entities.BoardEvent) {
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
