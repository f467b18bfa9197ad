package notifier

import (
	"sync"
	"time"

	"github.com/zenvory/storefront-service/internal/pkg/clock"
)

// DefaultToastTTL matches the storefront toast display duration.
const DefaultToastTTL = 3500 * time.Millisecond

type Toast struct {
	ID      int64     `json:"id"`
	Event   Event     `json:"event"`
	ShownAt time.Time `json:"shown_at"`
}

// ToastQueue is a listener-side display queue. Each delivered event expires
// from the queue independently after a fixed TTL; expiry is owned here, not
// by the bus.
type ToastQueue struct {
	mu     sync.Mutex
	ttl    time.Duration
	clock  clock.Clock
	nextID int64
	toasts []Toast
	unsub  func()
}

func NewToastQueue(bus *Bus[Event], ttl time.Duration, clk clock.Clock) *ToastQueue {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}

	q := &ToastQueue{
		ttl:   ttl,
		clock: clk,
	}
	q.unsub = bus.Subscribe(q.push)
	return q
}

func (q *ToastQueue) push(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Pruning on every push bounds the queue to one display window even
	// when nobody ever polls Active.
	now := q.clock.Now()
	q.pruneLocked(now)

	q.nextID++
	q.toasts = append(q.toasts, Toast{
		ID:      q.nextID,
		Event:   event,
		ShownAt: now,
	})
}

// Active returns the toasts still within their display window, oldest first.
func (q *ToastQueue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pruneLocked(q.clock.Now())

	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

func (q *ToastQueue) pruneLocked(now time.Time) {
	kept := q.toasts[:0]
	for _, toast := range q.toasts {
		if now.Sub(toast.ShownAt) < q.ttl {
			kept = append(kept, toast)
		}
	}
	q.toasts = kept
}

// Close detaches the queue from the bus. Safe to call more than once.
func (q *ToastQueue) Close() {
	q.unsub()
}
