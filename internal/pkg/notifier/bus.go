package notifier

import (
	"sort"
	"sync"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Event is the transient feedback a cart mutation produces for whatever toast
// surfaces happen to be mounted. It is never persisted.
type Event struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// KeyChange signals that a persisted storage key was rewritten, so badge
// surfaces know to reload and re-aggregate.
type KeyChange struct {
	Key string `json:"key"`
}

// Bus is a process-wide synchronous publish/subscribe channel. Publish is
// fire-and-forget: with no subscribers the value is dropped, nothing is
// buffered. Handlers run on the publishing goroutine in subscription order.
type Bus[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(T)
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{
		subs: make(map[int]func(T)),
	}
}

func (b *Bus[T]) Publish(value T) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(T), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(value)
	}
}

// Subscribe registers handler and returns its unsubscribe function. Calling
// the returned function more than once is safe; only the first call removes
// the handler.
func (b *Bus[T]) Subscribe(handler func(T)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = handler
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *Bus[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
