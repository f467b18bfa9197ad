package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zenvory/storefront-service/internal/pkg/clock"
)

func TestPushPrunesExpiredToasts(t *testing.T) {
	bus := NewBus[Event]()
	clk := clock.NewMockClock(time.Now())
	q := NewToastQueue(bus, DefaultToastTTL, clk)
	defer q.Close()

	// A stream-only deployment never calls Active; the queue must still
	// stay bounded to one display window.
	for i := 0; i < 100; i++ {
		bus.Publish(Event{Message: "added", Kind: KindSuccess})
		clk.Advance(DefaultToastTTL)
	}

	q.mu.Lock()
	pending := len(q.toasts)
	q.mu.Unlock()

	assert.Equal(t, 1, pending)
}
