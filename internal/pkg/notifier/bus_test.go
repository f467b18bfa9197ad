package notifier_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenvory/storefront-service/internal/pkg/clock"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

func TestPublishWithoutSubscribersIsDropped(t *testing.T) {
	bus := notifier.NewBus[notifier.Event]()

	// No buffering: an event published before anyone subscribes is gone.
	bus.Publish(notifier.Event{Message: "lost", Kind: notifier.KindSuccess})

	var received []notifier.Event
	unsub := bus.Subscribe(func(e notifier.Event) {
		received = append(received, e)
	})
	defer unsub()

	assert.Empty(t, received)
}

func TestSubscriberReceivesEachEventOnce(t *testing.T) {
	bus := notifier.NewBus[notifier.Event]()

	var received []notifier.Event
	unsub := bus.Subscribe(func(e notifier.Event) {
		received = append(received, e)
	})
	defer unsub()

	bus.Publish(notifier.Event{Message: "Widget added to cart", Kind: notifier.KindSuccess})
	bus.Publish(notifier.Event{Message: "Failed to update cart", Kind: notifier.KindError})

	require.Len(t, received, 2)
	assert.Equal(t, "Widget added to cart", received[0].Message)
	assert.Equal(t, notifier.KindSuccess, received[0].Kind)
	assert.Equal(t, "Failed to update cart", received[1].Message)
	assert.Equal(t, notifier.KindError, received[1].Kind)
}

func TestMultipleSubscribersDeliveryOrder(t *testing.T) {
	bus := notifier.NewBus[notifier.KeyChange]()

	var order []string
	unsubA := bus.Subscribe(func(notifier.KeyChange) { order = append(order, "a") })
	defer unsubA()
	unsubB := bus.Subscribe(func(notifier.KeyChange) { order = append(order, "b") })
	defer unsubB()

	bus.Publish(notifier.KeyChange{Key: "local_cart"})

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := notifier.NewBus[notifier.Event]()

	count := 0
	unsubA := bus.Subscribe(func(notifier.Event) { count++ })
	unsubB := bus.Subscribe(func(notifier.Event) {})

	unsubA()
	unsubA()
	unsubA()

	// The repeated calls must not have removed the other subscription.
	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Publish(notifier.Event{Message: "x"})
	assert.Equal(t, 0, count)

	unsubB()
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestToastQueueExpiry(t *testing.T) {
	bus := notifier.NewBus[notifier.Event]()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	queue := notifier.NewToastQueue(bus, notifier.DefaultToastTTL, clk)
	defer queue.Close()

	bus.Publish(notifier.Event{Message: "Widget added to cart", Kind: notifier.KindSuccess})

	active := queue.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Widget added to cart", active[0].Event.Message)

	clk.Advance(2 * time.Second)
	bus.Publish(notifier.Event{Message: "Gadget added to cart", Kind: notifier.KindSuccess})
	require.Len(t, queue.Active(), 2)

	// First toast crosses its 3.5s window, second is still visible.
	clk.Advance(2 * time.Second)
	active = queue.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Gadget added to cart", active[0].Event.Message)

	clk.Advance(2 * time.Second)
	assert.Empty(t, queue.Active())
}

func TestToastQueueCloseDetaches(t *testing.T) {
	bus := notifier.NewBus[notifier.Event]()
	clk := clock.NewMockClock(time.Now())
	queue := notifier.NewToastQueue(bus, 0, clk)

	queue.Close()
	queue.Close()

	bus.Publish(notifier.Event{Message: "after close"})
	assert.Empty(t, queue.Active())
}
