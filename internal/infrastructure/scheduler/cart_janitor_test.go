package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zenvory/storefront-service/internal/application/cartstore"
	"github.com/zenvory/storefront-service/internal/infrastructure/persistence/memory"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

func TestCartJanitor_StartStop(t *testing.T) {
	store := cartstore.New(
		memory.NewKVStore(),
		"",
		notifier.NewBus[notifier.Event](),
		notifier.NewBus[notifier.KeyChange](),
		logger.NewLogger(),
	)

	janitor := NewCartJanitor(store, logger.NewLogger(), 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		janitor.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	janitor.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		assert.Fail(t, "janitor did not stop")
	}
}
