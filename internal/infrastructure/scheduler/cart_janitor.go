package scheduler

import (
	"context"
	"time"

	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/domain/cart"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
)

// CartJanitor periodically reloads the persisted cart and republishes the
// aggregate gauges. Out-of-process writers mutate the same storage key, so
// gauges refreshed only on local mutations would drift.
type CartJanitor struct {
	store    ports.CartStore
	logger   *logger.Logger
	interval time.Duration
	stopChan chan struct{}
}

func NewCartJanitor(store ports.CartStore, logger *logger.Logger, interval time.Duration) *CartJanitor {
	return &CartJanitor{
		store:    store,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (j *CartJanitor) Start(ctx context.Context) {
	j.logger.Info("Starting cart janitor", "interval", j.interval.String())

	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("Cart janitor stopped")
			return
		case <-j.stopChan:
			j.logger.Info("Cart janitor stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *CartJanitor) Stop() {
	close(j.stopChan)
}

func (j *CartJanitor) refresh(ctx context.Context) {
	c := j.store.Load(ctx)
	subtotal, _ := cart.Subtotal(c).Float64()
	monitoring.UpdateCartGauges(cart.ItemCount(c), subtotal)
}
