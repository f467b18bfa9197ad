package use_cases

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/domain/cart"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
)

// CartViewUseCase translates the cart page's editing intents into cart store
// operations. It keeps per-line "updating" bookkeeping because the store
// contract does not promise synchronous persistence; a deployment may back
// it with a remote call.
type CartViewUseCase struct {
	store ports.CartStore
	log   *logger.Logger

	mu       sync.Mutex
	updating map[string]struct{}
}

func NewCartViewUseCase(store ports.CartStore, log *logger.Logger) *CartViewUseCase {
	return &CartViewUseCase{
		store:    store,
		log:      log,
		updating: make(map[string]struct{}),
	}
}

func (u *CartViewUseCase) Lines(ctx context.Context) []cart.Line {
	return u.store.Load(ctx).Lines
}

func (u *CartViewUseCase) Summary(ctx context.Context) (int, decimal.Decimal) {
	c := u.store.Load(ctx)
	return cart.ItemCount(c), cart.Subtotal(c)
}

// Increment raises the line quantity by one. An unknown SKU is tolerated.
func (u *CartViewUseCase) Increment(ctx context.Context, sku string) cart.Cart {
	current := u.store.Load(ctx)
	line, ok := current.Find(sku)
	if !ok {
		return current
	}
	return u.apply(ctx, sku, line.Quantity+1)
}

// Decrement lowers the line quantity by one with a floor of 1. Going below
// the floor requires an explicit RemoveLine, never an implicit decrement.
func (u *CartViewUseCase) Decrement(ctx context.Context, sku string) cart.Cart {
	current := u.store.Load(ctx)
	line, ok := current.Find(sku)
	if !ok || line.Quantity <= 1 {
		return current
	}
	return u.apply(ctx, sku, line.Quantity-1)
}

// SetQuantityFromInput applies a free-text quantity. Values that do not
// parse, or parse below 1, are ignored rather than clamped.
func (u *CartViewUseCase) SetQuantityFromInput(ctx context.Context, sku, rawValue string) cart.Cart {
	quantity, err := strconv.Atoi(strings.TrimSpace(rawValue))
	if err != nil || quantity < 1 {
		return u.store.Load(ctx)
	}
	return u.apply(ctx, sku, quantity)
}

// RemoveLine deletes the line. A line already removed by another surface is
// a silent no-op.
func (u *CartViewUseCase) RemoveLine(ctx context.Context, sku string) cart.Cart {
	u.markUpdating(sku)
	defer u.clearUpdating(sku)

	return u.store.Remove(ctx, sku)
}

// IsUpdating reports whether a mutation for sku is still in flight.
func (u *CartViewUseCase) IsUpdating(sku string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.updating[sku]
	return ok
}

func (u *CartViewUseCase) apply(ctx context.Context, sku string, quantity int) cart.Cart {
	u.markUpdating(sku)
	defer u.clearUpdating(sku)

	return u.store.SetQuantity(ctx, sku, quantity)
}

func (u *CartViewUseCase) markUpdating(sku string) {
	u.mu.Lock()
	u.updating[sku] = struct{}{}
	u.mu.Unlock()
}

func (u *CartViewUseCase) clearUpdating(sku string) {
	u.mu.Lock()
	delete(u.updating, sku)
	u.mu.Unlock()
}
