package ports

import (
	"context"

	"github.com/zenvory/storefront-service/internal/domain/cart"
)

// CartStore owns the persisted cart. Implementations never surface storage
// faults to callers: mutations either return the updated cart or an
// unchanged cart after emitting an error notification, and Load falls open
// to an empty cart on malformed data.
type CartStore interface {
	Load(ctx context.Context) cart.Cart
	AddOrMerge(ctx context.Context, line cart.Line) cart.Cart
	SetQuantity(ctx context.Context, sku string, quantity int) cart.Cart
	Remove(ctx context.Context, sku string) cart.Cart
	Clear(ctx context.Context) cart.Cart
}
