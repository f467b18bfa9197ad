package commands

import (
	"context"

	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/domain/cart"
	domainErrors "github.com/zenvory/storefront-service/internal/domain/errors"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/normalizer"
)

type AddToCartCommand struct {
	SKU      string
	Quantity string
}

type AddToCartResponse struct {
	Lines     []cart.Line `json:"lines"`
	ItemCount int         `json:"item_count"`
	Subtotal  string      `json:"subtotal"`
}

// AddToCartHandler is the storefront's add-to-cart flow: fetch the product,
// normalize it into a canonical line, hand it to the cart store.
type AddToCartHandler struct {
	products ports.ProductRepository
	store    ports.CartStore
	norm     *normalizer.Normalizer
	log      *logger.Logger
}

func NewAddToCartHandler(
	products ports.ProductRepository,
	store ports.CartStore,
	norm *normalizer.Normalizer,
	log *logger.Logger,
) *AddToCartHandler {
	return &AddToCartHandler{
		products: products,
		store:    store,
		norm:     norm,
		log:      log,
	}
}

func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*AddToCartResponse, error) {
	rec, err := h.products.GetProductBySKU(ctx, cmd.SKU)
	if err != nil {
		h.log.Error("Failed to load product for add-to-cart", "sku", cmd.SKU, "error", err.Error())
		if err == domainErrors.ErrProductNotFound {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}

	line := h.norm.Normalize(*rec, cmd.Quantity)
	updated := h.store.AddOrMerge(ctx, line)

	return &AddToCartResponse{
		Lines:     updated.Lines,
		ItemCount: cart.ItemCount(updated),
		Subtotal:  cart.Subtotal(updated).StringFixed(2),
	}, nil
}
