package commands_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenvory/storefront-service/internal/application/cartstore"
	"github.com/zenvory/storefront-service/internal/application/commands"
	"github.com/zenvory/storefront-service/internal/application/ports"
	domainErrors "github.com/zenvory/storefront-service/internal/domain/errors"
	"github.com/zenvory/storefront-service/internal/domain/product"
	"github.com/zenvory/storefront-service/internal/infrastructure/persistence/memory"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/normalizer"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

type fakeProductRepo struct {
	records map[string]product.Record
}

func (f *fakeProductRepo) ListProducts(context.Context, ports.ProductFilter) ([]product.Record, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetProductBySKU(_ context.Context, sku string) (*product.Record, error) {
	rec, ok := f.records[sku]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	return &rec, nil
}

func (f *fakeProductRepo) ListFeatured(context.Context) ([]product.Record, error) {
	return nil, nil
}

func (f *fakeProductRepo) CreateProduct(context.Context, *product.Record) error { return nil }
func (f *fakeProductRepo) UpdateProduct(context.Context, *product.Record) error { return nil }
func (f *fakeProductRepo) DeleteProduct(context.Context, string) error          { return nil }

func newHandler(t *testing.T) (*commands.AddToCartHandler, *cartstore.Store) {
	t.Helper()

	log := logger.NewLoggerWithOutput(io.Discard)
	store := cartstore.New(
		memory.NewKVStore(),
		"",
		notifier.NewBus[notifier.Event](),
		notifier.NewBus[notifier.KeyChange](),
		log,
	)
	repo := &fakeProductRepo{records: map[string]product.Record{
		"A1": {SKU: "A1", Name: "Widget", Price200500: "9.99", ImageURL: "/images/products/a1.png"},
		"B2": {SKU: "B2", Name: "Gadget", Price: "not-a-number"},
	}}
	norm := normalizer.New("https://zenvorytradersllc.com", "/images/products/placeholder.png")

	return commands.NewAddToCartHandler(repo, store, norm, log), store
}

func TestAddToCart(t *testing.T) {
	handler, _ := newHandler(t)
	ctx := context.Background()

	resp, err := handler.Handle(ctx, commands.AddToCartCommand{SKU: "A1", Quantity: "2"})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, "19.98", resp.Subtotal)
	assert.Equal(t, "https://zenvorytradersllc.com/images/products/a1.png", resp.Lines[0].Image)

	resp, err = handler.Handle(ctx, commands.AddToCartCommand{SKU: "A1", Quantity: "3"})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 5, resp.ItemCount)
	assert.Equal(t, "49.95", resp.Subtotal)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	handler, store := newHandler(t)
	ctx := context.Background()

	_, err := handler.Handle(ctx, commands.AddToCartCommand{SKU: "ghost", Quantity: "1"})

	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
	assert.True(t, store.Load(ctx).IsEmpty())
}

func TestAddToCartUnparsablePriceBecomesZero(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), commands.AddToCartCommand{SKU: "B2", Quantity: "1"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.ItemCount)
	assert.Equal(t, "0.00", resp.Subtotal)
}

func TestAddToCartQuantityClamp(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), commands.AddToCartCommand{SKU: "A1", Quantity: "0"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.ItemCount)
}
