package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenvory/storefront-service/internal/application/cartstore"
	"github.com/zenvory/storefront-service/internal/application/commands"
	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/application/use_cases"
	domainErrors "github.com/zenvory/storefront-service/internal/domain/errors"
	"github.com/zenvory/storefront-service/internal/domain/product"
	"github.com/zenvory/storefront-service/internal/infrastructure/http/handlers"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
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

func newCartHandler(t *testing.T) *handlers.CartHandler {
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
		"A1": {SKU: "A1", Name: "Widget", Price: "9.99"},
	}}
	norm := normalizer.New("https://zenvorytradersllc.com", "/images/products/placeholder.png")

	addToCart := commands.NewAddToCartHandler(repo, store, norm, log)
	view := use_cases.NewCartViewUseCase(store, log)

	return handlers.NewCartHandler(addToCart, view, store, log)
}

type cartEnvelope struct {
	Data struct {
		Lines []struct {
			SKU      string  `json:"sku"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"lines"`
		ItemCount int    `json:"item_count"`
		Subtotal  string `json:"subtotal"`
	} `json:"data"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartEnvelope {
	t.Helper()

	var envelope cartEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestCartHandler_AddItem(t *testing.T) {
	handler := newCartHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/cart/items?sku=A1&quantity=2", nil)
	rec := httptest.NewRecorder()
	handler.HandleAddItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			ItemCount int    `json:"item_count"`
			Subtotal  string `json:"subtotal"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.ItemCount)
	assert.Equal(t, "19.98", envelope.Data.Subtotal)
}

func TestCartHandler_AddItemMissingSKU(t *testing.T) {
	handler := newCartHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	rec := httptest.NewRecorder()
	handler.HandleAddItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_AddItemUnknownProduct(t *testing.T) {
	handler := newCartHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/cart/items?sku=ghost&quantity=1", nil)
	rec := httptest.NewRecorder()
	handler.HandleAddItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_GetCartEmpty(t *testing.T) {
	handler := newCartHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetCart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeCart(t, rec)
	assert.Empty(t, envelope.Data.Lines)
	assert.Equal(t, 0, envelope.Data.ItemCount)
	assert.Equal(t, "0.00", envelope.Data.Subtotal)
}

func TestCartHandler_LineLifecycle(t *testing.T) {
	handler := newCartHandler(t)

	add := httptest.NewRequest(http.MethodPost, "/cart/items?sku=A1&quantity=1", nil)
	handler.HandleAddItem(httptest.NewRecorder(), add)

	incr := httptest.NewRequest(http.MethodPost, "/cart/items/A1/increment", nil)
	rec := httptest.NewRecorder()
	handler.HandleLine(rec, incr, "A1", "increment")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeCart(t, rec).Data.ItemCount)

	set := httptest.NewRequest(http.MethodPut, "/cart/items/A1?quantity=5", nil)
	rec = httptest.NewRecorder()
	handler.HandleLine(rec, set, "A1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeCart(t, rec).Data.ItemCount)

	decr := httptest.NewRequest(http.MethodPost, "/cart/items/A1/decrement", nil)
	rec = httptest.NewRecorder()
	handler.HandleLine(rec, decr, "A1", "decrement")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decodeCart(t, rec).Data.ItemCount)

	remove := httptest.NewRequest(http.MethodDelete, "/cart/items/A1", nil)
	rec = httptest.NewRecorder()
	handler.HandleLine(rec, remove, "A1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Data.Lines)
}

func TestCartHandler_SetQuantityBelowOneKeepsCart(t *testing.T) {
	handler := newCartHandler(t)

	add := httptest.NewRequest(http.MethodPost, "/cart/items?sku=A1&quantity=3", nil)
	handler.HandleAddItem(httptest.NewRecorder(), add)

	set := httptest.NewRequest(http.MethodPut, "/cart/items/A1?quantity=0", nil)
	rec := httptest.NewRecorder()
	handler.HandleLine(rec, set, "A1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeCart(t, rec).Data.ItemCount)
}

func TestCartHandler_Clear(t *testing.T) {
	handler := newCartHandler(t)

	add := httptest.NewRequest(http.MethodPost, "/cart/items?sku=A1&quantity=3", nil)
	handler.HandleAddItem(httptest.NewRecorder(), add)

	clear := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.HandleClear(rec, clear)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeCart(t, rec)
	assert.Empty(t, envelope.Data.Lines)
	assert.Equal(t, "0.00", envelope.Data.Subtotal)
}

func TestCartHandler_LineCountersSkipNoOps(t *testing.T) {
	handler := newCartHandler(t)

	add := httptest.NewRequest(http.MethodPost, "/cart/items?sku=A1&quantity=2", nil)
	handler.HandleAddItem(httptest.NewRecorder(), add)

	updatesBefore := testutil.ToFloat64(monitoring.CartUpdatesTotal)
	removalsBefore := testutil.ToFloat64(monitoring.CartRemovalsTotal)

	incr := httptest.NewRequest(http.MethodPost, "/cart/items/ghost/increment", nil)
	handler.HandleLine(httptest.NewRecorder(), incr, "ghost", "increment")

	set := httptest.NewRequest(http.MethodPut, "/cart/items/A1?quantity=0", nil)
	handler.HandleLine(httptest.NewRecorder(), set, "A1", "")

	remove := httptest.NewRequest(http.MethodDelete, "/cart/items/ghost", nil)
	handler.HandleLine(httptest.NewRecorder(), remove, "ghost", "")

	assert.Equal(t, updatesBefore, testutil.ToFloat64(monitoring.CartUpdatesTotal))
	assert.Equal(t, removalsBefore, testutil.ToFloat64(monitoring.CartRemovalsTotal))

	incr = httptest.NewRequest(http.MethodPost, "/cart/items/A1/increment", nil)
	handler.HandleLine(httptest.NewRecorder(), incr, "A1", "increment")

	remove = httptest.NewRequest(http.MethodDelete, "/cart/items/A1", nil)
	handler.HandleLine(httptest.NewRecorder(), remove, "A1", "")

	assert.Equal(t, updatesBefore+1, testutil.ToFloat64(monitoring.CartUpdatesTotal))
	assert.Equal(t, removalsBefore+1, testutil.ToFloat64(monitoring.CartRemovalsTotal))
}
