package handlers

import (
	"net/http"
	"strconv"

	"github.com/zenvory/storefront-service/internal/application/commands"
	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/application/use_cases"
	"github.com/zenvory/storefront-service/internal/domain/cart"
	"github.com/zenvory/storefront-service/internal/infrastructure/http/response"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
)

type CartHandler struct {
	addToCart *commands.AddToCartHandler
	view      *use_cases.CartViewUseCase
	store     ports.CartStore
	log       *logger.Logger
}

func NewCartHandler(
	addToCart *commands.AddToCartHandler,
	view *use_cases.CartViewUseCase,
	store ports.CartStore,
	log *logger.Logger,
) *CartHandler {
	return &CartHandler{
		addToCart: addToCart,
		view:      view,
		store:     store,
		log:       log,
	}
}

type cartView struct {
	Lines     []cart.Line `json:"lines"`
	ItemCount int         `json:"item_count"`
	Subtotal  string      `json:"subtotal"`
}

func (h *CartHandler) renderCart(c cart.Cart) cartView {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Lines:     lines,
		ItemCount: cart.ItemCount(c),
		Subtotal:  cart.Subtotal(c).StringFixed(2),
	}
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	response.WriteSuccess(w, h.renderCart(h.store.Load(r.Context())))
}

func (h *CartHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	count, subtotal := h.view.Summary(r.Context())
	response.WriteSuccess(w, map[string]interface{}{
		"item_count": count,
		"subtotal":   subtotal.StringFixed(2),
	})
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")
	quantity := r.URL.Query().Get("quantity")

	h.log.Info("Add to cart request received",
		"sku", sku,
		"quantity", quantity,
	)

	if sku == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"sku": "sku is required",
		})
		return
	}

	metrics := monitoring.NewCartMetrics("add")

	before := h.store.Load(r.Context())
	resp, err := h.addToCart.Handle(r.Context(), commands.AddToCartCommand{
		SKU:      sku,
		Quantity: quantity,
	})
	if err != nil {
		h.log.Error("Add to cart failed", "sku", sku, "error", err.Error())
		metrics.RecordFailure()
		response.WriteDomainError(w, err)
		return
	}

	_, existed := before.Find(sku)
	metrics.RecordAdd(existed)
	monitoring.UpdateCartGauges(resp.ItemCount, subtotalFloat(resp.Subtotal))

	response.WriteSuccess(w, resp)
}

// HandleLine routes /cart/items/{sku} and its increment/decrement actions.
// No-op outcomes (unknown sku, sub-1 input, already-removed line) return the
// unchanged cart and leave the counters alone.
func (h *CartHandler) HandleLine(w http.ResponseWriter, r *http.Request, sku, action string) {
	ctx := r.Context()
	before := h.store.Load(ctx)

	switch {
	case action == "increment" && r.Method == http.MethodPost:
		c := h.view.Increment(ctx, sku)
		if cartChanged(before, c) {
			monitoring.NewCartMetrics("update").RecordUpdate()
		}
		response.WriteSuccess(w, h.renderCart(c))
	case action == "decrement" && r.Method == http.MethodPost:
		c := h.view.Decrement(ctx, sku)
		if cartChanged(before, c) {
			monitoring.NewCartMetrics("update").RecordUpdate()
		}
		response.WriteSuccess(w, h.renderCart(c))
	case action == "" && r.Method == http.MethodPut:
		c := h.view.SetQuantityFromInput(ctx, sku, r.URL.Query().Get("quantity"))
		if cartChanged(before, c) {
			monitoring.NewCartMetrics("update").RecordUpdate()
		}
		response.WriteSuccess(w, h.renderCart(c))
	case action == "" && r.Method == http.MethodDelete:
		c := h.view.RemoveLine(ctx, sku)
		if cartChanged(before, c) {
			monitoring.NewCartMetrics("remove").RecordRemoval()
		}
		response.WriteSuccess(w, h.renderCart(c))
	default:
		http.NotFound(w, r)
	}
}

func cartChanged(before, after cart.Cart) bool {
	if len(before.Lines) != len(after.Lines) {
		return true
	}
	for i := range before.Lines {
		if before.Lines[i] != after.Lines[i] {
			return true
		}
	}
	return false
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	c := h.store.Clear(r.Context())
	monitoring.UpdateCartGauges(0, 0)
	response.WriteSuccess(w, h.renderCart(c))
}

func subtotalFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
