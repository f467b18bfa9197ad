package handlers

import (
	"net/http"

	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/domain/product"
	"github.com/zenvory/storefront-service/internal/infrastructure/http/response"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
)

type CatalogHandler struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	log        *logger.Logger
}

func NewCatalogHandler(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		products:   products,
		categories: categories,
		log:        log,
	}
}

func (h *CatalogHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	filter := ports.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	records, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		h.log.Error("Failed to list products", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}
	if records == nil {
		records = []product.Record{}
	}

	response.WriteSuccess(w, records)
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request, sku string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	record, err := h.products.GetProductBySKU(r.Context(), sku)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, record)
}

func (h *CatalogHandler) HandleListFeatured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	records, err := h.products.ListFeatured(r.Context())
	if err != nil {
		h.log.Error("Failed to list featured products", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}
	if records == nil {
		records = []product.Record{}
	}

	response.WriteSuccess(w, records)
}

func (h *CatalogHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.log.Error("Failed to list categories", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}
	if categories == nil {
		categories = []product.Category{}
	}

	response.WriteSuccess(w, categories)
}
