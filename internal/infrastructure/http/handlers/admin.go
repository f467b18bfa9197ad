package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/domain/product"
	"github.com/zenvory/storefront-service/internal/infrastructure/http/response"
	"github.com/zenvory/storefront-service/internal/pkg/generator"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
)

const maxSeedCount = 500

type AdminHandler struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	generator  *generator.ProductGenerator
	log        *logger.Logger
}

func NewAdminHandler(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	gen *generator.ProductGenerator,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		products:   products,
		categories: categories,
		generator:  gen,
		log:        log,
	}
}

func (h *AdminHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var rec product.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body", err.Error())
		return
	}

	if err := h.products.CreateProduct(r.Context(), &rec); err != nil {
		h.log.Error("Failed to create product", "sku", rec.SKU, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Product created", "sku", rec.SKU)
	response.WriteCreated(w, rec, "Product created")
}

func (h *AdminHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request, sku string) {
	var rec product.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body", err.Error())
		return
	}
	rec.SKU = sku

	if err := h.products.UpdateProduct(r.Context(), &rec); err != nil {
		h.log.Error("Failed to update product", "sku", sku, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, rec, "Product updated")
}

func (h *AdminHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request, sku string) {
	if err := h.products.DeleteProduct(r.Context(), sku); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Product deleted", "sku", sku)
	response.WriteSuccess(w, map[string]string{"sku": sku}, "Product deleted")
}

func (h *AdminHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category product.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body", err.Error())
		return
	}

	if err := h.categories.CreateCategory(r.Context(), &category); err != nil {
		h.log.Error("Failed to create category", "name", category.Name, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	response.WriteCreated(w, category, "Category created")
}

func (h *AdminHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request, id string) {
	var category product.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body", err.Error())
		return
	}
	category.ID = id

	if err := h.categories.UpdateCategory(r.Context(), &category); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, category, "Category updated")
}

func (h *AdminHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]string{"id": id}, "Category deleted")
}

// HandleSeed generates fake products for development environments.
func (h *AdminHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	count := 20
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"count": "count must be a positive integer",
			})
			return
		}
		count = parsed
	}
	if count > maxSeedCount {
		count = maxSeedCount
	}

	created := 0
	for _, rec := range h.generator.Generate(count) {
		if err := h.products.CreateProduct(r.Context(), &rec); err != nil {
			h.log.Warn("Seed product skipped", "sku", rec.SKU, "error", err.Error())
			continue
		}
		created++
	}

	h.log.Info("Seed completed", "requested", count, "created", created)
	response.WriteSuccess(w, map[string]int{
		"requested": count,
		"created":   created,
	}, "Seed completed")
}
