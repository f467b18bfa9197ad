package ports

import (
	"context"

	"github.com/zenvory/storefront-service/internal/domain/product"
)

type ProductFilter struct {
	Category string
	Search   string
}

type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]product.Record, error)
	GetProductBySKU(ctx context.Context, sku string) (*product.Record, error)
	ListFeatured(ctx context.Context) ([]product.Record, error)
	CreateProduct(ctx context.Context, rec *product.Record) error
	UpdateProduct(ctx context.Context, rec *product.Record) error
	DeleteProduct(ctx context.Context, sku string) error
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]product.Category, error)
	CreateCategory(ctx context.Context, category *product.Category) error
	UpdateCategory(ctx context.Context, category *product.Category) error
	DeleteCategory(ctx context.Context, id string) error
}
