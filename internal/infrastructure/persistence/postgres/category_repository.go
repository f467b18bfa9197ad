package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	domainErrors "github.com/zenvory/storefront-service/internal/domain/errors"
	"github.com/zenvory/storefront-service/internal/domain/product"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(conn *Connection) *CategoryRepository {
	return &CategoryRepository{
		db: conn.GetDB(),
	}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]product.Category, error) {
	query := `SELECT id, name, image_url, created_at FROM categories ORDER BY name`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "categories", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []product.Category
	for rows.Next() {
		var c product.Category
		var imageURL sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &imageURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.ImageURL = imageURL.String
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *product.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "categories",
		`INSERT INTO categories (id, name, image_url) VALUES ($1, $2, $3)`,
		category.ID, category.Name, category.ImageURL,
	)
	return err
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *product.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "categories",
		`UPDATE categories SET name = $2, image_url = $3 WHERE id = $1`,
		category.ID, category.Name, category.ImageURL,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "categories",
		`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrCategoryNotFound
	}

	return nil
}
