package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/zenvory/storefront-service/internal/application/ports"
	domainErrors "github.com/zenvory/storefront-service/internal/domain/errors"
	"github.com/zenvory/storefront-service/internal/domain/product"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(conn *Connection) *ProductRepository {
	return &ProductRepository{
		db: conn.GetDB(),
	}
}

const productColumns = `id, sku, name, description, category, price_200_500, price, price_500plus, image_url, image_main, img_path, featured, created_at`

func (r *ProductRepository) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]product.Record, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, `category = $1`)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		if len(args) == 2 {
			conditions = append(conditions, `name ILIKE $2`)
		} else {
			conditions = append(conditions, `name ILIKE $1`)
		}
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY created_at DESC, sku`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "products", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) GetProductBySKU(ctx context.Context, sku string) (*product.Record, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "products", query, sku)

	rec, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}

	return rec, nil
}

func (r *ProductRepository) ListFeatured(ctx context.Context) ([]product.Record, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE featured ORDER BY created_at DESC`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "products", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) CreateProduct(ctx context.Context, rec *product.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.ID == nil {
		id := uuid.NewString()
		rec.ID = &id
	}

	query := `
		INSERT INTO products (id, sku, name, description, category, price_200_500, price, price_500plus, image_url, image_main, img_path, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (sku) DO NOTHING
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "products", query,
		*rec.ID, rec.SKU, rec.Name, rec.Description, rec.Category,
		rec.Price200500, rec.Price, rec.Price500Plus,
		rec.ImageURL, rec.ImageMain, rec.ImgPath, rec.Featured,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrDuplicateSKU
	}

	return nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, rec *product.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4,
		    price_200_500 = $5, price = $6, price_500plus = $7,
		    image_url = $8, image_main = $9, img_path = $10, featured = $11
		WHERE sku = $1
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "products", query,
		rec.SKU, rec.Name, rec.Description, rec.Category,
		rec.Price200500, rec.Price, rec.Price500Plus,
		rec.ImageURL, rec.ImageMain, rec.ImgPath, rec.Featured,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, sku string) error {
	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "products",
		`DELETE FROM products WHERE sku = $1`, sku)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrProductNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*product.Record, error) {
	var rec product.Record
	var id sql.NullString
	var description, category sql.NullString
	var price200500, price, price500plus sql.NullString
	var imageURL, imageMain, imgPath sql.NullString

	err := row.Scan(
		&id, &rec.SKU, &rec.Name, &description, &category,
		&price200500, &price, &price500plus,
		&imageURL, &imageMain, &imgPath,
		&rec.Featured, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if id.Valid {
		rec.ID = &id.String
	}
	rec.Description = description.String
	rec.Category = category.String
	rec.Price200500 = price200500.String
	rec.Price = price.String
	rec.Price500Plus = price500plus.String
	rec.ImageURL = imageURL.String
	rec.ImageMain = imageMain.String
	rec.ImgPath = imgPath.String

	return &rec, nil
}

func scanProducts(rows *sql.Rows) ([]product.Record, error) {
	var records []product.Record
	for rows.Next() {
		rec, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
