package product

import (
	"time"

	"github.com/zenvory/storefront-service/internal/domain/errors"
)

// Record is a product as the catalog surfaces deliver it. Field names mirror
// the upstream API: prices arrive as strings and may live in any of the
// tiered fields, and the image may sit in any of three fields depending on
// which listing produced the record. The normalizer resolves the ambiguity
// before anything reaches the cart.
type Record struct {
	ID           *string   `json:"id,omitempty"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Price200500  string    `json:"price_200_500,omitempty"`
	Price        string    `json:"price,omitempty"`
	Price500Plus string    `json:"price_500plus,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ImageMain    string    `json:"image_main,omitempty"`
	ImgPath      string    `json:"img_path,omitempty"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

func (r *Record) Validate() error {
	if r.SKU == "" {
		return errors.ErrMissingSKU
	}
	if r.Name == "" {
		return errors.ErrMissingName
	}
	return nil
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.ErrMissingName
	}
	return nil
}
