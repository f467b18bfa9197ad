package normalizer

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zenvory/storefront-service/internal/domain/cart"
	"github.com/zenvory/storefront-service/internal/domain/product"
)

// Normalizer is the single boundary between heterogeneous upstream product
// records and the canonical cart line. Every add-to-cart path goes through
// Normalize before the store sees the line; the store does not re-validate
// quantity on insert.
type Normalizer struct {
	origin      string
	placeholder string
}

func New(origin, placeholder string) *Normalizer {
	return &Normalizer{
		origin:      strings.TrimSuffix(origin, "/"),
		placeholder: placeholder,
	}
}

func (n *Normalizer) Normalize(rec product.Record, rawQuantity string) cart.Line {
	return cart.Line{
		SKU:      rec.SKU,
		ID:       rec.ID,
		Name:     rec.Name,
		Price:    cart.Price(n.ResolvePrice(rec)),
		Quantity: ResolveQuantity(rawQuantity),
		Image:    n.ResolveImage(rec),
	}
}

// ResolvePrice picks the first usable price field: the wholesale tier, then
// the generic price, then the high-volume tier, then 0. A missing or
// unparsable price never blocks an add-to-cart.
func (n *Normalizer) ResolvePrice(rec product.Record) float64 {
	for _, raw := range []string{rec.Price200500, rec.Price, rec.Price500Plus} {
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		f, _ := d.Float64()
		return f
	}
	return 0
}

// ResolveImage picks the first populated image field, then makes it absolute.
// An already-absolute reference passes through unchanged; a relative fragment
// is joined to the origin with exactly one slash. With no image field at all
// the placeholder is used.
func (n *Normalizer) ResolveImage(rec product.Record) string {
	img := ""
	for _, candidate := range []string{rec.ImageURL, rec.ImageMain, rec.ImgPath} {
		if candidate != "" {
			img = candidate
			break
		}
	}
	if img == "" {
		img = n.placeholder
	}

	if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
		return img
	}
	return n.origin + "/" + strings.TrimPrefix(img, "/")
}

// ResolveQuantity parses free-form quantity input. Unparsable values and
// anything below 1 clamp to 1; this clamp applies only on the insert path.
func ResolveQuantity(raw string) int {
	raw = strings.TrimSpace(raw)

	q, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return 1
		}
		q = int(f)
	}

	if q < 1 {
		return 1
	}
	return q
}
