package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/zenvory/storefront-service/internal/domain/product"
)

var categories = []string{
	"furniture", "lighting", "decor", "textiles", "kitchen",
}

type ProductGenerator struct {
	faker  *gofakeit.Faker
	random *rand.Rand
}

func NewProductGenerator() *ProductGenerator {
	seed := time.Now().UTC().UnixNano()
	return &ProductGenerator{
		faker:  gofakeit.New(uint64(seed)),
		random: rand.New(rand.NewSource(seed)),
	}
}

// Generate produces records shaped like upstream catalog rows: string prices
// scattered across the tiered fields and the image placed in one of the three
// image fields, so seeded data exercises the same resolution paths real data
// does.
func (g *ProductGenerator) Generate(count int) []product.Record {
	records := make([]product.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.generateOne())
	}
	return records
}

func (g *ProductGenerator) generateOne() product.Record {
	name := g.faker.ProductName()
	rec := product.Record{
		SKU:         g.GenerateSKU(name),
		Name:        name,
		Description: g.faker.ProductDescription(),
		Category:    categories[g.random.Intn(len(categories))],
		Featured:    g.random.Intn(5) == 0,
	}

	price := fmt.Sprintf("%.2f", 5+g.random.Float64()*495)
	switch g.random.Intn(3) {
	case 0:
		rec.Price200500 = price
	case 1:
		rec.Price = price
	default:
		rec.Price500Plus = price
	}

	image := g.GenerateImageURL()
	switch g.random.Intn(4) {
	case 0:
		rec.ImageURL = image
	case 1:
		rec.ImageMain = image
	case 2:
		rec.ImgPath = fmt.Sprintf("/images/products/%s.jpg", rec.SKU)
	default:
		// no image, the normalizer falls back to the placeholder
	}

	return rec
}

func (g *ProductGenerator) GenerateSKU(name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	if len(slug) > 24 {
		slug = slug[:24]
	}
	return fmt.Sprintf("%s-%04d", slug, g.random.Intn(10000))
}

func (g *ProductGenerator) GenerateImageURL() string {
	width := 300 + g.random.Intn(200)
	height := 300 + g.random.Intn(200)
	return fmt.Sprintf("https://picsum.photos/%d/%d", width, height)
}
