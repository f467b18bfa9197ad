package cart_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenvory/storefront-service/internal/domain/cart"
)

func line(sku, name string, price float64, quantity int) cart.Line {
	return cart.Line{
		SKU:      sku,
		Name:     name,
		Price:    cart.Price(price),
		Quantity: quantity,
		Image:    "https://zenvorytradersllc.com/images/products/" + sku + ".png",
	}
}

func TestAddOrMergeDistinctSKUs(t *testing.T) {
	var c cart.Cart

	merged := c.AddOrMerge(line("A1", "Widget", 9.99, 2))
	assert.False(t, merged)
	merged = c.AddOrMerge(line("B2", "Gadget", 4.50, 1))
	assert.False(t, merged)
	merged = c.AddOrMerge(line("C3", "Sprocket", 1.25, 7))
	assert.False(t, merged)

	require.Len(t, c.Lines, 3)
	assert.Equal(t, "A1", c.Lines[0].SKU)
	assert.Equal(t, "B2", c.Lines[1].SKU)
	assert.Equal(t, "C3", c.Lines[2].SKU)
}

func TestAddOrMergeSameSKU(t *testing.T) {
	var c cart.Cart

	c.AddOrMerge(line("A1", "Widget", 9.99, 2))

	// Price, name and image of the incoming line must not replace the
	// stored values; only the quantity grows.
	incoming := line("A1", "Widget (renamed)", 19.99, 3)
	incoming.Image = "https://elsewhere.example/other.png"
	merged := c.AddOrMerge(incoming)

	assert.True(t, merged)
	require.Len(t, c.Lines, 1)
	got := c.Lines[0]
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, cart.Price(9.99), got.Price)
	assert.Equal(t, "https://zenvorytradersllc.com/images/products/A1.png", got.Image)
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		sku      string
		quantity int
		wantOK   bool
		wantQty  int
	}{
		{name: "valid update", sku: "A1", quantity: 4, wantOK: true, wantQty: 4},
		{name: "zero rejected", sku: "A1", quantity: 0, wantOK: false, wantQty: 2},
		{name: "negative rejected", sku: "A1", quantity: -3, wantOK: false, wantQty: 2},
		{name: "missing sku is a no-op", sku: "nope", quantity: 4, wantOK: false, wantQty: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c cart.Cart
			c.AddOrMerge(line("A1", "Widget", 9.99, 2))

			ok := c.SetQuantity(tt.sku, tt.quantity)

			assert.Equal(t, tt.wantOK, ok)
			stored, found := c.Find("A1")
			require.True(t, found)
			assert.Equal(t, tt.wantQty, stored.Quantity)
		})
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	var c cart.Cart
	c.AddOrMerge(line("A1", "Widget", 9.99, 2))
	c.AddOrMerge(line("B2", "Gadget", 4.50, 1))

	removed, found := c.Remove("A1")
	assert.True(t, found)
	assert.Equal(t, "Widget", removed.Name)
	require.Len(t, c.Lines, 1)

	_, found = c.Remove("A1")
	assert.False(t, found)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "B2", c.Lines[0].SKU)
}

func TestAggregates(t *testing.T) {
	var c cart.Cart

	assert.Equal(t, 0, cart.ItemCount(c))
	assert.True(t, cart.Subtotal(c).IsZero())

	c.AddOrMerge(line("A1", "Widget", 9.99, 2))
	c.AddOrMerge(line("A1", "Widget", 9.99, 3))

	assert.Equal(t, 5, cart.ItemCount(c))
	assert.Equal(t, "49.95", cart.Subtotal(c).StringFixed(2))
}

func TestPriceCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want cart.Price
	}{
		{name: "number", raw: `{"sku":"B2","price":9.99,"quantity":1}`, want: 9.99},
		{name: "numeric string", raw: `{"sku":"B2","price":"12.50","quantity":1}`, want: 12.5},
		{name: "garbage string", raw: `{"sku":"B2","price":"not-a-number","quantity":1}`, want: 0},
		{name: "null", raw: `{"sku":"B2","price":null,"quantity":1}`, want: 0},
		{name: "absent", raw: `{"sku":"B2","quantity":1}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l cart.Line
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &l))
			assert.Equal(t, tt.want, l.Price)
		})
	}
}

func TestSubtotalWithUnparsablePrice(t *testing.T) {
	var l cart.Line
	require.NoError(t, json.Unmarshal([]byte(`{"sku":"B2","price":"not-a-number","quantity":1}`), &l))

	c := cart.Cart{Lines: []cart.Line{l}}
	assert.True(t, cart.Subtotal(c).IsZero())
	assert.Equal(t, 1, cart.ItemCount(c))
}

func TestLineJSONRoundTrip(t *testing.T) {
	id := "77"
	l := cart.Line{SKU: "A1", ID: &id, Name: "Widget", Price: 9.99, Quantity: 2, Image: "https://x/y.png"}

	data, err := json.Marshal(l)
	require.NoError(t, err)
	// Price stays a JSON number so older readers of the stored cart keep working.
	assert.JSONEq(t, `{"sku":"A1","id":"77","name":"Widget","price":9.99,"quantity":2,"image":"https://x/y.png"}`, string(data))
}

func TestIsEmptyOnReturnedValue(t *testing.T) {
	load := func() cart.Cart { return cart.Cart{} }

	// IsEmpty must be callable on an unaddressed return value, the way
	// callers chain it off store loads.
	assert.True(t, load().IsEmpty())
	assert.False(t, cart.Cart{Lines: []cart.Line{line("A1", "Widget", 9.99, 1)}}.IsEmpty())
}
