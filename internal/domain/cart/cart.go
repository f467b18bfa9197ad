package cart

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// Price survives whatever shape an upstream surface stored: a JSON number,
// a numeric string, or garbage. Garbage decodes to zero instead of failing
// the whole cart read.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) >= 2 && data[0] == '"' {
		d, err := decimal.NewFromString(string(data[1 : len(data)-1]))
		if err != nil {
			*p = 0
			return nil
		}
		f, _ := d.Float64()
		*p = Price(f)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(p), 'f', -1, 64)), nil
}

func (p Price) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(p))
}

// Line is one entry in the persisted cart. SKU is the identity key; ID is an
// optional upstream identifier carried only for display.
type Line struct {
	SKU      string  `json:"sku"`
	ID       *string `json:"id"`
	Name     string  `json:"name"`
	Price    Price   `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Cart is an ordered sequence of lines. Insertion order is preserved and SKU
// is unique across the sequence; uniqueness is maintained by AddOrMerge.
type Cart struct {
	Lines []Line
}

func (c *Cart) Find(sku string) (*Line, bool) {
	for i := range c.Lines {
		if c.Lines[i].SKU == sku {
			return &c.Lines[i], true
		}
	}
	return nil, false
}

// AddOrMerge inserts line, or when a line with the same SKU exists, adds the
// quantities together. Name, price and image of an existing line are kept as
// stored; the first write wins for display metadata. Returns true when the
// quantity was merged into an existing line.
func (c *Cart) AddOrMerge(line Line) bool {
	if existing, ok := c.Find(line.SKU); ok {
		existing.Quantity += line.Quantity
		return true
	}

	c.Lines = append(c.Lines, line)
	return false
}

// SetQuantity replaces the quantity of the line with the given SKU. Values
// below 1 are rejected and a missing SKU is a no-op; both return false.
func (c *Cart) SetQuantity(sku string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	line, ok := c.Find(sku)
	if !ok {
		return false
	}

	line.Quantity = quantity
	return true
}

// Remove deletes the line with the given SKU. A missing SKU is a no-op.
func (c *Cart) Remove(sku string) (Line, bool) {
	for i := range c.Lines {
		if c.Lines[i].SKU == sku {
			removed := c.Lines[i]
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return removed, true
		}
	}
	return Line{}, false
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
