package cart

import (
	"github.com/shopspring/decimal"
)

// ItemCount returns the sum of line quantities, 0 for an empty cart.
func ItemCount(c Cart) int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Subtotal returns the sum of price times quantity across all lines. Lines
// whose stored price failed numeric coercion contribute 0.
func Subtotal(c Cart) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		lineTotal := line.Price.Decimal().Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
	}
	return total
}
