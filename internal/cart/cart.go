// Package cart is the transient, client-only order draft: the catalog
// snapshot annotated with requested quantities. Nothing here is persisted
// remotely until checkout.
package cart

import (
	"github.com/shopspring/decimal"

	"docemarce/internal/models"
)

// Line pairs a product with its requested quantity.
type Line struct {
	Product  models.Product
	Quantity int
}

// Cart maps products to requested quantities, preserving catalog order.
type Cart struct {
	lines []Line
}

// New builds a cart over a catalog snapshot with every quantity at zero.
func New(products []models.Product) *Cart {
	lines := make([]Line, len(products))
	for i, p := range products {
		lines[i] = Line{Product: p}
	}
	return &Cart{lines: lines}
}

// Adjust adds delta to a product's quantity, clamping the result at zero.
// There is no upper bound. Unknown product IDs are ignored.
func (c *Cart) Adjust(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ProductID != productID {
			continue
		}
		q := c.lines[i].Quantity + delta
		if q < 0 {
			q = 0
		}
		c.lines[i].Quantity = q
		return
	}
}

// Quantity returns the requested quantity for a product, zero if unknown.
func (c *Cart) Quantity(productID string) int {
	for _, l := range c.lines {
		if l.Product.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// Lines returns all cart lines in catalog order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Selected returns only the lines with quantity greater than zero, the subset
// that goes into a submission.
func (c *Cart) Selected() []Line {
	var out []Line
	for _, l := range c.lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

// Empty reports whether no product has been selected.
func (c *Cart) Empty() bool {
	return len(c.Selected()) == 0
}

// Total computes price × quantity over all lines, fresh on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		if l.Quantity == 0 {
			continue
		}
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Reset returns every quantity to zero, as after a successful submission or
// a cancelled draft.
func (c *Cart) Reset() {
	for i := range c.lines {
		c.lines[i].Quantity = 0
	}
}
