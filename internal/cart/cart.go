// Package cart implements the client-side shopping cart: a small aggregate
// keyed by product identity, with no I/O. All operations mutate the receiver.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mgvega/tienda-backend/models"
)

// Entry is one selected product. Quantity is always >= 1.
type Entry struct {
	ProductID uint            `json:"id_producto"`
	Name      string          `json:"nombre"`
	Price     decimal.Decimal `json:"precio"`
	Quantity  int             `json:"cantidad"`
}

// Cart holds at most one entry per product identity.
type Cart struct {
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// FromEntries rebuilds a cart from a stored snapshot, merging any duplicate
// product ids it might contain.
func FromEntries(entries []Entry) *Cart {
	c := New()
	for _, e := range entries {
		if e.Quantity < 1 {
			continue
		}
		if existing := c.find(e.ProductID); existing != nil {
			existing.Quantity += e.Quantity
			continue
		}
		c.entries = append(c.entries, e)
	}
	return c
}

func (c *Cart) find(productID uint) *Entry {
	for i := range c.entries {
		if c.entries[i].ProductID == productID {
			return &c.entries[i]
		}
	}
	return nil
}

// Add puts one unit of the product in the cart, incrementing the quantity if
// it is already there.
func (c *Cart) Add(p models.Product) {
	if e := c.find(p.ID); e != nil {
		e.Quantity++
		return
	}
	c.entries = append(c.entries, Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Remove drops the entry for the product; no-op when absent.
func (c *Cart) Remove(productID uint) {
	for i := range c.entries {
		if c.entries[i].ProductID == productID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// ChangeQuantity adds delta to the entry's quantity, flooring at 1. Dropping
// an entry goes through Remove.
func (c *Cart) ChangeQuantity(productID uint, delta int) {
	if e := c.find(productID); e != nil {
		e.Quantity += delta
		if e.Quantity < 1 {
			e.Quantity = 1
		}
	}
}

func (c *Cart) Clear() {
	c.entries = nil
}

// Merge repurchases historical order lines. Each line resolvable through
// lookup is merged into the cart additively at the product's current price;
// retired products are skipped and counted, never failing the whole merge.
func (c *Cart) Merge(lines []models.OrderLine, lookup func(productID uint) (models.Product, bool)) (unavailable int) {
	for _, line := range lines {
		p, ok := lookup(line.ProductID)
		if !ok {
			unavailable++
			continue
		}
		if e := c.find(line.ProductID); e != nil {
			e.Quantity += line.Quantity
			continue
		}
		c.entries = append(c.entries, Entry{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})
	}
	return unavailable
}

// Entries returns a copy of the cart's contents.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Len() int { return len(c.entries) }

// Total is Σ(price × quantity).
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// ItemCount is Σ(quantity).
func (c *Cart) ItemCount() int {
	n := 0
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}
