package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mgvega/tienda-backend/models"
)

func product(id uint, name string, price string) models.Product {
	return models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestAddIncrementsExistingEntry(t *testing.T) {
	c := New()
	p := product(1, "Teclado", "25.00")

	c.Add(p)
	c.Add(p)
	c.Add(product(2, "Ratón", "10.00"))

	entries := c.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, 1, entries[1].Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(product(1, "Teclado", "25.00"))
	c.Add(product(2, "Ratón", "10.00"))

	c.Remove(1)
	assert.Len(t, c.Entries(), 1)
	assert.Equal(t, uint(2), c.Entries()[0].ProductID)

	// removing an absent id is a no-op
	c.Remove(99)
	assert.Len(t, c.Entries(), 1)
}

func TestChangeQuantityNeverDropsBelowOne(t *testing.T) {
	c := New()
	c.Add(product(1, "Teclado", "25.00"))

	c.ChangeQuantity(1, 4)
	assert.Equal(t, 5, c.Entries()[0].Quantity)

	c.ChangeQuantity(1, -10)
	assert.Equal(t, 1, c.Entries()[0].Quantity)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(product(1, "Teclado", "25.00"))
	c.Clear()
	assert.Zero(t, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestTotals(t *testing.T) {
	c := New()
	c.Add(product(1, "Teclado", "25.50"))
	c.Add(product(1, "Teclado", "25.50"))
	c.Add(product(2, "Ratón", "9.99"))

	assert.True(t, c.Total().Equal(decimal.RequireFromString("60.99")), "got %s", c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestMergeRepurchase(t *testing.T) {
	live := map[uint]models.Product{
		1: product(1, "Teclado", "30.00"), // price moved since the old order
		3: product(3, "Monitor", "120.00"),
	}
	lookup := func(id uint) (models.Product, bool) {
		p, ok := live[id]
		return p, ok
	}

	c := New()
	c.Add(live[1]) // already one unit in the cart

	lines := []models.OrderLine{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")}, // retired
		{ProductID: 3, Quantity: 4, UnitPrice: decimal.RequireFromString("99.00")},
	}

	unavailable := c.Merge(lines, lookup)

	assert.Equal(t, 1, unavailable)
	assert.Len(t, c.Entries(), 2)
	assert.Equal(t, 3, c.Entries()[0].Quantity, "existing entry merged additively")
	assert.Equal(t, 4, c.Entries()[1].Quantity)
	// merged entries carry the current catalog price, not the snapshot
	assert.True(t, c.Entries()[1].Price.Equal(decimal.RequireFromString("120.00")))
}

func TestFromEntriesNormalizes(t *testing.T) {
	c := FromEntries([]Entry{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ProductID: 1, Quantity: 3, Price: decimal.RequireFromString("10.00")},
		{ProductID: 2, Quantity: 0, Price: decimal.RequireFromString("4.00")},
	})
	assert.Len(t, c.Entries(), 1)
	assert.Equal(t, 5, c.Entries()[0].Quantity)
}
