package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
)

func coffee() Product {
	return Product{ID: "p-coffee", Name: "Coffee Beans 1kg", SKU: "COF-001", UnitPrice: types.MustMoney("18.50")}
}

func grinder() Product {
	return Product{ID: "p-grinder", Name: "Burr Grinder", SKU: "GRN-010", UnitPrice: types.MustMoney("120.00")}
}

func TestAggregator_AddItem(t *testing.T) {
	t.Run("new product creates a line", func(t *testing.T) {
		agg := New()
		agg.AddItem(coffee(), 2)

		require.Equal(t, 1, agg.Len())
		items := agg.Items()
		assert.Equal(t, 2, items[0].Quantity)
		assert.True(t, items[0].Subtotal.Equal(types.MustMoney("37.00")))
	})

	t.Run("same product merges quantities", func(t *testing.T) {
		agg := New()
		agg.AddItem(coffee(), 1)
		agg.AddItem(coffee(), 2)

		require.Equal(t, 1, agg.Len())
		items := agg.Items()
		assert.Equal(t, 3, items[0].Quantity)
		assert.True(t, items[0].Subtotal.Equal(types.MustMoney("55.50")))
	})

	t.Run("zero and negative quantities are ignored", func(t *testing.T) {
		agg := New()
		agg.AddItem(coffee(), 0)
		agg.AddItem(coffee(), -5)

		assert.Equal(t, 0, agg.Len())
		assert.True(t, agg.Total().IsZero())
	})

	t.Run("items keep insertion order", func(t *testing.T) {
		agg := New()
		agg.AddItem(grinder(), 1)
		agg.AddItem(coffee(), 1)
		agg.AddItem(grinder(), 1) // merge must not reorder

		items := agg.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "p-grinder", items[0].ProductID)
		assert.Equal(t, "p-coffee", items[1].ProductID)
	})
}

func TestAggregator_UpdateQuantity(t *testing.T) {
	t.Run("recomputes subtotal", func(t *testing.T) {
		agg := New()
		agg.AddItem(coffee(), 1)

		agg.UpdateQuantity("p-coffee", 4)

		items := agg.Items()
		assert.Equal(t, 4, items[0].Quantity)
		assert.True(t, items[0].Subtotal.Equal(types.MustMoney("74.00")))
	})

	t.Run("quantity below one is a no-op", func(t *testing.T) {
		agg := New()
		agg.AddItem(coffee(), 3)

		agg.UpdateQuantity("p-coffee", 0)
		agg.UpdateQuantity("p-coffee", -1)

		items := agg.Items()
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		agg := New()
		agg.UpdateQuantity("missing", 5)
		assert.Equal(t, 0, agg.Len())
	})
}

func TestAggregator_RemoveItem(t *testing.T) {
	agg := New()
	agg.AddItem(coffee(), 1)
	agg.AddItem(grinder(), 1)

	agg.RemoveItem("p-coffee")
	require.Equal(t, 1, agg.Len())
	assert.Equal(t, "p-grinder", agg.Items()[0].ProductID)

	// removing twice is fine
	agg.RemoveItem("p-coffee")
	assert.Equal(t, 1, agg.Len())
}

func TestAggregator_Totals(t *testing.T) {
	agg := New()
	agg.AddItem(coffee(), 2)  // 37.00
	agg.AddItem(grinder(), 1) // 120.00

	assert.True(t, agg.Total().Equal(types.MustMoney("157.00")))
	assert.Equal(t, 3, agg.ItemCount())

	// a full edit cycle must not drift the total
	agg.UpdateQuantity("p-coffee", 3)
	agg.UpdateQuantity("p-coffee", 2)
	agg.AddItem(grinder(), 1)
	agg.RemoveItem("p-grinder")
	agg.AddItem(grinder(), 1)

	assert.True(t, agg.Total().Equal(types.MustMoney("157.00")))
}

func TestAggregator_ItemsIsACopy(t *testing.T) {
	agg := New()
	agg.AddItem(coffee(), 1)

	items := agg.Items()
	items[0].Quantity = 99
	items[0].Subtotal = types.MustMoney("9999.99")

	assert.Equal(t, 1, agg.Items()[0].Quantity)
	assert.True(t, agg.Total().Equal(types.MustMoney("18.50")))
}

func TestAggregator_CurrencyAndNote(t *testing.T) {
	agg := New()
	assert.Equal(t, currency.SelectionBase, agg.Currency())

	agg.SetCurrency(currency.SelectionSecondary)
	assert.Equal(t, currency.SelectionSecondary, agg.Currency())

	agg.SetCurrency(currency.Selection("martian"))
	assert.Equal(t, currency.SelectionSecondary, agg.Currency())

	agg.SetNote("deliver friday")
	assert.Equal(t, "deliver friday", agg.Note())
}

func TestAggregator_Clear(t *testing.T) {
	agg := New()
	agg.AddItem(coffee(), 2)
	agg.SetCurrency(currency.SelectionSecondary)
	agg.SetNote("rush")

	agg.Clear()

	assert.Equal(t, 0, agg.Len())
	assert.True(t, agg.Total().IsZero())
	assert.Equal(t, currency.SelectionBase, agg.Currency())
	assert.Empty(t, agg.Note())
}
