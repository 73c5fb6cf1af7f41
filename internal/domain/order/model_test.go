package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/id"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/cart"
	"salesledger/internal/domain/currency"
)

func testCart(t *testing.T) *cart.Aggregator {
	t.Helper()
	agg := cart.New()
	agg.AddItem(cart.Product{ID: "p-1", Name: "Coffee Beans 1kg", SKU: "COF-001", UnitPrice: types.MustMoney("18.50")}, 2)
	agg.AddItem(cart.Product{ID: "p-2", Name: "Burr Grinder", SKU: "GRN-010", UnitPrice: types.MustMoney("120.00")}, 1)
	return agg
}

func TestSnapshot(t *testing.T) {
	t.Run("captures lines, total and note", func(t *testing.T) {
		agg := testCart(t)
		agg.SetCurrency(currency.SelectionSecondary)
		agg.SetNote("deliver friday")

		o, err := Snapshot(agg, id.New())
		require.NoError(t, err)

		require.Len(t, o.Lines, 2)
		assert.Equal(t, 1, o.Lines[0].LineNo)
		assert.Equal(t, 2, o.Lines[1].LineNo)
		assert.Equal(t, "p-1", o.Lines[0].ProductID)
		assert.True(t, o.Total.Equal(types.MustMoney("157.00")))
		assert.Equal(t, currency.SelectionSecondary, o.Currency)
		assert.Equal(t, "deliver friday", o.Comment)
		assert.False(t, id.IsNil(o.ID))
		assert.False(t, o.Date.IsZero())
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		o, err := Snapshot(cart.New(), id.New())
		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, apperror.IsEmptyOrder(err))
	})

	t.Run("later cart mutations do not leak into the snapshot", func(t *testing.T) {
		agg := testCart(t)
		o, err := Snapshot(agg, id.New())
		require.NoError(t, err)

		agg.UpdateQuantity("p-1", 50)
		agg.RemoveItem("p-2")
		agg.Clear()

		require.Len(t, o.Lines, 2)
		assert.Equal(t, 2, o.Lines[0].Quantity)
		assert.True(t, o.Total.Equal(types.MustMoney("157.00")))
	})
}

func TestOrder_Validate(t *testing.T) {
	ctx := context.Background()

	valid := func(t *testing.T) *Order {
		t.Helper()
		o, err := Snapshot(testCart(t), id.New())
		require.NoError(t, err)
		return o
	}

	t.Run("valid snapshot passes", func(t *testing.T) {
		assert.NoError(t, valid(t).Validate(ctx))
	})

	t.Run("missing customer", func(t *testing.T) {
		o := valid(t)
		o.CustomerID = id.Nil()
		assert.Error(t, o.Validate(ctx))
	})

	t.Run("total drift is caught", func(t *testing.T) {
		o := valid(t)
		o.Total = o.Total.Add(types.MustMoney("0.01"))
		assert.Error(t, o.Validate(ctx))
	})

	t.Run("tampered line subtotal is caught", func(t *testing.T) {
		o := valid(t)
		o.Lines[0].Subtotal = types.MustMoney("1.00")
		assert.Error(t, o.Validate(ctx))
	})

	t.Run("no lines", func(t *testing.T) {
		o := valid(t)
		o.Lines = nil
		err := o.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsEmptyOrder(err))
	})
}
