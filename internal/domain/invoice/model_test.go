package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/id"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
)

var testRate = types.NewMoneyFromInt(88000)

func testInvoice(total string, dueDate time.Time) *Invoice {
	return New(id.New(), types.MustMoney(total), dueDate)
}

func TestInvoice_RecordPayment(t *testing.T) {
	now := time.Now().UTC()
	due := now.Add(14 * 24 * time.Hour)

	t.Run("partial then final payment", func(t *testing.T) {
		inv := testInvoice("250.00", due)
		assert.Equal(t, StateUnpaid, inv.AmountState())

		p1, err := inv.RecordPayment(types.MustMoney("100.00"), testRate, MethodCash, "", now)
		require.NoError(t, err)
		assert.Equal(t, StatePartial, inv.AmountState())
		assert.True(t, inv.RemainingBalance().Equal(types.MustMoney("150.00")))
		assert.True(t, p1.SecondaryAmount.Equal(types.NewMoneyFromInt(8800000)))

		_, err = inv.RecordPayment(types.MustMoney("150.00"), testRate, MethodBankTransfer, "final", now)
		require.NoError(t, err)
		assert.Equal(t, StatePaid, inv.AmountState())
		assert.True(t, inv.RemainingBalance().IsZero())
		require.Len(t, inv.Payments, 2)
	})

	t.Run("overpayment is rejected and the ledger unchanged", func(t *testing.T) {
		inv := testInvoice("250.00", due)
		_, err := inv.RecordPayment(types.MustMoney("100.00"), testRate, MethodCash, "", now)
		require.NoError(t, err)

		_, err = inv.RecordPayment(types.MustMoney("150.01"), testRate, MethodCash, "", now)
		require.Error(t, err)
		assert.True(t, apperror.IsOverpayment(err))

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "150.00", appErr.Details["remaining_balance"])

		require.Len(t, inv.Payments, 1)
		assert.True(t, inv.RemainingBalance().Equal(types.MustMoney("150.00")))
	})

	t.Run("exact remaining balance is accepted", func(t *testing.T) {
		inv := testInvoice("250.00", due)
		_, err := inv.RecordPayment(types.MustMoney("250.00"), testRate, MethodCheck, "", now)
		require.NoError(t, err)
		assert.Equal(t, StatePaid, inv.AmountState())
	})

	t.Run("any payment against a paid invoice is an overpayment", func(t *testing.T) {
		inv := testInvoice("250.00", due)
		_, err := inv.RecordPayment(types.MustMoney("250.00"), testRate, MethodCash, "", now)
		require.NoError(t, err)

		_, err = inv.RecordPayment(types.MustMoney("0.01"), testRate, MethodCash, "", now)
		assert.True(t, apperror.IsOverpayment(err))
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		inv := testInvoice("250.00", due)

		_, err := inv.RecordPayment(types.Zero(), testRate, MethodCash, "", now)
		assert.True(t, apperror.IsInvalidAmount(err))

		_, err = inv.RecordPayment(types.MustMoney("-10.00"), testRate, MethodCash, "", now)
		assert.True(t, apperror.IsInvalidAmount(err))

		assert.Empty(t, inv.Payments)
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		inv := testInvoice("250.00", due)
		_, err := inv.RecordPayment(types.MustMoney("10.00"), testRate, Method("barter"), "", now)
		assert.Error(t, err)
		assert.Empty(t, inv.Payments)
	})

	t.Run("secondary amount uses the rate at payment time", func(t *testing.T) {
		inv := testInvoice("200.00", due)

		p1, err := inv.RecordPayment(types.MustMoney("100.00"), types.NewMoneyFromInt(88000), MethodCash, "", now)
		require.NoError(t, err)
		p2, err := inv.RecordPayment(types.MustMoney("100.00"), types.NewMoneyFromInt(90000), MethodCash, "", now)
		require.NoError(t, err)

		assert.True(t, p1.SecondaryAmount.Equal(types.NewMoneyFromInt(8800000)))
		assert.True(t, p2.SecondaryAmount.Equal(types.NewMoneyFromInt(9000000)))
	})
}

func TestInvoice_OverdueStatus(t *testing.T) {
	now := time.Now().UTC()
	pastDue := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	t.Run("past due with balance is overdue", func(t *testing.T) {
		inv := testInvoice("250.00", pastDue)
		assert.True(t, inv.IsOverdue(now))
		assert.Equal(t, StatusOverdue, inv.DisplayStatus(now))
		assert.Equal(t, StateUnpaid, inv.AmountState())
	})

	t.Run("partial payment keeps it overdue", func(t *testing.T) {
		inv := testInvoice("250.00", pastDue)
		_, err := inv.RecordPayment(types.MustMoney("100.00"), testRate, MethodCash, "", now)
		require.NoError(t, err)

		assert.True(t, inv.IsOverdue(now))
		assert.Equal(t, StatusOverdue, inv.DisplayStatus(now))
		assert.Equal(t, StatePartial, inv.AmountState())
	})

	t.Run("full payment clears overdue", func(t *testing.T) {
		inv := testInvoice("250.00", pastDue)
		_, err := inv.RecordPayment(types.MustMoney("250.00"), testRate, MethodCash, "", now)
		require.NoError(t, err)

		assert.False(t, inv.IsOverdue(now))
		assert.Equal(t, string(StatePaid), inv.DisplayStatus(now))
	})

	t.Run("not yet due is not overdue", func(t *testing.T) {
		inv := testInvoice("250.00", future)
		assert.False(t, inv.IsOverdue(now))
		assert.Equal(t, string(StateUnpaid), inv.DisplayStatus(now))
	})
}

func TestInvoice_Validate(t *testing.T) {
	ctx := context.Background()
	due := time.Now().UTC().Add(14 * 24 * time.Hour)

	t.Run("valid invoice passes", func(t *testing.T) {
		assert.NoError(t, testInvoice("100.00", due).Validate(ctx))
	})

	t.Run("non-positive total", func(t *testing.T) {
		assert.Error(t, testInvoice("0", due).Validate(ctx))
		assert.Error(t, testInvoice("-5.00", due).Validate(ctx))
	})

	t.Run("missing due date", func(t *testing.T) {
		assert.Error(t, testInvoice("100.00", time.Time{}).Validate(ctx))
	})

	t.Run("missing customer", func(t *testing.T) {
		inv := testInvoice("100.00", due)
		inv.CustomerID = id.Nil()
		assert.Error(t, inv.Validate(ctx))
	})

	t.Run("loaded ledger exceeding total is caught", func(t *testing.T) {
		inv := testInvoice("100.00", due)
		inv.Payments = []Payment{
			{ID: id.New(), InvoiceID: inv.ID, Amount: types.MustMoney("150.00"), Method: MethodCash},
		}
		err := inv.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeOverpayment, appErr.Code)
	})
}

func TestNewFromOrder(t *testing.T) {
	due := time.Now().UTC().Add(14 * 24 * time.Hour)

	o := newTestOrder(t)
	inv := NewFromOrder(o, due)

	require.NotNil(t, inv.OrderID)
	assert.Equal(t, o.ID, *inv.OrderID)
	assert.Equal(t, o.CustomerID, inv.CustomerID)
	assert.True(t, inv.Total.Equal(o.Total))
	assert.Equal(t, currency.SelectionBase, inv.Currency)
	assert.Equal(t, StateUnpaid, inv.AmountState())
}
