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
	"salesledger/internal/domain"
	"salesledger/internal/domain/cart"
	"salesledger/internal/domain/order"
	"salesledger/pkg/numerator"
)

// --- test doubles ---

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedRate struct{ rate types.Money }

func (f fixedRate) CurrentRate(context.Context) types.Money { return f.rate }

type memRepo struct {
	invoices map[id.ID]*Invoice
}

func newMemRepo() *memRepo {
	return &memRepo{invoices: make(map[id.ID]*Invoice)}
}

func (r *memRepo) Create(_ context.Context, inv *Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *memRepo) GetByID(_ context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID)
	}
	return inv, nil
}

func (r *memRepo) GetByNumber(_ context.Context, number string) (*Invoice, error) {
	for _, inv := range r.invoices {
		if inv.Number == number {
			return inv, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *memRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return r.GetByID(ctx, invoiceID)
}

func (r *memRepo) AppendPayment(_ context.Context, _ *Payment) error {
	// the domain model already appended to the in-memory invoice
	return nil
}

func (r *memRepo) List(_ context.Context, filter Filter) (domain.ListResult[*Invoice], error) {
	var items []*Invoice
	for _, inv := range r.invoices {
		if filter.DueBefore != nil && !inv.DueDate.Before(*filter.DueBefore) {
			continue
		}
		items = append(items, inv)
	}
	return domain.ListResult[*Invoice]{Items: items, TotalCount: int64(len(items))}, nil
}

type memOrderRepo struct {
	orders map[id.ID]*order.Order
}

func (r *memOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, orderID id.ID) (*order.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID)
	}
	return o, nil
}

func (r *memOrderRepo) GetByNumber(_ context.Context, number string) (*order.Order, error) {
	return nil, apperror.NewNotFound("order", number)
}

func (r *memOrderRepo) List(_ context.Context, _ order.Filter) (domain.ListResult[*order.Order], error) {
	return domain.ListResult[*order.Order]{}, nil
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	agg := cart.New()
	agg.AddItem(cart.Product{ID: "p-1", Name: "Coffee Beans 1kg", SKU: "COF-001", UnitPrice: types.MustMoney("18.50")}, 2)
	agg.AddItem(cart.Product{ID: "p-2", Name: "Burr Grinder", SKU: "GRN-010", UnitPrice: types.MustMoney("120.00")}, 1)
	o, err := order.Snapshot(agg, id.New())
	require.NoError(t, err)
	return o
}

func newTestService(t *testing.T) (*Service, *memRepo, *memOrderRepo) {
	t.Helper()
	repo := newMemRepo()
	orders := &memOrderRepo{orders: make(map[id.ID]*order.Order)}
	seq := 0
	numbers := &numerator.MockGenerator{
		GetNextNumberFunc: func(_ context.Context, cfg numerator.Config, _ *numerator.Options, period time.Time) (string, error) {
			seq++
			return cfg.Prefix + "-2026-0000" + string(rune('0'+seq)), nil
		},
	}
	svc := NewService(repo, orders, passthroughTx{}, numbers, fixedRate{testRate}, nil)
	return svc, repo, orders
}

// --- tests ---

func TestService_CreateFromOrder(t *testing.T) {
	ctx := context.Background()
	svc, repo, orders := newTestService(t)
	due := time.Now().UTC().Add(14 * 24 * time.Hour)

	o := newTestOrder(t)
	orders.orders[o.ID] = o

	inv, err := svc.CreateFromOrder(ctx, o.ID, due)
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-00001", inv.Number)
	assert.True(t, inv.Total.Equal(o.Total))
	require.NotNil(t, inv.OrderID)
	assert.Equal(t, o.ID, *inv.OrderID)

	stored, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Number, stored.Number)
}

func TestService_CreateFromOrder_MissingOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.CreateFromOrder(ctx, id.New(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Create_Standalone(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	due := time.Now().UTC().Add(7 * 24 * time.Hour)

	inv, err := svc.Create(ctx, id.New(), types.MustMoney("500.00"), due, "consulting retainer")
	require.NoError(t, err)

	assert.Nil(t, inv.OrderID)
	assert.Equal(t, "consulting retainer", inv.Comment)
	assert.Equal(t, StateUnpaid, inv.AmountState())
}

func TestService_Create_InvalidTotal(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Create(ctx, id.New(), types.Zero(), time.Now().Add(time.Hour), "")
	assert.Error(t, err)
}

func TestService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	due := time.Now().UTC().Add(14 * 24 * time.Hour)

	t.Run("happy path converts at the current rate", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		inv, err := svc.Create(ctx, id.New(), types.MustMoney("250.00"), due, "")
		require.NoError(t, err)

		updated, err := svc.RecordPayment(ctx, inv.ID, types.MustMoney("100.00"), MethodCash, "first installment")
		require.NoError(t, err)

		require.Len(t, updated.Payments, 1)
		p := updated.Payments[0]
		assert.True(t, p.SecondaryAmount.Equal(types.NewMoneyFromInt(8800000)))
		assert.Equal(t, "first installment", p.Note)
		assert.Equal(t, StatePartial, updated.AmountState())
	})

	t.Run("invalid amount fails before touching storage", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.RecordPayment(ctx, id.New(), types.Zero(), MethodCash, "")
		assert.True(t, apperror.IsInvalidAmount(err))
	})

	t.Run("overpayment against stored state", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		inv, err := svc.Create(ctx, id.New(), types.MustMoney("250.00"), due, "")
		require.NoError(t, err)

		_, err = svc.RecordPayment(ctx, inv.ID, types.MustMoney("100.00"), MethodCash, "")
		require.NoError(t, err)

		_, err = svc.RecordPayment(ctx, inv.ID, types.MustMoney("200.00"), MethodCash, "")
		require.Error(t, err)
		assert.True(t, apperror.IsOverpayment(err))

		stored, err := svc.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Len(t, stored.Payments, 1)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.RecordPayment(ctx, id.New(), types.MustMoney("10.00"), MethodCash, "")
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestService_ListOverdue(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	pastDue := time.Now().UTC().Add(-48 * time.Hour)

	unpaid, err := svc.Create(ctx, id.New(), types.MustMoney("100.00"), pastDue, "")
	require.NoError(t, err)

	settled, err := svc.Create(ctx, id.New(), types.MustMoney("50.00"), pastDue, "")
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, settled.ID, types.MustMoney("50.00"), MethodCash, "")
	require.NoError(t, err)

	result, err := svc.ListOverdue(ctx, Filter{})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, unpaid.ID, result.Items[0].ID)
}
