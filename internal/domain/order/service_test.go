package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/id"
	"salesledger/internal/core/types"
	"salesledger/internal/domain"
	"salesledger/internal/domain/cart"
	"salesledger/pkg/numerator"
)

// --- test doubles ---

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	orders    map[id.ID]*Order
	createErr error
}

func newMemRepo() *memRepo {
	return &memRepo{orders: make(map[id.ID]*Order)}
}

func (r *memRepo) Create(_ context.Context, o *Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[o.ID] = o
	return nil
}

func (r *memRepo) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID)
	}
	return o, nil
}

func (r *memRepo) GetByNumber(_ context.Context, number string) (*Order, error) {
	for _, o := range r.orders {
		if o.Number == number {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("order", number)
}

func (r *memRepo) List(_ context.Context, _ Filter) (domain.ListResult[*Order], error) {
	var items []*Order
	for _, o := range r.orders {
		items = append(items, o)
	}
	return domain.ListResult[*Order]{Items: items, TotalCount: int64(len(items))}, nil
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	numbers := &numerator.MockGenerator{
		GetNextNumberFunc: func(_ context.Context, cfg numerator.Config, _ *numerator.Options, _ time.Time) (string, error) {
			return cfg.Prefix + "-2026-00001", nil
		},
	}
	return NewService(repo, passthroughTx{}, numbers, nil), repo
}

// --- tests ---

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers, persists and clears the cart", func(t *testing.T) {
		svc, repo := newTestService(t)
		agg := testCart(t)
		customerID := id.New()

		o, err := svc.Submit(ctx, agg, customerID)
		require.NoError(t, err)

		assert.Equal(t, "ORD-2026-00001", o.Number)
		assert.Equal(t, customerID, o.CustomerID)
		assert.True(t, o.Total.Equal(types.MustMoney("157.00")))

		stored, err := repo.GetByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.Number, stored.Number)

		assert.Equal(t, 0, agg.ItemCount())
	})

	t.Run("empty cart is rejected, nothing stored", func(t *testing.T) {
		svc, repo := newTestService(t)

		_, err := svc.Submit(ctx, cart.New(), id.New())
		require.Error(t, err)
		assert.True(t, apperror.IsEmptyOrder(err))
		assert.Empty(t, repo.orders)
	})

	t.Run("storage failure leaves the cart intact", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.createErr = errors.New("connection reset")
		agg := testCart(t)

		_, err := svc.Submit(ctx, agg, id.New())
		require.Error(t, err)

		// the user can correct and retry with the same cart
		assert.Equal(t, 2, agg.Len())
		assert.Empty(t, repo.orders)
	})

	t.Run("numbering failure aborts the submit", func(t *testing.T) {
		repo := newMemRepo()
		numbers := &numerator.MockGenerator{
			GetNextNumberFunc: func(context.Context, numerator.Config, *numerator.Options, time.Time) (string, error) {
				return "", errors.New("sequence unavailable")
			},
		}
		svc := NewService(repo, passthroughTx{}, numbers, nil)

		agg := testCart(t)
		_, err := svc.Submit(ctx, agg, id.New())
		require.Error(t, err)
		assert.Empty(t, repo.orders)
		assert.Equal(t, 2, agg.Len())
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	o, err := svc.Submit(ctx, testCart(t), id.New())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = svc.GetByID(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}
