package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	stored *Settings
	getErr error
}

func (r *memRepo) Get(context.Context) (*Settings, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.stored == nil {
		return nil, apperror.NewNotFound("settings", "singleton")
	}
	return r.stored, nil
}

func (r *memRepo) Upsert(_ context.Context, s *Settings) error {
	r.stored = s
	return nil
}

func TestService_CurrentRate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the configured rate", func(t *testing.T) {
		repo := &memRepo{stored: &Settings{ExchangeRate: types.MustMoney("91500")}}
		svc := NewService(repo, passthroughTx{})

		assert.True(t, svc.CurrentRate(ctx).Equal(types.MustMoney("91500")))
	})

	t.Run("falls back to the default when unconfigured", func(t *testing.T) {
		svc := NewService(&memRepo{}, passthroughTx{})
		assert.True(t, svc.CurrentRate(ctx).Equal(currency.DefaultRate))
	})

	t.Run("falls back to the default on storage errors", func(t *testing.T) {
		repo := &memRepo{getErr: errors.New("connection refused")}
		svc := NewService(repo, passthroughTx{})

		assert.True(t, svc.CurrentRate(ctx).Equal(currency.DefaultRate))
	})

	t.Run("zero stored rate counts as unset", func(t *testing.T) {
		repo := &memRepo{stored: &Settings{ExchangeRate: types.Zero()}}
		svc := NewService(repo, passthroughTx{})

		assert.True(t, svc.CurrentRate(ctx).Equal(currency.DefaultRate))
	})
}

func TestService_UpdateRate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a positive rate", func(t *testing.T) {
		repo := &memRepo{}
		svc := NewService(repo, passthroughTx{})

		updated, err := svc.UpdateRate(ctx, types.MustMoney("92000"))
		require.NoError(t, err)

		assert.True(t, updated.ExchangeRate.Equal(types.MustMoney("92000")))
		assert.False(t, updated.UpdatedAt.IsZero())
		require.NotNil(t, repo.stored)
		assert.True(t, svc.CurrentRate(ctx).Equal(types.MustMoney("92000")))
	})

	t.Run("rejects zero and negative rates", func(t *testing.T) {
		repo := &memRepo{}
		svc := NewService(repo, passthroughTx{})

		_, err := svc.UpdateRate(ctx, types.Zero())
		assert.True(t, apperror.IsValidation(err))

		_, err = svc.UpdateRate(ctx, types.MustMoney("-1"))
		assert.True(t, apperror.IsValidation(err))

		assert.Nil(t, repo.stored)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured tenant gets a zero-rate record", func(t *testing.T) {
		svc := NewService(&memRepo{}, passthroughTx{})

		s, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.True(t, s.ExchangeRate.IsZero())
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		repo := &memRepo{getErr: errors.New("connection refused")}
		svc := NewService(repo, passthroughTx{})

		_, err := svc.Get(ctx)
		assert.Error(t, err)
	})
}
