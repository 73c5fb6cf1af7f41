// Package settings holds tenant configuration the ledger reads.
// Today that is a single value: the base-to-secondary exchange rate.
package settings

import (
	"context"
	"time"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/tx"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
	"salesledger/pkg/logger"
)

// Settings is the tenant configuration record.
type Settings struct {
	// ExchangeRate is the base-to-secondary multiplier. Zero means unset.
	ExchangeRate types.Money `db:"exchange_rate" json:"exchangeRate"`

	// UpdatedAt is when the rate was last changed
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Repository defines the interface for Settings persistence.
// The settings table holds a single row.
type Repository interface {
	// Get retrieves the settings row. Returns a not-found error when the
	// tenant has never been configured.
	Get(ctx context.Context) (*Settings, error)

	// Upsert stores the settings row, creating it if absent.
	Upsert(ctx context.Context, s *Settings) error
}

// Service provides read/write access to tenant settings.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a Settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the stored settings, or a zero-rate record if none exist yet.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return &Settings{ExchangeRate: types.Zero()}, nil
		}
		return nil, err
	}
	return stored, nil
}

// CurrentRate returns the configured exchange rate, falling back to
// currency.DefaultRate when the rate is missing or unset. The fallback is a
// degraded condition, not an error: display conversion must never block a
// transaction.
func (s *Service) CurrentRate(ctx context.Context) types.Money {
	stored, err := s.repo.Get(ctx)
	if err != nil || stored == nil || !types.IsPositive(stored.ExchangeRate) {
		logger.Warn(ctx, "exchange rate unavailable, using default",
			"default_rate", currency.DefaultRate.String(),
		)
		return currency.DefaultRate
	}
	return stored.ExchangeRate
}

// UpdateRate stores a new exchange rate.
func (s *Service) UpdateRate(ctx context.Context, rate types.Money) (*Settings, error) {
	if !types.IsPositive(rate) {
		return nil, apperror.NewValidation("exchange rate must be positive").
			WithDetail("field", "exchangeRate").
			WithDetail("value", rate.String())
	}

	updated := &Settings{
		ExchangeRate: rate,
		UpdatedAt:    time.Now().UTC(),
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Upsert(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "exchange rate updated", "rate", rate.String())
	return updated, nil
}
