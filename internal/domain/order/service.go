package order

import (
	"context"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/id"
	"salesledger/internal/core/tx"
	"salesledger/internal/domain"
	"salesledger/internal/domain/audit"
	"salesledger/internal/domain/cart"
	"salesledger/pkg/logger"
	"salesledger/pkg/numerator"
)

// Service provides business logic for sales orders.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numbers   numerator.Generator
	recorder  audit.Recorder
}

// NewService creates an Order service.
func NewService(repo Repository, txManager tx.Manager, numbers numerator.Generator, recorder audit.Recorder) *Service {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		numbers:   numbers,
		recorder:  recorder,
	}
}

// Submit snapshots the cart into a new order, numbers it and persists it.
// On success the cart is cleared; on any failure it is left untouched so the
// user can correct and retry.
func (s *Service) Submit(ctx context.Context, agg *cart.Aggregator, customerID id.ID) (*Order, error) {
	o, err := Snapshot(agg, customerID)
	if err != nil {
		return nil, err
	}
	if err := o.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Orders tolerate numbering gaps, so the cached strategy is fine.
		number, err := s.numbers.GetNextNumber(ctx,
			numerator.DefaultConfig("ORD"),
			&numerator.Options{Strategy: numerator.StrategyCached},
			o.Date,
		)
		if err != nil {
			return apperror.NewInternal(err)
		}
		o.Number = number

		if err := s.repo.Create(ctx, o); err != nil {
			return err
		}

		s.recorder.Record(ctx, "order", o.ID, audit.ActionCreate, map[string]any{
			"number":   o.Number,
			"total":    o.Total.String(),
			"lines":    len(o.Lines),
			"currency": string(o.Currency),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	agg.Clear()

	logger.Info(ctx, "order submitted",
		"order_id", o.ID.String(),
		"number", o.Number,
		"total", o.Total.String(),
	)
	return o, nil
}

// GetByID retrieves an order with its lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(err)
	}
	return o, nil
}

// GetByNumber retrieves an order by document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Order, error) {
	o, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(err)
	}
	return o, nil
}

// List retrieves orders matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Order], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultFilter().Limit
	}
	return s.repo.List(ctx, filter)
}
