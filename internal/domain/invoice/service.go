package invoice

import (
	"context"
	"time"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/id"
	"salesledger/internal/core/tx"
	"salesledger/internal/core/types"
	"salesledger/internal/domain"
	"salesledger/internal/domain/audit"
	"salesledger/internal/domain/order"
	"salesledger/pkg/logger"
	"salesledger/pkg/numerator"
)

// RateSource supplies the current base-to-secondary exchange rate.
// Implemented by the settings service; always returns a usable rate.
type RateSource interface {
	CurrentRate(ctx context.Context) types.Money
}

// Service provides business logic for invoices and their payment ledgers.
type Service struct {
	repo      Repository
	orders    order.Repository
	txManager tx.Manager
	numbers   numerator.Generator
	rates     RateSource
	recorder  audit.Recorder
}

// NewService creates an Invoice service.
func NewService(
	repo Repository,
	orders order.Repository,
	txManager tx.Manager,
	numbers numerator.Generator,
	rates RateSource,
	recorder audit.Recorder,
) *Service {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &Service{
		repo:      repo,
		orders:    orders,
		txManager: txManager,
		numbers:   numbers,
		rates:     rates,
		recorder:  recorder,
	}
}

// CreateFromOrder issues an invoice for the full total of an existing order.
func (s *Service) CreateFromOrder(ctx context.Context, orderID id.ID, dueDate time.Time) (*Invoice, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, NewFromOrder(o, dueDate))
}

// Create issues a standalone invoice not backed by an order.
func (s *Service) Create(ctx context.Context, customerID id.ID, total types.Money, dueDate time.Time, comment string) (*Invoice, error) {
	inv := New(customerID, total, dueDate)
	inv.Comment = comment
	return s.create(ctx, inv)
}

func (s *Service) create(ctx context.Context, inv *Invoice) (*Invoice, error) {
	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Invoice numbers must be gapless, so the strict strategy is used.
		number, err := s.numbers.GetNextNumber(ctx,
			numerator.DefaultConfig("INV"),
			&numerator.Options{Strategy: numerator.StrategyStrict},
			inv.Date,
		)
		if err != nil {
			return apperror.NewInternal(err)
		}
		inv.Number = number

		if err := s.repo.Create(ctx, inv); err != nil {
			return err
		}

		payload := map[string]any{
			"number":   inv.Number,
			"total":    inv.Total.String(),
			"due_date": inv.DueDate.Format(time.RFC3339),
		}
		if inv.OrderID != nil {
			payload["order_id"] = inv.OrderID.String()
		}
		s.recorder.Record(ctx, "invoice", inv.ID, audit.ActionCreate, payload)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"invoice_id", inv.ID.String(),
		"number", inv.Number,
		"total", inv.Total.String(),
	)
	return inv, nil
}

// RecordPayment appends a payment to the invoice's ledger.
//
// The amount guards run twice: once here against the loaded state for a fast
// answer, and again inside the transaction against a row-locked reload so two
// concurrent payments can never jointly exceed the total. The exchange rate
// is resolved once and stored with the payment.
func (s *Service) RecordPayment(ctx context.Context, invoiceID id.ID, amount types.Money, method Method, note string) (*Invoice, error) {
	if !types.IsPositive(amount) {
		return nil, apperror.NewInvalidAmount()
	}

	rate := s.rates.CurrentRate(ctx)
	now := time.Now().UTC()

	var inv *Invoice
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.repo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}

		p, err := locked.RecordPayment(amount, rate, method, note, now)
		if err != nil {
			return err
		}

		if err := s.repo.AppendPayment(ctx, p); err != nil {
			return err
		}

		s.recorder.Record(ctx, "invoice", locked.ID, audit.ActionRecordPayment, map[string]any{
			"payment_id": p.ID.String(),
			"amount":     p.Amount.String(),
			"method":     string(p.Method),
			"remaining":  locked.RemainingBalance().String(),
			"state":      string(locked.AmountState()),
		})

		inv = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "payment recorded",
		"invoice_id", inv.ID.String(),
		"number", inv.Number,
		"amount", amount.String(),
		"state", string(inv.AmountState()),
	)
	return inv, nil
}

// GetByID retrieves an invoice with its payment ledger.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(err)
	}
	return inv, nil
}

// GetByNumber retrieves an invoice by document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	inv, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(err)
	}
	return inv, nil
}

// List retrieves invoices matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Invoice], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultFilter().Limit
	}
	return s.repo.List(ctx, filter)
}

// ListOverdue retrieves invoices past due with an outstanding balance.
func (s *Service) ListOverdue(ctx context.Context, filter Filter) (domain.ListResult[*Invoice], error) {
	now := time.Now().UTC()
	filter.DueBefore = &now
	result, err := s.List(ctx, filter)
	if err != nil {
		return result, err
	}

	// The due-date cut happens in SQL; the paid check needs the ledger.
	overdue := result.Items[:0]
	for _, inv := range result.Items {
		if inv.IsOverdue(now) {
			overdue = append(overdue, inv)
		}
	}
	result.Items = overdue
	return result, nil
}
