// Package invoice implements the invoice document and its payment ledger.
//
// An invoice's total is fixed at creation; payments are appended over time
// and never edited or removed. All derived figures (paid amount, remaining
// balance, status) are computed from the ledger, not stored.
package invoice

import (
	"context"
	"time"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/entity"
	"salesledger/internal/core/id"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
	"salesledger/internal/domain/order"
)

// Method is the payment method recorded with each ledger entry.
type Method string

const (
	MethodCash         Method = "cash"
	MethodCreditCard   Method = "credit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheck        Method = "check"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodBankTransfer, MethodCheck:
		return true
	}
	return false
}

// AmountState classifies an invoice purely by how much of its total has been
// paid. Overdue is tracked separately: a fully paid invoice is never overdue,
// but an unpaid or partial one may be both.
type AmountState string

const (
	StateUnpaid  AmountState = "unpaid"
	StatePartial AmountState = "partial"
	StatePaid    AmountState = "paid"

	// StatusOverdue is only a display status, see DisplayStatus.
	StatusOverdue = "overdue"
)

// Payment is one immutable ledger entry.
type Payment struct {
	ID        id.ID `db:"id" json:"id"`
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`

	// Amount is the payment in base currency
	Amount types.Money `db:"amount" json:"amount"`

	// SecondaryAmount is the payment converted at the exchange rate in
	// effect when it was recorded. Stored so historical payments keep their
	// original conversion after rate changes.
	SecondaryAmount types.Money `db:"secondary_amount" json:"secondaryAmount"`

	Method Method    `db:"method" json:"method"`
	PaidAt time.Time `db:"paid_at" json:"paidAt"`
	Note   string    `db:"note" json:"note,omitempty"`
}

// Invoice is the billing document. The header is written once; only the
// payment ledger grows.
type Invoice struct {
	entity.Document

	// OrderID links to the originating order, nil for standalone invoices
	OrderID *id.ID `db:"order_id" json:"orderId,omitempty"`

	// CustomerID references the customer catalog
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Currency records which currency the invoice was presented in
	Currency currency.Selection `db:"currency" json:"currency"`

	// Total is the fixed amount owed, in base currency
	Total types.Money `db:"total" json:"total"`

	// DueDate is when the invoice becomes overdue
	DueDate time.Time `db:"due_date" json:"dueDate"`

	// Payments is the append-only ledger, oldest first
	Payments []Payment `db:"-" json:"payments"`
}

// New creates a standalone invoice not backed by an order.
func New(customerID id.ID, total types.Money, dueDate time.Time) *Invoice {
	return &Invoice{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Currency:   currency.SelectionBase,
		Total:      total,
		DueDate:    dueDate,
	}
}

// NewFromOrder creates an invoice billing the full order total.
func NewFromOrder(o *order.Order, dueDate time.Time) *Invoice {
	orderID := o.ID
	inv := &Invoice{
		Document:   entity.NewDocument(),
		OrderID:    &orderID,
		CustomerID: o.CustomerID,
		Currency:   o.Currency,
		Total:      o.Total,
		DueDate:    dueDate,
	}
	inv.Comment = o.Comment
	return inv
}

// PaidAmount returns the sum of all recorded payments.
func (inv *Invoice) PaidAmount() types.Money {
	paid := types.Zero()
	for _, p := range inv.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// RemainingBalance returns total minus paid. Never negative: the ledger
// rejects overpayment before it can happen.
func (inv *Invoice) RemainingBalance() types.Money {
	return inv.Total.Sub(inv.PaidAmount())
}

// AmountState derives the payment state from the ledger.
func (inv *Invoice) AmountState() AmountState {
	paid := inv.PaidAmount()
	switch {
	case paid.GreaterThanOrEqual(inv.Total):
		return StatePaid
	case types.IsPositive(paid):
		return StatePartial
	default:
		return StateUnpaid
	}
}

// IsOverdue reports whether the invoice is past due and still carries a
// balance at the given moment.
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return inv.AmountState() != StatePaid && now.After(inv.DueDate)
}

// DisplayStatus returns a single status string for list views. Overdue takes
// precedence over the amount state; consumers needing both facts should call
// AmountState and IsOverdue directly.
func (inv *Invoice) DisplayStatus(now time.Time) string {
	if inv.IsOverdue(now) {
		return StatusOverdue
	}
	return string(inv.AmountState())
}

// RecordPayment appends a new ledger entry.
//
// Guards, in order: the amount must be positive, and it must not exceed the
// remaining balance. A rejected payment leaves the ledger exactly as it was.
// The secondary amount is fixed here using the supplied rate; it never
// changes afterwards.
func (inv *Invoice) RecordPayment(amount, rate types.Money, method Method, note string, now time.Time) (*Payment, error) {
	if !types.IsPositive(amount) {
		return nil, apperror.NewInvalidAmount()
	}

	remaining := inv.RemainingBalance()
	if amount.GreaterThan(remaining) {
		return nil, apperror.NewOverpayment(remaining)
	}

	if !method.Valid() {
		return nil, apperror.NewValidation("unknown payment method").
			WithDetail("field", "method").
			WithDetail("value", string(method))
	}

	p := Payment{
		ID:              id.New(),
		InvoiceID:       inv.ID,
		Amount:          amount,
		SecondaryAmount: currency.Convert(amount, rate),
		Method:          method,
		PaidAt:          now,
		Note:            note,
	}

	inv.Payments = append(inv.Payments, p)
	inv.Touch()
	return &p, nil
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if !types.IsPositive(inv.Total) {
		return apperror.NewValidation("total must be positive").
			WithDetail("field", "total").
			WithDetail("value", inv.Total.String())
	}

	if inv.DueDate.IsZero() {
		return apperror.NewValidation("due date is required").
			WithDetail("field", "dueDate")
	}

	if !inv.Currency.Valid() {
		return apperror.NewValidation("unknown currency selection").
			WithDetail("field", "currency").
			WithDetail("value", string(inv.Currency))
	}

	// The overpayment invariant must hold for any loaded document as well.
	if inv.PaidAmount().GreaterThan(inv.Total) {
		return apperror.NewBusinessRule(apperror.CodeOverpayment,
			"recorded payments exceed the invoice total")
	}

	return nil
}
