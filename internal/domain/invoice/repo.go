package invoice

import (
	"context"
	"time"

	"salesledger/internal/core/id"
	"salesledger/internal/domain"
)

// Filter narrows invoice listings.
type Filter struct {
	// CustomerID restricts to one customer
	CustomerID *id.ID

	// OrderID restricts to invoices for one order
	OrderID *id.ID

	// DueBefore keeps invoices due strictly before the given moment.
	// Combined with unpaid states this selects overdue invoices.
	DueBefore *time.Time

	// Pagination
	Limit  int
	Offset int
}

// DefaultFilter returns sensible defaults: newest first, one page.
func DefaultFilter() Filter {
	return Filter{Limit: 50}
}

// Repository defines Invoice persistence. The header is insert-only and the
// ledger is append-only; there is no Update or Delete.
type Repository interface {
	// Create inserts the invoice header.
	Create(ctx context.Context, inv *Invoice) error

	// GetByID retrieves an invoice with its full payment ledger.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetByNumber retrieves an invoice by document number.
	GetByNumber(ctx context.Context, number string) (*Invoice, error)

	// GetForUpdate retrieves an invoice with its ledger while holding a row
	// lock until the surrounding transaction ends. Callers re-check the
	// overpayment invariant against this locked state before appending.
	GetForUpdate(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// AppendPayment inserts one ledger entry.
	AppendPayment(ctx context.Context, p *Payment) error

	// List retrieves invoices matching the filter, newest first, with their
	// ledgers loaded so derived status can be computed.
	List(ctx context.Context, filter Filter) (domain.ListResult[*Invoice], error)
}
