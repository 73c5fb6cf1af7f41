package order

import (
	"context"
	"time"

	"salesledger/internal/core/id"
	"salesledger/internal/domain"
)

// Filter narrows order listings.
type Filter struct {
	// CustomerID restricts to one customer
	CustomerID *id.ID

	// DateFrom/DateTo bound the document date (inclusive)
	DateFrom *time.Time
	DateTo   *time.Time

	// Pagination
	Limit  int
	Offset int
}

// DefaultFilter returns sensible defaults: newest first, one page.
func DefaultFilter() Filter {
	return Filter{Limit: 50}
}

// Repository defines Order persistence. Orders are immutable documents:
// there is no Update.
type Repository interface {
	// Create inserts the order header and its lines atomically.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its lines.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// GetByNumber retrieves an order by document number.
	GetByNumber(ctx context.Context, number string) (*Order, error)

	// List retrieves orders matching the filter, newest first, without lines.
	List(ctx context.Context, filter Filter) (domain.ListResult[*Order], error)
}
