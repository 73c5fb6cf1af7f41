package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"salesledger/internal/core/id"
	"salesledger/internal/domain"
	"salesledger/internal/domain/order"
	"salesledger/internal/infrastructure/storage/postgres"
)

const (
	ordersTable     = "doc_orders"
	orderLinesTable = "doc_order_lines"
)

// OrderRepo implements order.Repository.
type OrderRepo struct {
	*BaseDocumentRepo[*order.Order]
}

var _ order.Repository = (*OrderRepo)(nil)

// NewOrderRepo creates an order repository.
func NewOrderRepo(txManager *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			ordersTable,
			postgres.ExtractDBColumns[order.Order](),
			func() *order.Order { return &order.Order{} },
		),
	}
}

// Create inserts the order header and its lines.
// The caller is expected to run this inside a transaction.
func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	if err := r.insertHeader(ctx, o); err != nil {
		return err
	}
	return r.insertLines(ctx, o.ID, o.Lines)
}

func (r *OrderRepo) insertLines(ctx context.Context, orderID id.ID, lines []order.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(orderLinesTable).
		Columns(
			"document_id", "line_no", "product_id", "product_name",
			"sku", "quantity", "unit_price", "subtotal",
		)
	for _, line := range lines {
		q = q.Values(
			orderID, line.LineNo, line.ProductID, line.ProductName,
			line.SKU, line.Quantity, line.UnitPrice, line.Subtotal,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}
	return nil
}

func (r *OrderRepo) getLines(ctx context.Context, orderID id.ID) ([]order.Line, error) {
	sql, args, err := r.Builder().
		Select("line_no", "product_id", "product_name", "sku", "quantity", "unit_price", "subtotal").
		From(orderLinesTable).
		Where(squirrel.Eq{"document_id": orderID}).
		OrderBy("line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []order.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

// GetByID retrieves an order with its lines.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*order.Order, error) {
	o, err := r.getHeaderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Lines, err = r.getLines(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByNumber retrieves an order by document number.
func (r *OrderRepo) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	o, err := r.getHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if o.Lines, err = r.getLines(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// List retrieves order headers matching the filter, newest first.
func (r *OrderRepo) List(ctx context.Context, filter order.Filter) (domain.ListResult[*order.Order], error) {
	result := domain.ListResult[*order.Order]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	q, total, err := r.countAndPage(ctx, q, filter.Limit, filter.Offset)
	if err != nil {
		return result, err
	}
	result.TotalCount = total

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}
	return result, nil
}
