package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"salesledger/internal/core/id"
	"salesledger/internal/domain"
	"salesledger/internal/domain/invoice"
	"salesledger/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable = "doc_invoices"
	paymentsTable = "doc_invoice_payments"
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

// NewInvoiceRepo creates an invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			invoicesTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
	}
}

// Create inserts the invoice header. New invoices carry no payments.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.insertHeader(ctx, inv)
}

func (r *InvoiceRepo) getPayments(ctx context.Context, invoiceID id.ID) ([]invoice.Payment, error) {
	sql, args, err := r.Builder().
		Select("id", "invoice_id", "amount", "secondary_amount", "method", "paid_at", "note").
		From(paymentsTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("paid_at, id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var payments []invoice.Payment
	if err := pgxscan.Select(ctx, r.querier(ctx), &payments, sql, args...); err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}
	return payments, nil
}

// GetByID retrieves an invoice with its payment ledger.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	inv, err := r.getHeaderByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Payments, err = r.getPayments(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByNumber retrieves an invoice by document number.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	inv, err := r.getHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if inv.Payments, err = r.getPayments(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetForUpdate retrieves an invoice with its ledger while holding a row lock
// on the header. Serializes concurrent payments against the same invoice.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	inv, err := r.getHeaderForUpdate(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Payments, err = r.getPayments(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// AppendPayment inserts one ledger entry.
func (r *InvoiceRepo) AppendPayment(ctx context.Context, p *invoice.Payment) error {
	sql, args, err := r.Builder().
		Insert(paymentsTable).
		Columns("id", "invoice_id", "amount", "secondary_amount", "method", "paid_at", "note").
		Values(p.ID, p.InvoiceID, p.Amount, p.SecondaryAmount, p.Method, p.PaidAt, p.Note).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert payment: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// List retrieves invoices matching the filter, newest first, with ledgers
// loaded so derived status can be computed.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.Filter) (domain.ListResult[*invoice.Invoice], error) {
	result := domain.ListResult[*invoice.Invoice]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.OrderID != nil {
		q = q.Where(squirrel.Eq{"order_id": *filter.OrderID})
	}
	if filter.DueBefore != nil {
		q = q.Where(squirrel.Lt{"due_date": *filter.DueBefore})
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

	for _, inv := range result.Items {
		if inv.Payments, err = r.getPayments(ctx, inv.ID); err != nil {
			return result, err
		}
	}
	return result, nil
}
