// Package order implements the sales order document: an immutable snapshot
// of a composed cart at submission time.
package order

import (
	"context"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/entity"
	"salesledger/internal/core/id"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/cart"
	"salesledger/internal/domain/currency"
)

// Line is one product row captured at order submission. All fields are
// copies: later catalog price changes never affect a submitted order.
type Line struct {
	LineNo      int         `db:"line_no" json:"lineNo"`
	ProductID   string      `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName"`
	SKU         string      `db:"sku" json:"sku"`
	Quantity    int         `db:"quantity" json:"quantity"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
}

// Order is the submitted sales document. Once created it is never modified.
type Order struct {
	entity.Document

	// CustomerID references the customer catalog
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Currency records which currency the order was presented in.
	// Stored amounts are always base-currency.
	Currency currency.Selection `db:"currency" json:"currency"`

	// Lines are the captured product rows
	Lines []Line `db:"-" json:"lines"`

	// Total is the sum of all line subtotals
	Total types.Money `db:"total" json:"total"`
}

// Snapshot captures the cart's current state as a new Order. The cart must
// hold at least one line item; submitting an empty cart is a business rule
// violation, not a validation slip.
//
// The snapshot is a deep copy: mutating the aggregator afterwards does not
// change the order.
func Snapshot(agg *cart.Aggregator, customerID id.ID) (*Order, error) {
	items := agg.Items()
	if len(items) == 0 {
		return nil, apperror.NewEmptyOrder()
	}

	o := &Order{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Currency:   agg.Currency(),
		Lines:      make([]Line, 0, len(items)),
		Total:      agg.Total(),
	}
	o.Comment = agg.Note()

	for i, item := range items {
		o.Lines = append(o.Lines, Line{
			LineNo:      i + 1,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	return o, nil
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if !o.Currency.Valid() {
		return apperror.NewValidation("unknown currency selection").
			WithDetail("field", "currency").
			WithDetail("value", string(o.Currency))
	}

	if len(o.Lines) == 0 {
		return apperror.NewEmptyOrder()
	}

	sum := types.Zero()
	for _, line := range o.Lines {
		if line.Quantity < 1 {
			return apperror.NewValidation("line quantity must be at least 1").
				WithDetail("line_no", line.LineNo)
		}
		expected := types.MulInt(line.UnitPrice, line.Quantity)
		if !line.Subtotal.Equal(expected) {
			return apperror.NewValidation("line subtotal does not match quantity and unit price").
				WithDetail("line_no", line.LineNo).
				WithDetail("expected", expected.String()).
				WithDetail("actual", line.Subtotal.String())
		}
		sum = sum.Add(line.Subtotal)
	}

	if !o.Total.Equal(sum) {
		return apperror.NewValidation("order total does not match line subtotals").
			WithDetail("expected", sum.String()).
			WithDetail("actual", o.Total.String())
	}

	return nil
}
