package dto

import (
	"time"

	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
	"salesledger/internal/domain/order"
)

// OrderLineRequest is one cart line in a submission.
type OrderLineRequest struct {
	ProductCode string `json:"productCode" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// SubmitOrderRequest composes and submits an order in one call. Lines for
// the same product are merged, preserving first appearance order.
type SubmitOrderRequest struct {
	CustomerID string             `json:"customerId" binding:"required,uuid"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,dive"`
	Currency   string             `json:"currency" binding:"omitempty,oneof=base secondary"`
	Note       string             `json:"note"`
}

// OrderLineResponse is the API view of a captured order line.
type OrderLineResponse struct {
	LineNo      int                 `json:"lineNo"`
	ProductID   string              `json:"productId"`
	ProductName string              `json:"productName"`
	SKU         string              `json:"sku"`
	Quantity    int                 `json:"quantity"`
	UnitPrice   currency.DualAmount `json:"unitPrice"`
	Subtotal    currency.DualAmount `json:"subtotal"`
}

// OrderResponse is the API view of an order. All amounts are rendered in
// both currencies at the current exchange rate.
type OrderResponse struct {
	ID         string              `json:"id"`
	Number     string              `json:"number"`
	Date       time.Time           `json:"date"`
	CustomerID string              `json:"customerId"`
	Currency   string              `json:"currency"`
	Comment    string              `json:"comment,omitempty"`
	Lines      []OrderLineResponse `json:"lines,omitempty"`
	Total      currency.DualAmount `json:"total"`
	ItemCount  int                 `json:"itemCount"`
}

// FromOrder creates OrderResponse.
func FromOrder(o *order.Order, rate types.Money) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID.String(),
		Number:     o.Number,
		Date:       o.Date,
		CustomerID: o.CustomerID.String(),
		Currency:   string(o.Currency),
		Comment:    o.Comment,
		Total:      currency.FormatDual(o.Total, rate),
	}
	for _, line := range o.Lines {
		resp.ItemCount += line.Quantity
		resp.Lines = append(resp.Lines, OrderLineResponse{
			LineNo:      line.LineNo,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   currency.FormatDual(line.UnitPrice, rate),
			Subtotal:    currency.FormatDual(line.Subtotal, rate),
		})
	}
	return resp
}

// FromOrders converts a slice of orders (headers only, no lines).
func FromOrders(items []*order.Order, rate types.Money) []OrderResponse {
	out := make([]OrderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, FromOrder(o, rate))
	}
	return out
}

// OrderListRequest contains order list query parameters.
type OrderListRequest struct {
	CustomerID string     `form:"customerId" binding:"omitempty,uuid"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit      int        `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset     int        `form:"offset" binding:"omitempty,min=0"`
}
