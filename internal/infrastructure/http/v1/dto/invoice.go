package dto

import (
	"time"

	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
	"salesledger/internal/domain/invoice"
)

// CreateInvoiceRequest issues an invoice. Either from an existing order
// (orderId set, total taken from the order) or standalone (total required).
type CreateInvoiceRequest struct {
	OrderID    string `json:"orderId" binding:"omitempty,uuid"`
	CustomerID string `json:"customerId" binding:"omitempty,uuid"`
	Total      string `json:"total"`
	DueDate    string `json:"dueDate" binding:"required"`
	Comment    string `json:"comment"`
}

// RecordPaymentRequest appends a payment to an invoice's ledger.
type RecordPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required,oneof=cash credit_card bank_transfer check"`
	Note   string `json:"note"`
}

// PaymentResponse is the API view of one ledger entry. The secondary amount
// is the conversion fixed when the payment was recorded.
type PaymentResponse struct {
	ID              string    `json:"id"`
	Amount          string    `json:"amount"`
	SecondaryAmount string    `json:"secondaryAmount"`
	Method          string    `json:"method"`
	PaidAt          time.Time `json:"paidAt"`
	Note            string    `json:"note,omitempty"`
}

// InvoiceResponse is the API view of an invoice with derived ledger figures.
type InvoiceResponse struct {
	ID               string              `json:"id"`
	Number           string              `json:"number"`
	Date             time.Time           `json:"date"`
	OrderID          string              `json:"orderId,omitempty"`
	CustomerID       string              `json:"customerId"`
	Currency         string              `json:"currency"`
	Comment          string              `json:"comment,omitempty"`
	Total            currency.DualAmount `json:"total"`
	PaidAmount       currency.DualAmount `json:"paidAmount"`
	RemainingBalance currency.DualAmount `json:"remainingBalance"`
	DueDate          time.Time           `json:"dueDate"`
	AmountState      string              `json:"amountState"`
	IsOverdue        bool                `json:"isOverdue"`
	DisplayStatus    string              `json:"displayStatus"`
	Payments         []PaymentResponse   `json:"payments"`
}

// FromInvoice creates InvoiceResponse. Stored totals are converted at the
// current rate; each payment keeps its historical conversion.
func FromInvoice(inv *invoice.Invoice, rate types.Money, now time.Time) InvoiceResponse {
	resp := InvoiceResponse{
		ID:               inv.ID.String(),
		Number:           inv.Number,
		Date:             inv.Date,
		CustomerID:       inv.CustomerID.String(),
		Currency:         string(inv.Currency),
		Comment:          inv.Comment,
		Total:            currency.FormatDual(inv.Total, rate),
		PaidAmount:       currency.FormatDual(inv.PaidAmount(), rate),
		RemainingBalance: currency.FormatDual(inv.RemainingBalance(), rate),
		DueDate:          inv.DueDate,
		AmountState:      string(inv.AmountState()),
		IsOverdue:        inv.IsOverdue(now),
		DisplayStatus:    inv.DisplayStatus(now),
		Payments:         make([]PaymentResponse, 0, len(inv.Payments)),
	}
	if inv.OrderID != nil {
		resp.OrderID = inv.OrderID.String()
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:              p.ID.String(),
			Amount:          currency.FormatBase(p.Amount),
			SecondaryAmount: currency.FormatSecondary(p.SecondaryAmount),
			Method:          string(p.Method),
			PaidAt:          p.PaidAt,
			Note:            p.Note,
		})
	}
	return resp
}

// FromInvoices converts a slice of invoices.
func FromInvoices(items []*invoice.Invoice, rate types.Money, now time.Time) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, FromInvoice(inv, rate, now))
	}
	return out
}

// InvoiceListRequest contains invoice list query parameters.
type InvoiceListRequest struct {
	CustomerID  string `form:"customerId" binding:"omitempty,uuid"`
	OrderID     string `form:"orderId" binding:"omitempty,uuid"`
	OverdueOnly bool   `form:"overdueOnly"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}
