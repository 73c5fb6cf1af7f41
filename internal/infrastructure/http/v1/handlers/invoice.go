package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/id"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/invoice"
	"salesledger/internal/domain/settings"
	"salesledger/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles invoice and payment ledger endpoints.
type InvoiceHandler struct {
	*BaseHandler
	service  *invoice.Service
	settings *settings.Service
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(service *invoice.Service, settings *settings.Service) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		settings:    settings,
	}
}

// Create handles POST /invoices. With an orderId the invoice bills the full
// order total; without one it is standalone and needs customerId and total.
func (h *InvoiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid due date, expected YYYY-MM-DD").
			WithDetail("value", req.DueDate))
		return
	}

	var inv *invoice.Invoice
	if req.OrderID != "" {
		orderID, err := id.Parse(req.OrderID)
		if err != nil {
			h.Error(c, err)
			return
		}
		inv, err = h.service.CreateFromOrder(ctx, orderID, dueDate)
		if err != nil {
			h.Error(c, err)
			return
		}
	} else {
		if req.CustomerID == "" || req.Total == "" {
			h.Error(c, apperror.NewValidation("customerId and total are required for standalone invoices"))
			return
		}
		customerID, err := id.Parse(req.CustomerID)
		if err != nil {
			h.Error(c, err)
			return
		}
		total, err := types.NewMoneyFromString(req.Total)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid total").WithDetail("value", req.Total))
			return
		}
		inv, err = h.service.Create(ctx, customerID, total, dueDate, req.Comment)
		if err != nil {
			h.Error(c, err)
			return
		}
	}

	h.CreatedData(c, dto.FromInvoice(inv, h.settings.CurrentRate(ctx), time.Now().UTC()))
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv, h.settings.CurrentRate(ctx), time.Now().UTC()))
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.InvoiceListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := invoice.DefaultFilter()
	if req.CustomerID != "" {
		customerID, err := id.Parse(req.CustomerID)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.CustomerID = &customerID
	}
	if req.OrderID != "" {
		orderID, err := id.Parse(req.OrderID)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.OrderID = &orderID
	}
	if req.Limit > 0 {
		filter.Limit = req.Limit
	}
	filter.Offset = req.Offset

	list := h.service.List
	if req.OverdueOnly {
		list = h.service.ListOverdue
	}

	res, err := list(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	now := time.Now().UTC()
	h.OK(c, dto.ListResponse{
		Items:      dto.FromInvoices(res.Items, h.settings.CurrentRate(ctx), now),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

// RecordPayment handles POST /invoices/:id/payments.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	amount, err := types.NewMoneyFromString(req.Amount)
	if err != nil {
		h.Error(c, apperror.NewInvalidAmount().WithDetail("value", req.Amount))
		return
	}

	inv, err := h.service.RecordPayment(ctx, invoiceID, amount, invoice.Method(req.Method), req.Note)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv, h.settings.CurrentRate(ctx), time.Now().UTC()))
}
