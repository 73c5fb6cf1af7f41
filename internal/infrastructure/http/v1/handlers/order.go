package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"salesledger/internal/core/id"
	"salesledger/internal/domain/cart"
	"salesledger/internal/domain/catalog/product"
	"salesledger/internal/domain/currency"
	"salesledger/internal/domain/order"
	"salesledger/internal/domain/settings"
	"salesledger/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles sales order endpoints.
type OrderHandler struct {
	*BaseHandler
	service  *order.Service
	products *product.Service
	settings *settings.Service
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(service *order.Service, products *product.Service, settings *settings.Service) *OrderHandler {
	return &OrderHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		products:    products,
		settings:    settings,
	}
}

// Submit handles POST /orders. Composes a cart from the request lines and
// submits it as an immutable order snapshot.
func (h *OrderHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customerID, err := id.Parse(req.CustomerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	agg := cart.New()
	for _, line := range req.Lines {
		p, err := h.products.CartProduct(ctx, line.ProductCode)
		if err != nil {
			h.Error(c, err)
			return
		}
		agg.AddItem(p, line.Quantity)
	}
	if req.Currency != "" {
		agg.SetCurrency(currency.Selection(req.Currency))
	}
	agg.SetNote(req.Note)

	o, err := h.service.Submit(ctx, agg, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.FromOrder(o, h.settings.CurrentRate(ctx)))
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.GetByID(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOrder(o, h.settings.CurrentRate(ctx)))
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OrderListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := order.DefaultFilter()
	if req.CustomerID != "" {
		customerID, err := id.Parse(req.CustomerID)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.CustomerID = &customerID
	}
	filter.DateFrom = req.DateFrom
	if req.DateTo != nil {
		// make the upper bound inclusive for date-only input
		end := req.DateTo.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}
	if req.Limit > 0 {
		filter.Limit = req.Limit
	}
	filter.Offset = req.Offset

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromOrders(result.Items, h.settings.CurrentRate(ctx)),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
