package handlers

import (
	"github.com/gin-gonic/gin"

	"salesledger/internal/domain/catalog/customer"
	"salesledger/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles customer catalog endpoints.
type CustomerHandler struct {
	*BaseHandler
	service *customer.Service
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(service *customer.Service) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /catalog/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust := customer.NewCustomer(req.Code, req.Name)
	cust.Phone = req.Phone
	cust.Email = req.Email
	cust.Address = req.Address

	if err := h.service.Create(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, cust.ID)
}

// Get handles GET /catalog/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCustomer(cust))
}

// List handles GET /catalog/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromCustomers(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Update handles PUT /catalog/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.service.GetByID(ctx, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if req.Name != nil {
		cust.Name = *req.Name
	}
	if req.Phone != nil {
		cust.Phone = *req.Phone
	}
	if req.Email != nil {
		cust.Email = *req.Email
	}
	if req.Address != nil {
		cust.Address = *req.Address
	}
	cust.Version = req.Version

	if err := h.service.Update(ctx, cust); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCustomer(cust))
}

// Delete handles DELETE /catalog/customers/:id (soft delete).
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), customerID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
