package handlers

import (
	"github.com/gin-gonic/gin"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/catalog/product"
	"salesledger/internal/domain/settings"
	"salesledger/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	service  *product.Service
	settings *settings.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(service *product.Service, settings *settings.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		settings:    settings,
	}
}

// Create handles POST /catalog/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := types.NewMoneyFromString(req.UnitPrice)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid unit price").WithDetail("value", req.UnitPrice))
		return
	}

	p := product.NewProduct(req.Code, req.Name, req.SKU, price)
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, p.ID)
}

// Get handles GET /catalog/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p, h.settings.CurrentRate(ctx)))
}

// List handles GET /catalog/products.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(ctx, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromProducts(result.Items, h.settings.CurrentRate(ctx)),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Update handles PUT /catalog/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.UnitPrice != nil {
		price, err := types.NewMoneyFromString(*req.UnitPrice)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid unit price").WithDetail("value", *req.UnitPrice))
			return
		}
		p.UnitPrice = price
	}
	p.Version = req.Version

	if err := h.service.Update(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p, h.settings.CurrentRate(ctx)))
}

// Delete handles DELETE /catalog/products/:id (soft delete).
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
