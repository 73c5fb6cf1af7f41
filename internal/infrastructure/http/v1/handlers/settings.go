package handlers

import (
	"github.com/gin-gonic/gin"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/types"
	"salesledger/internal/domain/settings"
	"salesledger/internal/infrastructure/http/v1/dto"
)

// SettingsHandler handles tenant configuration endpoints.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(service *settings.Service) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// GetExchangeRate handles GET /settings/exchange-rate.
func (h *SettingsHandler) GetExchangeRate(c *gin.Context) {
	ctx := c.Request.Context()

	stored, err := h.service.Get(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	isDefault := !types.IsPositive(stored.ExchangeRate)
	h.OK(c, dto.FromSettings(stored, isDefault, h.service.CurrentRate(ctx).String()))
}

// UpdateExchangeRate handles PUT /settings/exchange-rate.
func (h *SettingsHandler) UpdateExchangeRate(c *gin.Context) {
	var req dto.UpdateExchangeRateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rate, err := types.NewMoneyFromString(req.Rate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid rate").WithDetail("value", req.Rate))
		return
	}

	updated, err := h.service.UpdateRate(c.Request.Context(), rate)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSettings(updated, false, updated.ExchangeRate.String()))
}
