package dto

import (
	"time"

	"salesledger/internal/domain/settings"
)

// UpdateExchangeRateRequest for setting the exchange rate.
type UpdateExchangeRateRequest struct {
	Rate string `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the API view of the configured rate.
type ExchangeRateResponse struct {
	Rate      string     `json:"rate"`
	IsDefault bool       `json:"isDefault"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromSettings creates ExchangeRateResponse. isDefault marks the fallback
// rate used when the tenant has never configured one.
func FromSettings(s *settings.Settings, isDefault bool, effectiveRate string) ExchangeRateResponse {
	resp := ExchangeRateResponse{
		Rate:      effectiveRate,
		IsDefault: isDefault,
	}
	if !isDefault && !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
