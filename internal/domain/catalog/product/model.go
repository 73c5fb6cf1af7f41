// Package product provides the product catalog the ledger reads prices from.
package product

import (
	"context"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/entity"
	"salesledger/internal/core/types"
)

// Product represents a sellable item.
type Product struct {
	entity.Catalog

	// SKU is the stock keeping unit, display-only
	SKU string `db:"sku" json:"sku"`

	// UnitPrice is the current selling price in the base currency
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
}

// NewProduct creates a Product with required fields.
func NewProduct(code, name, sku string, unitPrice types.Money) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		SKU:       sku,
		UnitPrice: unitPrice,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if types.IsNegative(p.UnitPrice) {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice").
			WithDetail("value", p.UnitPrice.String())
	}

	return nil
}
