// Package customer provides the customer catalog invoices are issued to.
package customer

import (
	"context"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/entity"
)

// Customer represents a party that places orders and receives invoices.
type Customer struct {
	entity.Catalog

	// Phone is the primary contact number
	Phone string `db:"phone" json:"phone,omitempty"`

	// Email is the billing contact
	Email string `db:"email" json:"email,omitempty"`

	// Address is the free-form billing address
	Address string `db:"address" json:"address,omitempty"`
}

// NewCustomer creates a Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if len(c.Name) > 255 {
		return apperror.NewValidation("name must not exceed 255 characters").
			WithDetail("field", "name")
	}

	return nil
}
