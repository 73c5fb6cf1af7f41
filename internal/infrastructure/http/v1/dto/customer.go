package dto

import (
	"salesledger/internal/domain/catalog/customer"
)

// CreateCustomerRequest for creating customers.
type CreateCustomerRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required,max=255"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest for updating customers.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Version int     `json:"version" binding:"required,min=1"`
}

// CustomerResponse is the API view of a customer.
type CustomerResponse struct {
	CatalogResponse
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// FromCustomer creates CustomerResponse.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
	}
}

// FromCustomers converts a slice of customers.
func FromCustomers(items []*customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(items))
	for _, c := range items {
		out = append(out, FromCustomer(c))
	}
	return out
}
