package dto

import (
	"salesledger/internal/core/types"
	"salesledger/internal/domain/catalog/product"
	"salesledger/internal/domain/currency"
)

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	SKU       string `json:"sku"`
	UnitPrice string `json:"unitPrice" binding:"required"`
}

// UpdateProductRequest for updating products.
type UpdateProductRequest struct {
	Name      *string `json:"name"`
	SKU       *string `json:"sku"`
	UnitPrice *string `json:"unitPrice"`
	Version   int     `json:"version" binding:"required,min=1"`
}

// ProductResponse is the API view of a product. The unit price is rendered
// in both currencies at the current exchange rate.
type ProductResponse struct {
	CatalogResponse
	SKU       string              `json:"sku"`
	UnitPrice currency.DualAmount `json:"unitPrice"`
}

// FromProduct creates ProductResponse.
func FromProduct(p *product.Product, rate types.Money) ProductResponse {
	return ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		SKU:             p.SKU,
		UnitPrice:       currency.FormatDual(p.UnitPrice, rate),
	}
}

// FromProducts converts a slice of products.
func FromProducts(items []*product.Product, rate types.Money) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProduct(p, rate))
	}
	return out
}
