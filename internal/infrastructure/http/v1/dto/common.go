// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"salesledger/internal/core/entity"
	"salesledger/internal/core/id"
	"salesledger/internal/domain"
)

// --- Listing ---

// ListRequest contains common list query parameters.
type ListRequest struct {
	Search         string `form:"search"`
	OrderBy        string `form:"orderBy"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset         int    `form:"offset" binding:"omitempty,min=0"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

// ToFilter converts list parameters to a domain filter.
func (r *ListRequest) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = r.Search
	f.IncludeDeleted = r.IncludeDeleted
	if r.OrderBy != "" {
		f.OrderBy = r.OrderBy
	}
	if r.Limit > 0 {
		f.Limit = r.Limit
	}
	f.Offset = r.Offset
	return f
}

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Base DTOs ---

// CatalogResponse contains the fields shared by all catalog entities.
type CatalogResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	DeletionMark bool   `json:"deletionMark"`
	Version      int    `json:"version"`
}

// FromCatalog creates CatalogResponse from entity.Catalog.
func FromCatalog(c entity.Catalog) CatalogResponse {
	return CatalogResponse{
		ID:           c.ID.String(),
		Code:         c.Code,
		Name:         c.Name,
		DeletionMark: c.DeletionMark,
		Version:      c.Version,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates an ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse documents the error body shape produced by the error
// handler middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
