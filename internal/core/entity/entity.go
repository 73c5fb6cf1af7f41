// Package entity provides the base types shared by catalogs and documents.
package entity

import (
	"context"
	"time"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants without database access.
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, an AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains fields common to all persisted entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// DeletionMark indicates a soft-deleted entity
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewBaseEntity creates a BaseEntity with a generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// Touch increments the version (optimistic locking).
func (b *BaseEntity) Touch() {
	b.Version++
}

// MarkDeleted sets the deletion mark.
func (b *BaseEntity) MarkDeleted() {
	b.DeletionMark = true
}

// Undelete clears the deletion mark.
func (b *BaseEntity) Undelete() {
	b.DeletionMark = false
}

// Catalog is the base type for reference data the ledger reads but never
// mutates in bulk: products, customers.
type Catalog struct {
	BaseEntity

	// Code is a human-readable identifier (unique)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a Catalog with a generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// Validate implements the Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	// Code may be auto-generated, so it is optional at creation time.
	return nil
}

// Document is the base type for financial records: orders and invoices.
// Documents in this ledger are immutable snapshots or append-only records;
// there is no post/unpost cycle.
type Document struct {
	BaseEntity

	// Number is the document number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Comment is an optional user note
	Comment string `db:"comment" json:"comment,omitempty"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewDocument creates a Document dated now.
func NewDocument() Document {
	now := time.Now().UTC()
	return Document{
		BaseEntity: NewBaseEntity(),
		Date:       now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate implements the Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments the version.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC()
	d.BaseEntity.Touch()
}
