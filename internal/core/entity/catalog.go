package entity

import (
	"context"

	"devinventory/internal/core/apperror"
)

// Catalog is the base type for reference lists (item types, divisions).
type Catalog struct {
	BaseEntity

	// Code is the natural key, unique per catalog
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// GetCode returns the natural key.
func (c *Catalog) GetCode() string {
	return c.Code
}

// GetName returns the display name.
func (c *Catalog) GetName() string {
	return c.Name
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
