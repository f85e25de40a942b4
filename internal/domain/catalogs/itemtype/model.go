// Package itemtype provides the item type reference list (kode item).
// The two-digit code of an item type is the second segment of every kode ID.
package itemtype

import (
	"context"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/entity"
	"devinventory/internal/core/numerator"
)

// ItemType is a device category such as "01 Monitor".
type ItemType struct {
	entity.Catalog
}

// NewItemType creates a new ItemType.
func NewItemType(code, name string) *ItemType {
	return &ItemType{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable interface.
func (t *ItemType) Validate(ctx context.Context) error {
	if err := t.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !numerator.IsItemTypeCode(t.Code) {
		return apperror.NewValidation("item type code must be exactly two digits").
			WithDetail("field", "code").
			WithDetail("value", t.Code)
	}

	return nil
}
