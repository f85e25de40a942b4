// Package division provides the division (devisi) reference list.
package division

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"devinventory/internal/core/entity"
)

// Division is an organisational unit a device is assigned to.
// Code is the upper-cased name and acts as the natural key.
type Division struct {
	entity.Catalog
}

// NewDivision creates a Division from its display name.
func NewDivision(name string) *Division {
	d := &Division{Catalog: entity.NewCatalog("", name)}
	d.Normalize()
	return d
}

// Normalize derives Code from Name (or Name from Code when only the code is set).
// Codes compare case-insensitively because they are always stored upper-cased.
func (d *Division) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = strings.TrimSpace(d.Code)

	if d.Code == "" {
		d.Code = d.Name
	}
	d.Code = NormalizeCode(d.Code)
	if d.Name == "" {
		d.Name = d.Code
	}
}

// Validate implements entity.Validatable interface.
func (d *Division) Validate(ctx context.Context) error {
	return d.Catalog.Validate(ctx)
}

// NormalizeCode upper-cases a division name into its code.
func NormalizeCode(s string) string {
	// A Caser holds state and must not be shared across goroutines.
	return cases.Upper(language.Indonesian).String(strings.TrimSpace(s))
}
