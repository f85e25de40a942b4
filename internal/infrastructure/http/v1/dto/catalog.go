package dto

import (
	"devinventory/internal/core/entity"
	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/domain/catalogs/itemtype"
)

// CatalogResponse contains reference list fields.
type CatalogResponse struct {
	BaseResponse
	Code string `json:"code"`
	Name string `json:"name"`
}

// FromCatalog creates CatalogResponse from entity.Catalog.
func FromCatalog(c entity.Catalog) CatalogResponse {
	return CatalogResponse{
		BaseResponse: FromBase(c.BaseEntity),
		Code:         c.Code,
		Name:         c.Name,
	}
}

// --- Item types ---

// CreateItemTypeRequest is the request body for creating an item type.
type CreateItemTypeRequest struct {
	Code string `json:"code" binding:"required,kodeitem"`
	Name string `json:"name" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r CreateItemTypeRequest) ToEntity() *itemtype.ItemType {
	return itemtype.NewItemType(r.Code, r.Name)
}

// UpdateItemTypeRequest is the request body for updating an item type.
type UpdateItemTypeRequest struct {
	Code    *string `json:"code" binding:"omitempty,kodeitem"`
	Name    *string `json:"name"`
	Version int     `json:"version" binding:"min=0"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdateItemTypeRequest) ApplyTo(t *itemtype.ItemType) *itemtype.ItemType {
	if r.Code != nil {
		t.Code = *r.Code
	}
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Version > 0 {
		t.Version = r.Version
	}
	return t
}

// FromItemType maps an item type to its response.
func FromItemType(t *itemtype.ItemType) any {
	return FromCatalog(t.Catalog)
}

// --- Divisions ---

// CreateDivisionRequest is the request body for creating a division.
// The code is derived from the name.
type CreateDivisionRequest struct {
	Name string `json:"name" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r CreateDivisionRequest) ToEntity() *division.Division {
	return division.NewDivision(r.Name)
}

// UpdateDivisionRequest renames a division; the code follows the new name.
type UpdateDivisionRequest struct {
	Name    string `json:"name" binding:"required"`
	Version int    `json:"version" binding:"min=0"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdateDivisionRequest) ApplyTo(d *division.Division) *division.Division {
	d.Code = ""
	d.Name = r.Name
	d.Normalize()
	if r.Version > 0 {
		d.Version = r.Version
	}
	return d
}

// FromDivision maps a division to its response.
func FromDivision(d *division.Division) any {
	return FromCatalog(d.Catalog)
}
