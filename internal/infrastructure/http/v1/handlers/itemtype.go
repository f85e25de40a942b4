package handlers

import (
	"devinventory/internal/domain/catalogs/itemtype"
	"devinventory/internal/infrastructure/http/v1/dto"
)

// ItemTypeHandler handles the item type (kode item) endpoints.
type ItemTypeHandler struct {
	*CatalogHandler[*itemtype.ItemType, dto.CreateItemTypeRequest, dto.UpdateItemTypeRequest]
}

// NewItemTypeHandler creates a new item type handler.
func NewItemTypeHandler(base *BaseHandler, service *itemtype.Service) *ItemTypeHandler {
	return &ItemTypeHandler{
		CatalogHandler: NewCatalogHandler(base, CatalogHandlerConfig[*itemtype.ItemType, dto.CreateItemTypeRequest, dto.UpdateItemTypeRequest]{
			Service:      service.CatalogService,
			MapCreateDTO: dto.CreateItemTypeRequest.ToEntity,
			MapUpdateDTO: dto.UpdateItemTypeRequest.ApplyTo,
			MapToDTO:     dto.FromItemType,
		}),
	}
}
