package handlers

import (
	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/infrastructure/http/v1/dto"
)

// DivisionHandler handles the division (devisi) endpoints.
type DivisionHandler struct {
	*CatalogHandler[*division.Division, dto.CreateDivisionRequest, dto.UpdateDivisionRequest]
}

// NewDivisionHandler creates a new division handler.
func NewDivisionHandler(base *BaseHandler, service *division.Service) *DivisionHandler {
	return &DivisionHandler{
		CatalogHandler: NewCatalogHandler(base, CatalogHandlerConfig[*division.Division, dto.CreateDivisionRequest, dto.UpdateDivisionRequest]{
			Service:      service.CatalogService,
			MapCreateDTO: dto.CreateDivisionRequest.ToEntity,
			MapUpdateDTO: dto.UpdateDivisionRequest.ApplyTo,
			MapToDTO:     dto.FromDivision,
		}),
	}
}
