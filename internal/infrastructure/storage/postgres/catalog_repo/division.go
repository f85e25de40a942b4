package catalog_repo

import (
	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/infrastructure/storage/postgres"
)

// DivisionRepo implements division.Repository over divisi.
type DivisionRepo struct {
	*BaseCatalogRepo[*division.Division]
}

var _ division.Repository = (*DivisionRepo)(nil)

// NewDivisionRepo creates a new division repository.
func NewDivisionRepo(txManager *postgres.TxManager) *DivisionRepo {
	return &DivisionRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"divisi",
			postgres.ExtractDBColumns[division.Division](),
			func() *division.Division { return &division.Division{} },
		),
	}
}
