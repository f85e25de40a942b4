package catalog_repo

import (
	"devinventory/internal/domain/catalogs/itemtype"
	"devinventory/internal/infrastructure/storage/postgres"
)

// ItemTypeRepo implements itemtype.Repository over kode_items.
type ItemTypeRepo struct {
	*BaseCatalogRepo[*itemtype.ItemType]
}

var _ itemtype.Repository = (*ItemTypeRepo)(nil)

// NewItemTypeRepo creates a new item type repository.
func NewItemTypeRepo(txManager *postgres.TxManager) *ItemTypeRepo {
	return &ItemTypeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"kode_items",
			postgres.ExtractDBColumns[itemtype.ItemType](),
			func() *itemtype.ItemType { return &itemtype.ItemType{} },
		),
	}
}
