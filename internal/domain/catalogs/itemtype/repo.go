package itemtype

import (
	"devinventory/internal/domain"
)

// Repository defines the interface for ItemType persistence.
type Repository interface {
	domain.CatalogRepository[*ItemType]
}
