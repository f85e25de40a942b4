package division

import (
	"devinventory/internal/domain"
)

// Repository defines the interface for Division persistence.
type Repository interface {
	domain.CatalogRepository[*Division]
}
