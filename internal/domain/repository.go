// Package domain holds the pieces shared by the reference list services:
// list filtering, the generic repository contract and lifecycle hooks.
package domain

import (
	"context"

	"devinventory/internal/core/entity"
	"devinventory/internal/core/id"
	"devinventory/internal/domain/filter"
)

// ListFilter selects and pages reference list rows.
type ListFilter struct {
	// Search is a case-insensitive substring match on code and name
	Search string

	IDs []id.ID

	// AdvancedFilters are column filters, checked against the repository's column whitelist
	AdvancedFilters []filter.Item

	// OrderBy is a column name, "-" prefixed for descending ("code", "-name")
	OrderBy string

	Limit  int
	Offset int
}

// DefaultListFilter orders by code, 50 rows per page.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "code",
	}
}

// ListResult is one page of rows plus the unpaged total.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CatalogRepository stores a reference list keyed by id and by its unique code.
type CatalogRepository[T entity.Validatable] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id id.ID) (T, error)
	GetByCode(ctx context.Context, code string) (T, error)

	// Update fails with CONCURRENT_MODIFICATION when the stored version differs
	Update(ctx context.Context, entity T) error

	// Delete removes the row physically
	Delete(ctx context.Context, id id.ID) error

	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
