// Package memory provides in-process repositories for demos and tests.
// Data lives in maps guarded by a mutex and is lost on restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/entity"
	"devinventory/internal/core/id"
	"devinventory/internal/domain"
	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/domain/catalogs/itemtype"
)

// catalogEntity is what CatalogRepo needs from a reference list item.
type catalogEntity interface {
	entity.Validatable
	GetID() id.ID
	GetCode() string
	GetName() string
	GetVersion() int
	SetVersion(v int)
}

// CatalogRepo implements domain.CatalogRepository over a map.
type CatalogRepo[T catalogEntity] struct {
	mu    sync.RWMutex
	items map[id.ID]T
	name  string
	clone func(T) T
}

// NewCatalogRepo creates an empty repository. clone must return a deep copy.
func NewCatalogRepo[T catalogEntity](name string, clone func(T) T) *CatalogRepo[T] {
	return &CatalogRepo[T]{
		items: make(map[id.ID]T),
		name:  name,
		clone: clone,
	}
}

// NewItemTypeRepo creates an in-memory item type repository.
func NewItemTypeRepo() *CatalogRepo[*itemtype.ItemType] {
	return NewCatalogRepo("kode_items", func(t *itemtype.ItemType) *itemtype.ItemType {
		c := *t
		return &c
	})
}

// NewDivisionRepo creates an in-memory division repository.
func NewDivisionRepo() *CatalogRepo[*division.Division] {
	return NewCatalogRepo("divisi", func(d *division.Division) *division.Division {
		c := *d
		return &c
	})
}

var (
	_ itemtype.Repository = (*CatalogRepo[*itemtype.ItemType])(nil)
	_ division.Repository = (*CatalogRepo[*division.Division])(nil)
)

// Create implements domain.CatalogRepository.
func (r *CatalogRepo[T]) Create(ctx context.Context, e T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[e.GetID()]; ok {
		return apperror.NewDuplicate(r.name, "id", e.GetID().String())
	}
	if r.findByCode(e.GetCode()) != nil {
		return apperror.NewDuplicate(r.name, "code", e.GetCode())
	}

	r.items[e.GetID()] = r.clone(e)
	return nil
}

// GetByID implements domain.CatalogRepository.
func (r *CatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[entityID]
	if !ok {
		var zero T
		return zero, apperror.NewNotFound(r.name, entityID.String())
	}
	return r.clone(e), nil
}

// GetByCode implements domain.CatalogRepository.
func (r *CatalogRepo[T]) GetByCode(ctx context.Context, code string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e := r.findByCode(code); e != nil {
		return r.clone(*e), nil
	}
	var zero T
	return zero, apperror.NewNotFound(r.name, code)
}

// Update implements domain.CatalogRepository with optimistic locking.
func (r *CatalogRepo[T]) Update(ctx context.Context, e T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[e.GetID()]
	if !ok {
		return apperror.NewNotFound(r.name, e.GetID().String())
	}
	if current.GetVersion() != e.GetVersion() {
		return apperror.NewConcurrentModification(r.name, e.GetID().String())
	}
	if other := r.findByCode(e.GetCode()); other != nil && (*other).GetID() != e.GetID() {
		return apperror.NewDuplicate(r.name, "code", e.GetCode())
	}

	e.SetVersion(e.GetVersion() + 1)
	r.items[e.GetID()] = r.clone(e)
	return nil
}

// Delete implements domain.CatalogRepository.
func (r *CatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[entityID]; !ok {
		return apperror.NewNotFound(r.name, entityID.String())
	}
	delete(r.items, entityID)
	return nil
}

// List implements domain.CatalogRepository. Items are sorted by code unless OrderBy says "name".
func (r *CatalogRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(filter.Search))

	var ids map[id.ID]bool
	if len(filter.IDs) > 0 {
		ids = make(map[id.ID]bool, len(filter.IDs))
		for _, v := range filter.IDs {
			ids[v] = true
		}
	}

	items := make([]T, 0, len(r.items))
	for _, e := range r.items {
		if ids != nil && !ids[e.GetID()] {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(e.GetCode()), needle) &&
			!strings.Contains(fold.String(e.GetName()), needle) {
			continue
		}
		items = append(items, r.clone(e))
	}

	key := func(e T) string { return e.GetCode() }
	desc := strings.HasPrefix(filter.OrderBy, "-")
	switch strings.TrimLeft(filter.OrderBy, "+-") {
	case "", "code":
	case "name":
		key = func(e T) string { return e.GetName() }
	default:
		return domain.ListResult[T]{}, apperror.NewValidation("invalid orderBy").WithDetail("orderBy", filter.OrderBy)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return key(items[i]) > key(items[j])
		}
		return key(items[i]) < key(items[j])
	})

	return domain.ListResult[T]{
		Items:      paginate(items, filter.Limit, filter.Offset),
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// ExistsByCode implements domain.CatalogRepository.
func (r *CatalogRepo[T]) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByCode(code) != nil, nil
}

// findByCode must be called with r.mu held.
func (r *CatalogRepo[T]) findByCode(code string) *T {
	for _, e := range r.items {
		if e.GetCode() == code {
			return &e
		}
	}
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
