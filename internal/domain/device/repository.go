package device

import (
	"context"

	"devinventory/internal/core/id"
	"devinventory/internal/core/numerator"
	"devinventory/internal/core/types"
	"devinventory/internal/domain"
)

// Summary aggregates the devices selected by a filter.
type Summary struct {
	Total           int64               `json:"total"`
	ByCondition     map[Condition]int64 `json:"byCondition"`
	TotalAssetValue types.Money         `json:"totalAssetValue"`
}

// NewSummary returns a Summary with every condition present at zero.
func NewSummary() Summary {
	s := Summary{ByCondition: make(map[Condition]int64, len(Conditions))}
	for _, c := range Conditions {
		s.ByCondition[c] = 0
	}
	return s
}

// Repository defines the interface for Device persistence.
// It is also the record store the kode allocator reads from.
type Repository interface {
	numerator.RecordStore

	Create(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id id.ID) (*Device, error)
	GetByKodeID(ctx context.Context, kodeID string) (*Device, error)

	// Update stores d when its version matches and bumps the version.
	Update(ctx context.Context, d *Device) error

	// Delete removes the row physically.
	Delete(ctx context.Context, id id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Device], error)

	// DistinctValues returns sorted, non-empty distinct values of field.
	DistinctValues(ctx context.Context, field Field) ([]string, error)

	Summary(ctx context.Context, filter ListFilter) (Summary, error)
}
