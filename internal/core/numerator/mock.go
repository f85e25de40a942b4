package numerator

import (
	"context"
	"time"
)

// MockAllocator is a test implementation of Allocator.
// Use in unit tests to avoid database dependencies.
type MockAllocator struct {
	AllocateFunc func(ctx context.Context, itemTypeCode string, purchaseDate time.Time) (Allocation, error)
}

// Allocate implements Allocator.
func (m *MockAllocator) Allocate(ctx context.Context, itemTypeCode string, purchaseDate time.Time) (Allocation, error) {
	if m.AllocateFunc != nil {
		return m.AllocateFunc(ctx, itemTypeCode, purchaseDate)
	}
	// Default: first sequence of the bucket
	yy := YearSuffix(purchaseDate)
	return Allocation{
		KodeID:       Format(itemTypeCode, 1, yy),
		ItemTypeCode: itemTypeCode,
		Sequence:     1,
		YearSuffix:   yy,
	}, nil
}

// Ensure compile-time interface compliance.
var _ Allocator = (*MockAllocator)(nil)
