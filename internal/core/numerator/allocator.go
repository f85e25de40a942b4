package numerator

import (
	"context"
	"time"
)

// Record is the slice of an inventory record the allocator needs.
type Record struct {
	KodeID       string
	PurchaseDate time.Time
}

// RecordStore lists existing records whose kode ID starts with prefix.
// No ordering is required.
type RecordStore interface {
	ListByKodePrefix(ctx context.Context, prefix string) ([]Record, error)
}

// Allocation is the result of one allocation.
type Allocation struct {
	KodeID       string
	ItemTypeCode string
	Sequence     int
	YearSuffix   string

	// Degraded is set when the record store could not be read and the
	// first sequence of the bucket was returned instead of max+1.
	Degraded bool
}

// Bucket returns the allocation bucket key.
func (a Allocation) Bucket() string {
	return BucketKey(a.ItemTypeCode, a.YearSuffix)
}

// Allocator computes the next kode ID for a new record.
// This is the domain contract - implementations live in infrastructure layer.
type Allocator interface {
	// Allocate returns the next identifier for the (itemTypeCode, purchase year) bucket.
	// The only error is a sequence overflow; store failures degrade to sequence 001.
	Allocate(ctx context.Context, itemTypeCode string, purchaseDate time.Time) (Allocation, error)
}
