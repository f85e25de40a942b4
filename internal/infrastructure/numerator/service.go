// Package numerator provides the kode ID allocator over a record store.
// This is the infrastructure layer - it implements core/numerator.Allocator interface.
package numerator

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"devinventory/internal/core/apperror"
	corenumerator "devinventory/internal/core/numerator"
	"devinventory/pkg/logger"
)

var tracer = otel.Tracer("devinventory/numerator")

// Service allocates kode IDs by scanning existing records of the bucket.
// It keeps no counter of its own: every call recomputes max+1 from the store,
// so deleting the highest record makes its sequence available again.
type Service struct {
	store       corenumerator.RecordStore
	maxSequence int
}

// Ensure compile-time interface compliance.
var _ corenumerator.Allocator = (*Service)(nil)

// New creates an allocator reading from store.
func New(store corenumerator.RecordStore) *Service {
	return &Service{
		store:       store,
		maxSequence: corenumerator.MaxSequence,
	}
}

// Allocate computes the next kode ID for the (itemTypeCode, purchase year) bucket.
// Pattern: INV-NN-SSS-YY (e.g., INV-01-004-24)
//
// A store failure does not fail the call: the first sequence of the bucket is
// returned with Degraded set. Overflowing MaxSequence is the only error.
func (s *Service) Allocate(ctx context.Context, itemTypeCode string, purchaseDate time.Time) (corenumerator.Allocation, error) {
	ctx, span := tracer.Start(ctx, "numerator.allocate",
		trace.WithAttributes(
			attribute.String("kode.item_type", itemTypeCode),
		))
	defer span.End()

	yearSuffix := corenumerator.YearSuffix(purchaseDate)
	prefix := corenumerator.BucketPrefix(itemTypeCode)

	alloc := corenumerator.Allocation{
		ItemTypeCode: itemTypeCode,
		YearSuffix:   yearSuffix,
	}

	records, err := s.store.ListByKodePrefix(ctx, prefix)
	if err != nil {
		alloc.Sequence = 1
		alloc.Degraded = true
		alloc.KodeID = corenumerator.Format(itemTypeCode, alloc.Sequence, yearSuffix)

		span.SetAttributes(attribute.Bool("kode.degraded", true))
		logger.Warn(ctx, "kode allocation degraded: record store unavailable, using first sequence",
			"item_type", itemTypeCode,
			"year_suffix", yearSuffix,
			"kode_id", alloc.KodeID,
			"error", err,
		)
		return alloc, nil
	}

	next := nextSequence(records, prefix, yearSuffix)
	if next > s.maxSequence {
		return corenumerator.Allocation{}, apperror.NewSequenceExhausted(alloc.Bucket(), s.maxSequence)
	}

	alloc.Sequence = next
	alloc.KodeID = corenumerator.Format(itemTypeCode, next, yearSuffix)

	span.SetAttributes(attribute.Int("kode.sequence", next))
	logger.Debug(ctx, "kode allocated",
		"kode_id", alloc.KodeID,
		"scanned", len(records),
	)

	return alloc, nil
}

// nextSequence returns max(sequence)+1 over records of the bucket, or 1 when the bucket is empty.
// The year of each record is derived from its own purchase date.
func nextSequence(records []corenumerator.Record, prefix, yearSuffix string) int {
	maxSeq := 0
	for _, r := range records {
		if !strings.HasPrefix(r.KodeID, prefix) {
			continue
		}
		if corenumerator.YearSuffix(r.PurchaseDate) != yearSuffix {
			continue
		}
		if seq := corenumerator.SequenceOf(r.KodeID); seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
