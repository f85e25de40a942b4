// Package lock defines the keyed mutual-exclusion contract used to serialize
// kode allocation per bucket.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when the lock could not be taken before the wait deadline.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker acquires exclusive named locks.
// Implementations live in infrastructure/lock (Redis, in-process).
type Locker interface {
	// Lock blocks until key is held, ctx is done, or the implementation's wait limit passes.
	// The returned unlock func is safe to call more than once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// KodeBucketKey returns the lock key for an allocation bucket (e.g. "kode:01-24").
func KodeBucketKey(bucket string) string {
	return "kode:" + bucket
}
