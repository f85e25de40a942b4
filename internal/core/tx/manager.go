// Package tx lets domain services group repository calls into one transaction
// without importing the storage driver.
package tx

import (
	"context"
)

// Manager runs fn in a transaction carried by the context passed to fn.
// fn's error rolls the transaction back; nested calls join the outer one.
// Implemented by infrastructure/storage/postgres.TxManager.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager is a Manager that can also open snapshot read transactions.
type ReadOnlyManager interface {
	Manager
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Nop runs fn directly. The in-memory storage driver uses it.
type Nop struct{}

// RunInTransaction implements Manager.
func (Nop) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
