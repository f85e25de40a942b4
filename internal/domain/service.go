package domain

import (
	"context"
	"fmt"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/entity"
	"devinventory/internal/core/id"
	"devinventory/internal/core/tx"
	"devinventory/pkg/logger"
)

// CatalogService implements create/read/update/delete for a reference list.
// Entity specific rules are registered as hooks by the wrapping service.
type CatalogService[T entity.Validatable] struct {
	repo       CatalogRepository[T]
	txManager  tx.Manager
	hooks      *HookRegistry[T]
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T entity.Validatable] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager // nil means no transaction (in-memory storage)
	EntityName string     // used in error messages and logs
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	txm := cfg.TxManager
	if txm == nil {
		txm = tx.Nop{}
	}
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  txm,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// Create validates and inserts a new entity.
func (s *CatalogService[T]) Create(ctx context.Context, e T) error {
	if err := s.prepare(ctx, BeforeCreate, e); err != nil {
		return err
	}
	return s.write(ctx, "create", AfterCreate, e, func(ctx context.Context) error {
		return s.repo.Create(ctx, e)
	})
}

// Update validates and stores an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, e T) error {
	if err := s.prepare(ctx, BeforeUpdate, e); err != nil {
		return err
	}
	return s.write(ctx, "update", AfterUpdate, e, func(ctx context.Context) error {
		return s.repo.Update(ctx, e)
	})
}

// Delete removes the entity.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.getErr(err, entityID.String())
	}
	if err := s.hooks.Run(ctx, BeforeDelete, e); err != nil {
		return err
	}
	return s.write(ctx, "delete", AfterDelete, e, func(ctx context.Context) error {
		return s.repo.Delete(ctx, entityID)
	})
}

// GetByID retrieves entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e, err := s.repo.GetByID(ctx, entityID)
	return e, s.getErr(err, entityID.String())
}

// GetByCode retrieves entity by code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	e, err := s.repo.GetByCode(ctx, code)
	return e, s.getErr(err, code)
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// ExistsByCode reports whether an entity with code exists.
func (s *CatalogService[T]) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return s.repo.ExistsByCode(ctx, code)
}

// prepare runs the before-hooks, then entity validation.
func (s *CatalogService[T]) prepare(ctx context.Context, event HookEvent, e T) error {
	if err := s.hooks.Run(ctx, event, e); err != nil {
		return err
	}
	if err := e.Validate(ctx); err != nil {
		if apperror.IsAppError(err) {
			return err
		}
		return apperror.NewValidation(err.Error())
	}
	return nil
}

// write runs op in a transaction and then the after-hooks, whose errors are only logged.
func (s *CatalogService[T]) write(ctx context.Context, verb string, after HookEvent, e T, op func(ctx context.Context) error) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", verb, s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, after, e); err != nil {
		logger.Warn(ctx, "after-"+verb+" hook failed", "entity", s.entityName, "error", err)
	}
	return nil
}

func (s *CatalogService[T]) getErr(err error, idOrCode string) error {
	switch {
	case err == nil:
		return nil
	case apperror.IsNotFound(err):
		return apperror.NewNotFound(s.entityName, idOrCode)
	case apperror.IsAppError(err):
		return err
	default:
		return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
	}
}
