package division

import (
	"context"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/tx"
	"devinventory/internal/domain"
)

const entityName = "division"

// Service provides business logic for the division list.
type Service struct {
	*domain.CatalogService[*Division]
	repo Repository
}

// NewService creates a new Division service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Division]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: entityName,
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, d *Division) error {
	d.Normalize()
	if d.Code == "" {
		return nil // Validate reports the missing name
	}

	exists, err := s.repo.ExistsByCode(ctx, d.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate(entityName, "code", d.Code)
	}
	return nil
}

func (s *Service) prepareForUpdate(ctx context.Context, d *Division) error {
	d.Normalize()

	existing, err := s.repo.GetByCode(ctx, d.Code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != d.ID {
		return apperror.NewDuplicate(entityName, "code", d.Code)
	}
	return nil
}

// Canonical returns the stored code of the division matching name case-insensitively.
// Returns a not-found error when no such division exists.
func (s *Service) Canonical(ctx context.Context, name string) (string, error) {
	d, err := s.GetByCode(ctx, NormalizeCode(name))
	if err != nil {
		return "", err
	}
	return d.Code, nil
}
