package itemtype

import (
	"context"
	"strings"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/tx"
	"devinventory/internal/domain"
)

const entityName = "item type"

// Service provides business logic for the item type list.
type Service struct {
	*domain.CatalogService[*ItemType]
	repo Repository
}

// NewService creates a new ItemType service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*ItemType]{
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

func (s *Service) prepareForCreate(ctx context.Context, t *ItemType) error {
	normalize(t)

	exists, err := s.repo.ExistsByCode(ctx, t.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate(entityName, "code", t.Code)
	}
	return nil
}

func (s *Service) prepareForUpdate(ctx context.Context, t *ItemType) error {
	normalize(t)

	existing, err := s.repo.GetByCode(ctx, t.Code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != t.ID {
		return apperror.NewDuplicate(entityName, "code", t.Code)
	}
	return nil
}

// Name returns the display name of the item type with code.
// Used by the device service to fill the item type name of a new record.
func (s *Service) Name(ctx context.Context, code string) (string, error) {
	t, err := s.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}
	return t.Name, nil
}

func normalize(t *ItemType) {
	t.Code = strings.TrimSpace(t.Code)
	t.Name = strings.TrimSpace(t.Name)
}
