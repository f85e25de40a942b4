package device

import (
	"context"
	"fmt"
	"time"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/id"
	"devinventory/internal/core/lock"
	"devinventory/internal/core/numerator"
	"devinventory/internal/core/tx"
	"devinventory/internal/domain"
	"devinventory/internal/domain/audit"
	"devinventory/pkg/logger"
)

// EntityType names devices in the audit journal.
const EntityType = "device"

const (
	defaultMaxAttempts  = 3
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ItemTypeResolver looks up item type names by code.
type ItemTypeResolver interface {
	Name(ctx context.Context, code string) (string, error)
}

// DivisionResolver maps a division name to its stored code.
type DivisionResolver interface {
	Canonical(ctx context.Context, name string) (string, error)
}

// ServiceConfig wires the device service.
type ServiceConfig struct {
	Repo      Repository
	Allocator numerator.Allocator
	Locker    lock.Locker
	TxManager tx.Manager     // nil means no transaction (in-memory storage)
	Audit     audit.Recorder // nil disables the journal
	ItemTypes ItemTypeResolver
	Divisions DivisionResolver

	// MaxAttempts bounds allocation retries after a kode ID collision.
	MaxAttempts int
}

// Service provides business logic for devices.
type Service struct {
	repo        Repository
	allocator   numerator.Allocator
	locker      lock.Locker
	txManager   tx.Manager
	audit       audit.Recorder
	itemTypes   ItemTypeResolver
	divisions   DivisionResolver
	maxAttempts int
}

// NewService creates a new Device service.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		repo:        cfg.Repo,
		allocator:   cfg.Allocator,
		locker:      cfg.Locker,
		txManager:   cfg.TxManager,
		audit:       cfg.Audit,
		itemTypes:   cfg.ItemTypes,
		divisions:   cfg.Divisions,
		maxAttempts: cfg.MaxAttempts,
	}
	if s.txManager == nil {
		s.txManager = tx.Nop{}
	}
	if s.audit == nil {
		s.audit = audit.NopRecorder{}
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = defaultMaxAttempts
	}
	return s
}

// Create validates d, allocates its kode ID and stores it.
// On return d carries the allocated KodeID.
func (s *Service) Create(ctx context.Context, d *Device) error {
	d.Normalize()

	if !numerator.IsItemTypeCode(d.ItemTypeCode) {
		return apperror.NewValidation("item type code must be exactly two digits").
			WithDetail("field", "kodeItem").
			WithDetail("value", d.ItemTypeCode)
	}
	if err := d.Validate(ctx); err != nil {
		return err
	}
	if err := s.resolveReferences(ctx, d, true); err != nil {
		return err
	}

	audit.EnrichCreatedBy(ctx, d)

	for attempt := 1; ; attempt++ {
		err := s.allocateAndInsert(ctx, d)
		if err == nil {
			logger.Info(ctx, "device created", "device_id", d.ID, "kode_id", d.KodeID)
			return nil
		}
		if !apperror.IsDuplicate(err) {
			return err
		}
		if attempt >= s.maxAttempts {
			return apperror.NewAllocationCollision(d.ItemTypeCode, attempt, err)
		}
		logger.Warn(ctx, "kode ID collision, retrying allocation",
			"kode_id", d.KodeID,
			"attempt", attempt,
		)
	}
}

// allocateAndInsert holds the bucket lock across allocation and insert,
// so concurrent creators of the same bucket observe each other's rows.
func (s *Service) allocateAndInsert(ctx context.Context, d *Device) error {
	bucket := numerator.BucketKey(d.ItemTypeCode, numerator.YearSuffix(d.PurchaseDate))

	unlock, err := s.locker.Lock(ctx, lock.KodeBucketKey(bucket))
	if err != nil {
		logger.Warn(ctx, "kode bucket lock not acquired", "bucket", bucket, "error", err)
		return apperror.NewAllocationBusy(bucket, err)
	}
	defer unlock()

	alloc, err := s.allocator.Allocate(ctx, d.ItemTypeCode, d.PurchaseDate)
	if err != nil {
		return err
	}
	d.KodeID = alloc.KodeID

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, d); err != nil {
			return fmt.Errorf("create device: %w", err)
		}
		return s.audit.Record(ctx, EntityType, d.ID, audit.ActionCreate, d.Snapshot())
	})
}

// resolveReferences checks the division and fills the item type name.
func (s *Service) resolveReferences(ctx context.Context, d *Device, creating bool) error {
	if s.divisions != nil {
		code, err := s.divisions.Canonical(ctx, d.Division)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("unknown division").
					WithDetail("field", "devisi").
					WithDetail("value", d.Division)
			}
			return err
		}
		d.Division = code
	}

	if creating && s.itemTypes != nil {
		name, err := s.itemTypes.Name(ctx, d.ItemTypeCode)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("unknown item type").
					WithDetail("field", "kodeItem").
					WithDetail("value", d.ItemTypeCode)
			}
			return err
		}
		if d.ItemTypeName == "" {
			d.ItemTypeName = name
		}
	}

	return nil
}

// GetByID retrieves a device by ID.
func (s *Service) GetByID(ctx context.Context, deviceID id.ID) (*Device, error) {
	d, err := s.repo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, normalizeGetErr(err, deviceID.String())
	}
	return d, nil
}

// GetByKodeID retrieves a device by its kode ID.
func (s *Service) GetByKodeID(ctx context.Context, kodeID string) (*Device, error) {
	d, err := s.repo.GetByKodeID(ctx, kodeID)
	if err != nil {
		return nil, normalizeGetErr(err, kodeID)
	}
	return d, nil
}

// Update stores changes to an existing device.
// The kode ID is kept as stored. The purchase date may move within its year only.
func (s *Service) Update(ctx context.Context, d *Device) error {
	existing, err := s.repo.GetByID(ctx, d.ID)
	if err != nil {
		return normalizeGetErr(err, d.ID.String())
	}

	d.KodeID = existing.KodeID
	d.CreatedAt = existing.CreatedAt
	d.CreatedBy = existing.CreatedBy
	if d.Version == 0 {
		d.Version = existing.Version
	}

	d.Normalize()
	if d.ItemTypeName == "" {
		d.ItemTypeName = existing.ItemTypeName
	}
	if err := d.Validate(ctx); err != nil {
		return err
	}
	if err := checkPurchaseYear(existing, d); err != nil {
		return err
	}
	if err := s.resolveReferences(ctx, d, false); err != nil {
		return err
	}

	d.Touch()
	audit.EnrichUpdatedBy(ctx, d)

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, d); err != nil {
			return fmt.Errorf("update device: %w", err)
		}
		changes := audit.Diff(existing.Snapshot(), d.Snapshot())
		if len(changes) == 0 {
			return nil
		}
		return s.audit.Record(ctx, EntityType, d.ID, audit.ActionUpdate, changes)
	})
}

// checkPurchaseYear rejects moving a device to another purchase year.
// The allocator counts a record in the bucket of its own purchase year, so a
// moved record would free its sequence in the old bucket while its kode ID
// still occupies it there.
func checkPurchaseYear(existing, d *Device) error {
	was := numerator.YearSuffix(existing.PurchaseDate)
	if now := numerator.YearSuffix(d.PurchaseDate); now != was {
		return apperror.NewValidation("purchase year cannot change after the kode ID is assigned").
			WithDetail("field", "tanggalBeli").
			WithDetail("kodeId", existing.KodeID).
			WithDetail("yearSuffix", was)
	}
	return nil
}

// Delete removes a device physically. Its sequence becomes reusable only if it was the bucket's highest.
func (s *Service) Delete(ctx context.Context, deviceID id.ID) error {
	existing, err := s.repo.GetByID(ctx, deviceID)
	if err != nil {
		return normalizeGetErr(err, deviceID.String())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, deviceID); err != nil {
			return fmt.Errorf("delete device: %w", err)
		}
		return s.audit.Record(ctx, EntityType, deviceID, audit.ActionDelete, existing.Snapshot())
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "device deleted", "device_id", deviceID, "kode_id", existing.KodeID)
	return nil
}

// List retrieves devices matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Device], error) {
	var result domain.ListResult[*Device]
	err := s.read(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.repo.List(ctx, filter.Normalized())
		return err
	})
	return result, err
}

// UniqueValues returns the distinct values of a column for filter dropdowns.
func (s *Service) UniqueValues(ctx context.Context, field string) ([]string, error) {
	f, err := ParseField(field)
	if err != nil {
		return nil, err
	}
	return s.repo.DistinctValues(ctx, f)
}

// Summary counts devices matching filter by condition and totals their asset value.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (Summary, error) {
	var sum Summary
	err := s.read(ctx, func(ctx context.Context) error {
		var err error
		sum, err = s.repo.Summary(ctx, filter.Normalized())
		return err
	})
	return sum, err
}

// read runs fn in a read-only transaction when the storage offers one,
// so a page and its total count agree.
func (s *Service) read(ctx context.Context, fn func(ctx context.Context) error) error {
	if ro, ok := s.txManager.(tx.ReadOnlyManager); ok {
		return ro.ReadOnly(ctx, fn)
	}
	return fn(ctx)
}

// PreviewKodeID returns the kode ID a device would get if created now.
// Nothing is reserved; a concurrent create may take the same number first.
func (s *Service) PreviewKodeID(ctx context.Context, itemTypeCode string, purchaseDate time.Time) (numerator.Allocation, error) {
	if !numerator.IsItemTypeCode(itemTypeCode) {
		return numerator.Allocation{}, apperror.NewValidation("item type code must be exactly two digits").
			WithDetail("field", "kodeItem").
			WithDetail("value", itemTypeCode)
	}
	if purchaseDate.IsZero() {
		return numerator.Allocation{}, required("tanggalBeli")
	}
	return s.allocator.Allocate(ctx, itemTypeCode, purchaseDate)
}

// History returns the newest audit entries of a device, including deleted ones.
func (s *Service) History(ctx context.Context, deviceID id.ID, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.audit.History(ctx, EntityType, deviceID, limit)
}

func normalizeGetErr(err error, key string) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(EntityType, key)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", EntityType).WithDetail("id", key)
}
