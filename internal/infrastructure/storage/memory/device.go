package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/id"
	"devinventory/internal/core/numerator"
	"devinventory/internal/core/types"
	"devinventory/internal/domain"
	"devinventory/internal/domain/device"
)

const devicesTable = "devices"

// DeviceRepo implements device.Repository over a map.
// kode_id uniqueness is enforced the way the SQL index does.
type DeviceRepo struct {
	mu      sync.RWMutex
	devices map[id.ID]*device.Device
}

var _ device.Repository = (*DeviceRepo)(nil)

// NewDeviceRepo creates an empty device repository.
func NewDeviceRepo() *DeviceRepo {
	return &DeviceRepo{devices: make(map[id.ID]*device.Device)}
}

func cloneDevice(d *device.Device) *device.Device {
	c := *d
	if d.WarrantyUntil != nil {
		t := *d.WarrantyUntil
		c.WarrantyUntil = &t
	}
	if d.AssetValue != nil {
		v := *d.AssetValue
		c.AssetValue = &v
	}
	c.ItemTypeCode = ""
	return &c
}

// ListByKodePrefix implements numerator.RecordStore.
func (r *DeviceRepo) ListByKodePrefix(ctx context.Context, prefix string) ([]numerator.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []numerator.Record
	for _, d := range r.devices {
		if strings.HasPrefix(d.KodeID, prefix) {
			records = append(records, numerator.Record{KodeID: d.KodeID, PurchaseDate: d.PurchaseDate})
		}
	}
	return records, nil
}

// Create implements device.Repository.
func (r *DeviceRepo) Create(ctx context.Context, d *device.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[d.ID]; ok {
		return apperror.NewDuplicate(devicesTable, "id", d.ID.String())
	}
	if r.findByKodeID(d.KodeID) != nil {
		return apperror.NewDuplicate(devicesTable, "kode_id", d.KodeID)
	}

	r.devices[d.ID] = cloneDevice(d)
	return nil
}

// GetByID implements device.Repository.
func (r *DeviceRepo) GetByID(ctx context.Context, deviceID id.ID) (*device.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[deviceID]
	if !ok {
		return nil, apperror.NewNotFound(devicesTable, deviceID.String())
	}
	return cloneDevice(d), nil
}

// GetByKodeID implements device.Repository.
func (r *DeviceRepo) GetByKodeID(ctx context.Context, kodeID string) (*device.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if d := r.findByKodeID(kodeID); d != nil {
		return cloneDevice(d), nil
	}
	return nil, apperror.NewNotFound(devicesTable, kodeID)
}

// Update implements device.Repository with optimistic locking.
func (r *DeviceRepo) Update(ctx context.Context, d *device.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.devices[d.ID]
	if !ok {
		return apperror.NewNotFound(devicesTable, d.ID.String())
	}
	if current.Version != d.Version {
		return apperror.NewConcurrentModification(devicesTable, d.ID.String())
	}

	d.Version++
	r.devices[d.ID] = cloneDevice(d)
	return nil
}

// Delete implements device.Repository.
func (r *DeviceRepo) Delete(ctx context.Context, deviceID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[deviceID]; !ok {
		return apperror.NewNotFound(devicesTable, deviceID.String())
	}
	delete(r.devices, deviceID)
	return nil
}

// List implements device.Repository.
func (r *DeviceRepo) List(ctx context.Context, filter device.ListFilter) (domain.ListResult[*device.Device], error) {
	column, desc, err := device.ParseOrderBy(filter.OrderBy)
	if err != nil {
		return domain.ListResult[*device.Device]{}, err
	}

	items := r.matching(filter)
	sort.SliceStable(items, func(i, j int) bool {
		c := compareColumn(items[i], items[j], column)
		if c == 0 {
			// UUIDv7 is time-ordered
			c = strings.Compare(items[i].ID.String(), items[j].ID.String())
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	return domain.ListResult[*device.Device]{
		Items:      paginate(items, filter.Limit, filter.Offset),
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// DistinctValues implements device.Repository.
func (r *DeviceRepo) DistinctValues(ctx context.Context, field device.Field) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, d := range r.devices {
		if v := d.Column(string(field)); v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// Summary implements device.Repository.
func (r *DeviceRepo) Summary(ctx context.Context, filter device.ListFilter) (device.Summary, error) {
	sum := device.NewSummary()
	for _, d := range r.matching(filter) {
		sum.Total++
		sum.ByCondition[d.Condition]++
		sum.TotalAssetValue = sum.TotalAssetValue.Add(types.Sum(d.AssetValue))
	}
	return sum, nil
}

func (r *DeviceRepo) matching(filter device.ListFilter) []*device.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*device.Device, 0, len(r.devices))
	for _, d := range r.devices {
		if filter.Matches(d) {
			items = append(items, cloneDevice(d))
		}
	}
	return items
}

// findByKodeID must be called with r.mu held.
func (r *DeviceRepo) findByKodeID(kodeID string) *device.Device {
	for _, d := range r.devices {
		if d.KodeID == kodeID {
			return d
		}
	}
	return nil
}

func compareColumn(a, b *device.Device, column string) int {
	switch column {
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case "tanggal_beli":
		return a.PurchaseDate.Compare(b.PurchaseDate)
	case "nilai_aset":
		return types.Sum(a.AssetValue).Cmp(types.Sum(b.AssetValue))
	}
	return strings.Compare(a.Column(column), b.Column(column))
}
