package dto

import (
	"time"

	"devinventory/internal/core/numerator"
	"devinventory/internal/core/types"
	"devinventory/internal/domain/audit"
	"devinventory/internal/domain/device"
)

// DeviceFields are the editable columns of a device.
type DeviceFields struct {
	JenisBarang   string       `json:"jenisBarang"`
	TanggalBeli   Date         `json:"tanggalBeli"`
	Garansi       bool         `json:"garansi"`
	GaransiSampai *Date        `json:"garansiSampai"`
	Lokasi        string       `json:"lokasi"`
	Devisi        string       `json:"devisi"`
	SubDevisi     string       `json:"subDevisi"`
	Merk          string       `json:"merk"`
	Type          string       `json:"type"`
	SnRegModel    string       `json:"snRegModel"`
	Spesifikasi   string       `json:"spesifikasi"`
	Gambar        string       `json:"gambar"`
	Status        string       `json:"status"`
	Kondisi       string       `json:"kondisi"`
	AkunTerhubung string       `json:"akunTerhubung"`
	Keterangan    string       `json:"keterangan"`
	NilaiAset     *types.Money `json:"nilaiAset"`
}

func (f DeviceFields) applyTo(d *device.Device) {
	d.ItemTypeName = f.JenisBarang
	d.PurchaseDate = f.TanggalBeli.Time
	d.Warranty = f.Garansi
	d.WarrantyUntil = f.GaransiSampai.TimePtr()
	d.Location = f.Lokasi
	d.Division = f.Devisi
	d.SubDivision = f.SubDevisi
	d.Brand = f.Merk
	d.Type = f.Type
	d.SerialNumber = f.SnRegModel
	d.Specification = f.Spesifikasi
	d.Image = f.Gambar
	d.Status = f.Status
	d.Condition = device.Condition(f.Kondisi)
	d.LinkedAccount = f.AkunTerhubung
	d.Notes = f.Keterangan
	d.AssetValue = f.NilaiAset
}

// CreateDeviceRequest is the request body for registering a device.
// kodeItem selects the allocation bucket; the kode ID itself is assigned by the server.
type CreateDeviceRequest struct {
	KodeItem string `json:"kodeItem" binding:"omitempty,kodeitem"`
	DeviceFields
}

// ToEntity converts DTO to domain entity.
func (r CreateDeviceRequest) ToEntity() *device.Device {
	d := device.New()
	d.ItemTypeCode = r.KodeItem
	r.DeviceFields.applyTo(d)
	return d
}

// UpdateDeviceRequest replaces the editable fields of a device.
// The kode ID cannot be changed; a version of 0 skips the optimistic check.
type UpdateDeviceRequest struct {
	DeviceFields
	Version int `json:"version" binding:"min=0"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdateDeviceRequest) ApplyTo(d *device.Device) *device.Device {
	r.DeviceFields.applyTo(d)
	d.Version = r.Version
	return d
}

// DeviceResponse is the API view of a device.
type DeviceResponse struct {
	RecordResponse
	KodeID        string       `json:"kodeId"`
	KodeItem      string       `json:"kodeItem"`
	JenisBarang   string       `json:"jenisBarang"`
	TanggalBeli   Date         `json:"tanggalBeli"`
	Garansi       bool         `json:"garansi"`
	GaransiSampai *Date        `json:"garansiSampai,omitempty"`
	Lokasi        string       `json:"lokasi"`
	Devisi        string       `json:"devisi"`
	SubDevisi     string       `json:"subDevisi"`
	Merk          string       `json:"merk"`
	Type          string       `json:"type"`
	SnRegModel    string       `json:"snRegModel"`
	Spesifikasi   string       `json:"spesifikasi"`
	Gambar        string       `json:"gambar"`
	Status        string       `json:"status"`
	Kondisi       string       `json:"kondisi"`
	AkunTerhubung string       `json:"akunTerhubung"`
	Keterangan    string       `json:"keterangan"`
	NilaiAset     *types.Money `json:"nilaiAset,omitempty"`
}

// FromDevice maps a device to its response.
func FromDevice(d *device.Device) DeviceResponse {
	return DeviceResponse{
		RecordResponse: FromRecord(d.BaseRecord),
		KodeID:         d.KodeID,
		KodeItem:       d.ItemTypeCodeOf(),
		JenisBarang:    d.ItemTypeName,
		TanggalBeli:    NewDate(d.PurchaseDate),
		Garansi:        d.Warranty,
		GaransiSampai:  DatePtr(d.WarrantyUntil),
		Lokasi:         d.Location,
		Devisi:         d.Division,
		SubDevisi:      d.SubDivision,
		Merk:           d.Brand,
		Type:           d.Type,
		SnRegModel:     d.SerialNumber,
		Spesifikasi:    d.Specification,
		Gambar:         d.Image,
		Status:         d.Status,
		Kondisi:        string(d.Condition),
		AkunTerhubung:  d.LinkedAccount,
		Keterangan:     d.Notes,
		NilaiAset:      d.AssetValue,
	}
}

// DeviceListQuery holds the query parameters of the device list and summary.
type DeviceListQuery struct {
	Search  string `form:"search"`
	Kondisi string `form:"kondisi"`
	Devisi  string `form:"devisi"`
	Jenis   string `form:"jenisBarang"`
	Status  string `form:"status"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit" binding:"min=0,max=500"`
	Offset  int    `form:"offset" binding:"min=0"`
}

// ToFilter converts the query into a domain filter. Limit defaults to 50.
func (q DeviceListQuery) ToFilter() device.ListFilter {
	limit := q.Limit
	if limit == 0 {
		limit = 50
	}
	return device.ListFilter{
		Search:    q.Search,
		Condition: q.Kondisi,
		Division:  q.Devisi,
		ItemType:  q.Jenis,
		Status:    q.Status,
		OrderBy:   q.OrderBy,
		Limit:     limit,
		Offset:    q.Offset,
	}
}

// NextCodeResponse previews the kode ID a new device would get.
type NextCodeResponse struct {
	KodeID   string `json:"kodeId"`
	KodeItem string `json:"kodeItem"`
	Sequence int    `json:"sequence"`
	Year     string `json:"year"`
	Degraded bool   `json:"degraded,omitempty"`
}

// FromAllocation maps an allocator result to its response.
func FromAllocation(a numerator.Allocation) NextCodeResponse {
	return NextCodeResponse{
		KodeID:   a.KodeID,
		KodeItem: a.ItemTypeCode,
		Sequence: a.Sequence,
		Year:     a.YearSuffix,
		Degraded: a.Degraded,
	}
}

// SummaryResponse is the API view of device.Summary.
type SummaryResponse struct {
	Total           int64            `json:"total"`
	ByCondition     map[string]int64 `json:"byCondition"`
	TotalAssetValue types.Money      `json:"totalAssetValue"`
}

// FromSummary maps a summary to its response.
func FromSummary(s device.Summary) SummaryResponse {
	by := make(map[string]int64, len(s.ByCondition))
	for c, n := range s.ByCondition {
		by[string(c)] = n
	}
	return SummaryResponse{
		Total:           s.Total,
		ByCondition:     by,
		TotalAssetValue: s.TotalAssetValue,
	}
}

// AuditEntryResponse is one journal entry.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	UserID    string    `json:"userId,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	Changes   any       `json:"changes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromAuditEntry maps a journal entry to its response.
func FromAuditEntry(e audit.Entry) AuditEntryResponse {
	resp := AuditEntryResponse{
		ID:        e.ID.String(),
		Action:    string(e.Action),
		UserID:    e.UserID,
		UserEmail: e.UserEmail,
		CreatedAt: e.CreatedAt,
	}
	if len(e.Changes) > 0 {
		resp.Changes = e.Changes
	}
	return resp
}
