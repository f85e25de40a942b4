// Package device provides the inventory record (perangkat) and its service.
package device

import (
	"context"
	"strings"
	"time"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/entity"
	"devinventory/internal/core/numerator"
	"devinventory/internal/core/types"
)

// Condition is the physical state of a device.
type Condition string

const (
	ConditionGood     Condition = "Baik"
	ConditionBroken   Condition = "Rusak"
	ConditionInRepair Condition = "Dalam Perbaikan"
	ConditionUnused   Condition = "Tidak Terpakai"
)

// DefaultStatus is assigned when a record is created without a status.
const DefaultStatus = "Aktif"

const dateLayout = "2006-01-02"

// Conditions lists every valid condition in display order.
var Conditions = []Condition{ConditionGood, ConditionBroken, ConditionInRepair, ConditionUnused}

// IsValid reports whether c is a known condition.
func (c Condition) IsValid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// Device is one inventory record.
type Device struct {
	entity.BaseRecord

	// KodeID is allocated once at creation and never recomputed.
	KodeID string `db:"kode_id" json:"kodeId"`

	// ItemTypeCode selects the allocation bucket on create. Not stored;
	// for persisted records it is segment 1 of KodeID.
	ItemTypeCode string `db:"-" json:"kodeItem,omitempty"`

	ItemTypeName  string       `db:"jenis_barang" json:"jenisBarang"`
	PurchaseDate  time.Time    `db:"tanggal_beli" json:"tanggalBeli"`
	Warranty      bool         `db:"garansi" json:"garansi"`
	WarrantyUntil *time.Time   `db:"garansi_sampai" json:"garansiSampai,omitempty"`
	Location      string       `db:"lokasi" json:"lokasi"`
	Division      string       `db:"devisi" json:"devisi"`
	SubDivision   string       `db:"sub_devisi" json:"subDevisi"`
	Brand         string       `db:"merk" json:"merk"`
	Type          string       `db:"type" json:"type"`
	SerialNumber  string       `db:"sn_reg_model" json:"snRegModel"`
	Specification string       `db:"spesifikasi" json:"spesifikasi"`
	Image         string       `db:"gambar" json:"gambar"`
	Status        string       `db:"status" json:"status"`
	Condition     Condition    `db:"kondisi" json:"kondisi"`
	LinkedAccount string       `db:"akun_terhubung" json:"akunTerhubung"`
	Notes         string       `db:"keterangan" json:"keterangan"`
	AssetValue    *types.Money `db:"nilai_aset" json:"nilaiAset,omitempty"`
}

// New creates an empty device with generated ID, timestamps and defaults.
func New() *Device {
	return &Device{
		BaseRecord: entity.NewBaseRecord(),
		Status:     DefaultStatus,
		Condition:  ConditionGood,
	}
}

// ItemTypeCodeOf returns the item type code carried by the kode ID,
// falling back to the transient create-time field.
func (d *Device) ItemTypeCodeOf() string {
	if k, err := numerator.Parse(d.KodeID); err == nil {
		return k.ItemTypeCode
	}
	return d.ItemTypeCode
}

// Normalize trims free-text fields and applies defaults.
func (d *Device) Normalize() {
	for _, f := range []*string{
		&d.ItemTypeCode, &d.ItemTypeName, &d.Location, &d.Division, &d.SubDivision,
		&d.Brand, &d.Type, &d.SerialNumber, &d.Specification, &d.Image,
		&d.Status, &d.LinkedAccount, &d.Notes,
	} {
		*f = strings.TrimSpace(*f)
	}
	if d.Status == "" {
		d.Status = DefaultStatus
	}
	if d.Condition == "" {
		d.Condition = ConditionGood
	}
	if !d.Warranty {
		d.WarrantyUntil = nil
	}
}

// Validate implements entity.Validatable interface.
func (d *Device) Validate(ctx context.Context) error {
	if d.PurchaseDate.IsZero() {
		return required("tanggalBeli")
	}
	if d.Location == "" {
		return required("lokasi")
	}
	if d.Division == "" {
		return required("devisi")
	}
	if d.Brand == "" {
		return required("merk")
	}

	if !d.Condition.IsValid() {
		return apperror.NewValidation("invalid condition").
			WithDetail("field", "kondisi").
			WithDetail("value", string(d.Condition))
	}

	if d.Warranty {
		if d.WarrantyUntil == nil {
			return apperror.NewValidation("warranty end date is required when under warranty").
				WithDetail("field", "garansiSampai")
		}
		if d.WarrantyUntil.Before(d.PurchaseDate) {
			return apperror.NewValidation("warranty cannot end before the purchase date").
				WithDetail("field", "garansiSampai")
		}
	}

	if d.AssetValue != nil && !d.AssetValue.IsPositive() {
		return apperror.NewValidation("asset value must be positive").
			WithDetail("field", "nilaiAset")
	}

	return nil
}

// Snapshot returns the audited fields as printable scalars.
func (d *Device) Snapshot() map[string]any {
	s := map[string]any{
		"kode_id":        d.KodeID,
		"jenis_barang":   d.ItemTypeName,
		"tanggal_beli":   d.PurchaseDate.Format(dateLayout),
		"garansi":        d.Warranty,
		"lokasi":         d.Location,
		"devisi":         d.Division,
		"sub_devisi":     d.SubDivision,
		"merk":           d.Brand,
		"type":           d.Type,
		"sn_reg_model":   d.SerialNumber,
		"spesifikasi":    d.Specification,
		"gambar":         d.Image,
		"status":         d.Status,
		"kondisi":        string(d.Condition),
		"akun_terhubung": d.LinkedAccount,
		"keterangan":     d.Notes,
	}
	if d.WarrantyUntil != nil {
		s["garansi_sampai"] = d.WarrantyUntil.Format(dateLayout)
	}
	if d.AssetValue != nil {
		s["nilai_aset"] = d.AssetValue.String()
	}
	return s
}

func required(field string) error {
	return apperror.NewValidation(field+" is required").WithDetail("field", field)
}
