package device

import (
	"strings"

	"golang.org/x/text/cases"

	"devinventory/internal/core/apperror"
)

// filterAll is the sentinel the list screen sends for "no filter".
const filterAll = "all"

// ListFilter selects devices for List and Summary.
type ListFilter struct {
	// Search matches case-insensitively against SearchColumns
	Search string

	// Equality filters; "" or "all" means no filter
	Condition string
	Division  string
	ItemType  string
	Status    string

	// OrderBy is a column name, "-" prefix for descending
	OrderBy string

	Limit  int
	Offset int
}

// SearchColumns are the columns the free-text search looks at.
var SearchColumns = []string{
	"kode_id", "jenis_barang", "merk", "type", "sn_reg_model",
	"sub_devisi", "devisi", "spesifikasi", "lokasi", "akun_terhubung",
}

// DefaultOrderBy lists newest records first.
const DefaultOrderBy = "-created_at"

// Normalized trims values, maps "all" to no filter and applies the default order.
func (f ListFilter) Normalized() ListFilter {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, filterAll) {
			return ""
		}
		return s
	}

	f.Search = strings.TrimSpace(f.Search)
	f.Condition = clean(f.Condition)
	f.Division = clean(f.Division)
	f.ItemType = clean(f.ItemType)
	f.Status = clean(f.Status)
	if strings.TrimSpace(f.OrderBy) == "" {
		f.OrderBy = DefaultOrderBy
	}
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Equalities returns the active equality filters keyed by column.
func (f ListFilter) Equalities() map[string]string {
	eq := make(map[string]string, 4)
	if f.Condition != "" {
		eq["kondisi"] = f.Condition
	}
	if f.Division != "" {
		eq["devisi"] = f.Division
	}
	if f.ItemType != "" {
		eq["jenis_barang"] = f.ItemType
	}
	if f.Status != "" {
		eq["status"] = f.Status
	}
	return eq
}

// Matches applies the filter to a single device. Storage drivers without a
// query language use it; SQL drivers translate the filter instead.
func (f ListFilter) Matches(d *Device) bool {
	for col, want := range f.Equalities() {
		if d.Column(col) != want {
			return false
		}
	}

	if f.Search == "" {
		return true
	}

	fold := cases.Fold()
	needle := fold.String(f.Search)
	for _, col := range SearchColumns {
		if strings.Contains(fold.String(d.Column(col)), needle) {
			return true
		}
	}
	return false
}

// Column returns the text value of a string column.
func (d *Device) Column(col string) string {
	switch col {
	case "kode_id":
		return d.KodeID
	case "jenis_barang":
		return d.ItemTypeName
	case "lokasi":
		return d.Location
	case "devisi":
		return d.Division
	case "sub_devisi":
		return d.SubDivision
	case "merk":
		return d.Brand
	case "type":
		return d.Type
	case "sn_reg_model":
		return d.SerialNumber
	case "spesifikasi":
		return d.Specification
	case "status":
		return d.Status
	case "kondisi":
		return string(d.Condition)
	case "akun_terhubung":
		return d.LinkedAccount
	}
	return ""
}

// Field is a column offered for distinct-value lookups (filter dropdowns, autocomplete).
type Field string

const (
	FieldItemType    Field = "jenis_barang"
	FieldDivision    Field = "devisi"
	FieldSubDivision Field = "sub_devisi"
	FieldLocation    Field = "lokasi"
	FieldBrand       Field = "merk"
	FieldStatus      Field = "status"
	FieldCondition   Field = "kondisi"
)

var fieldAliases = map[string]Field{
	"jenis_barang": FieldItemType,
	"jenisBarang":  FieldItemType,
	"devisi":       FieldDivision,
	"sub_devisi":   FieldSubDivision,
	"subDevisi":    FieldSubDivision,
	"lokasi":       FieldLocation,
	"merk":         FieldBrand,
	"status":       FieldStatus,
	"kondisi":      FieldCondition,
}

// ParseField accepts a column name or its JSON name.
func ParseField(s string) (Field, error) {
	if f, ok := fieldAliases[s]; ok {
		return f, nil
	}
	return "", apperror.NewValidation("field does not support distinct values").
		WithDetail("field", s)
}

var orderColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"tanggal_beli": true,
	"nilai_aset":   true,
	"kode_id":      true,
	"jenis_barang": true,
	"lokasi":       true,
	"devisi":       true,
	"sub_devisi":   true,
	"merk":         true,
	"type":         true,
	"status":       true,
	"kondisi":      true,
}

// ParseOrderBy splits "-column" into a whitelisted column and direction.
func ParseOrderBy(orderBy string) (column string, desc bool, err error) {
	column = strings.TrimSpace(orderBy)
	if column == "" {
		column = DefaultOrderBy
	}
	if strings.HasPrefix(column, "-") {
		desc = true
		column = strings.TrimPrefix(column, "-")
	} else {
		column = strings.TrimPrefix(column, "+")
	}

	if !orderColumns[column] {
		return "", false, apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", column)
	}
	return column, desc, nil
}
