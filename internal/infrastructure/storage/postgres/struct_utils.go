package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns returns the "db" tag names of T, descending into embedded structs.
// Fields tagged "-" or untagged are skipped. Call once at repository construction.
//
//	cols := ExtractDBColumns[device.Device]()
//	// ["id", "version", "created_at", ..., "kode_id", "jenis_barang", ...]
func ExtractDBColumns[T any]() []string {
	var zero T
	meta := typeMetadataOf(reflect.TypeOf(zero))
	return meta.columns()
}

// typeMetadata caches the tagged fields of one struct type.
type typeMetadata struct {
	fields   []taggedField
	embedded []*embeddedField
}

type taggedField struct {
	index int
	tag   string
}

type embeddedField struct {
	index int
	meta  *typeMetadata
}

func (m *typeMetadata) columns() []string {
	var cols []string
	for _, e := range m.embedded {
		cols = append(cols, e.meta.columns()...)
	}
	for _, f := range m.fields {
		cols = append(cols, f.tag)
	}
	return cols
}

var typeCache sync.Map // map[reflect.Type]*typeMetadata

func typeMetadataOf(t reflect.Type) *typeMetadata {
	if t == nil {
		return &typeMetadata{}
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Anonymous {
				meta.embedded = append(meta.embedded, &embeddedField{index: i, meta: typeMetadataOf(field.Type)})
				continue
			}
			tag := field.Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			meta.fields = append(meta.fields, taggedField{index: i, tag: tag})
		}
	}

	actual, _ := typeCache.LoadOrStore(t, meta)
	return actual.(*typeMetadata)
}

// StructToMap converts a struct (or pointer to struct) to column -> value using "db" tags.
// Embedded structs contribute their columns; outer fields win on name clashes.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	res := make(map[string]any)
	fill(res, rv, typeMetadataOf(rv.Type()))
	return res
}

func fill(res map[string]any, rv reflect.Value, meta *typeMetadata) {
	for _, e := range meta.embedded {
		ev := rv.Field(e.index)
		if ev.Kind() == reflect.Ptr {
			if ev.IsNil() {
				continue
			}
			ev = ev.Elem()
		}
		fill(res, ev, e.meta)
	}
	for _, f := range meta.fields {
		res[f.tag] = rv.Field(f.index).Interface()
	}
}
