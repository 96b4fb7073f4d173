package reportexport

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// RowsFromStructs converts a slice of structs, struct pointers or string-keyed
// maps into rows.
//
// Struct fields are keyed by their `export` tag, then their `json` tag, then
// the field name. A field tagged `export:"-"` is skipped. A map field tagged
// `export:",inline"` has its entries promoted to top-level keys, which is how
// rows with user-defined attributes are flattened.
func RowsFromStructs(data interface{}) ([]Row, error) {
	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, fmt.Errorf("data must be a slice, got %T", data)
	}

	rows := make([]Row, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		item := val.Index(i)
		for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
			if item.IsNil() {
				break
			}
			item = item.Elem()
		}

		switch item.Kind() {
		case reflect.Struct:
			row := make(Row)
			structToRow(item, row)
			rows = append(rows, row)
		case reflect.Map:
			if item.Type().Key().Kind() != reflect.String {
				return nil, fmt.Errorf("element %d: map keys must be strings", i)
			}
			row := make(Row, item.Len())
			iter := item.MapRange()
			for iter.Next() {
				row[iter.Key().String()] = iter.Value().Interface()
			}
			rows = append(rows, row)
		case reflect.Ptr, reflect.Interface:
			rows = append(rows, Row{})
		default:
			return nil, fmt.Errorf("element %d: unsupported kind %s", i, item.Kind())
		}
	}
	return rows, nil
}

func structToRow(v reflect.Value, row Row) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct && f.Type != timeType {
			structToRow(fv, row)
			continue
		}
		if !f.IsExported() {
			continue
		}
		key, inline, skip := fieldKey(f)
		if skip {
			continue
		}
		if inline && fv.Kind() == reflect.Map && fv.Type().Key().Kind() == reflect.String {
			if fv.IsNil() {
				continue
			}
			iter := fv.MapRange()
			for iter.Next() {
				row[iter.Key().String()] = iter.Value().Interface()
			}
			continue
		}
		row[key] = scalar(fv)
	}
}

func fieldKey(f reflect.StructField) (key string, inline, skip bool) {
	if tag, ok := f.Tag.Lookup("export"); ok {
		if tag == "-" {
			return "", false, true
		}
		name, opts, _ := strings.Cut(tag, ",")
		inline = opts == "inline"
		if name != "" {
			return name, inline, false
		}
		return f.Name, inline, false
	}
	if tag, ok := f.Tag.Lookup("json"); ok {
		if tag == "-" {
			return "", false, true
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name, false, false
		}
	}
	return f.Name, false, false
}

// scalar dereferences pointers so nil pointers become nil row values.
func scalar(v reflect.Value) interface{} {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}
