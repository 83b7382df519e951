// Package hydrate shapes raw result rows into application-facing values
// using a statement's projection aliases, the row-hydration contract
// named as a first-class collaborator in spec.md §1/§4.7. The actual
// scan-from-*sql.Rows machinery belongs to the driver layer this module
// does not own; this package only reshapes already-materialized
// map[string]any rows, the same tag-driven row-to-struct convention
// jmoiron/sqlx uses (a dependency of the skeema/tengo example this
// module's test stack is otherwise grounded on), reimplemented locally
// with reflect since no *sql.Rows ever reaches this core.
package hydrate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aognio/sqlstratum"
)

// AsMap requests dict-style hydration: rows pass through unchanged.
// Passing nil as the target has the same effect.
var AsMap = struct{ asMap byte }{}

// TypeOf returns the reflect.Type of T, for use as a struct hydration
// target with Rows.
func TypeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// ProjectionKeys resolves the ordered output names for a projection list:
// an AliasExpr's alias, else a bare Column's name, else an error. A bare
// FunctionExpr projection is rejected since aggregates require AS(alias)
// for hydration; duplicate keys across projections are rejected too
// (spec.md §4.7).
func ProjectionKeys(projections []sqlstratum.Expression) ([]string, error) {
	keys := make([]string, 0, len(projections))
	seen := make(map[string]bool, len(projections))
	for _, p := range projections {
		key, err := projectionKey(p)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, sqlstratum.NewHydrationError(fmt.Sprintf("Duplicate projection key '%s'. Use AS() to disambiguate.", key))
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys, nil
}

func projectionKey(expr sqlstratum.Expression) (string, error) {
	switch e := expr.(type) {
	case sqlstratum.AliasExpr:
		return e.Alias, nil
	case sqlstratum.Column:
		return e.Name(), nil
	case sqlstratum.FunctionExpr:
		return "", sqlstratum.NewHydrationError("Aggregate expressions require AS('alias') for hydration")
	default:
		return "", sqlstratum.NewHydrationError(fmt.Sprintf("cannot resolve a projection key for %T; wrap it in AS('alias')", expr))
	}
}

// Rows shapes raw rows into target's requested form:
//   - nil or AsMap: rows pass through unchanged.
//   - a reflect.Type (from TypeOf[T]()): one T per row, populated by
//     matching row keys against exported fields via a `db:"..."` tag or,
//     failing that, a case-insensitive field-name match.
//   - a func(map[string]any) (any, error): invoked once per row.
func Rows(rows []map[string]interface{}, projections []sqlstratum.Expression, target interface{}) ([]interface{}, error) {
	if _, err := ProjectionKeys(projections); err != nil {
		return nil, err
	}

	switch t := target.(type) {
	case nil:
		return passthrough(rows), nil
	case reflect.Type:
		return hydrateStructs(rows, t)
	case func(map[string]interface{}) (interface{}, error):
		out := make([]interface{}, len(rows))
		for i, row := range rows {
			v, err := t(row)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		if target == AsMap {
			return passthrough(rows), nil
		}
		return nil, sqlstratum.NewHydrationError(fmt.Sprintf("unsupported hydration target %T", target))
	}
}

func passthrough(rows []map[string]interface{}) []interface{} {
	out := make([]interface{}, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out
}

func hydrateStructs(rows []map[string]interface{}, t reflect.Type) ([]interface{}, error) {
	if t.Kind() != reflect.Struct {
		return nil, sqlstratum.NewHydrationError(fmt.Sprintf("hydration target %s is not a struct", t))
	}
	fieldByKey := indexFields(t)

	out := make([]interface{}, len(rows))
	for i, row := range rows {
		instance := reflect.New(t).Elem()
		for key, value := range row {
			fieldIdx, ok := fieldByKey[strings.ToLower(key)]
			if !ok {
				continue
			}
			field := instance.FieldByIndex(fieldIdx)
			if !field.CanSet() {
				continue
			}
			setField(field, value)
		}
		out[i] = instance.Interface()
	}
	return out, nil
}

// indexFields maps lower-cased row keys (db tag or field name) to the
// struct field index they fill.
func indexFields(t reflect.Type) map[string][]int {
	index := make(map[string][]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		key := f.Name
		if tag, ok := f.Tag.Lookup("db"); ok && tag != "" && tag != "-" {
			key = tag
		}
		index[strings.ToLower(key)] = f.Index
	}
	return index
}

func setField(field reflect.Value, value interface{}) {
	if value == nil {
		return
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
	}
}
