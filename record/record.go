// Package record answers presence queries about the values of one record
// instance. Clause generators consult a Record only for optional fields that
// are subject to ignore_none.
package record

import (
	"reflect"

	"github.com/syssam/sqlclause"
)

// Record reports whether the value of a field is present.
type Record interface {
	Present(field string) (bool, error)
}

// Func adapts an ordinary function to a Record.
type Func func(field string) (bool, error)

// Present calls f(field).
func (f Func) Present(field string) (bool, error) {
	return f(field)
}

// Presence is implemented by values that know whether they hold a value.
type Presence interface {
	IsPresent() bool
}

// Map is a Record over a map of field values. A missing key or a nil value
// is absent.
type Map map[string]any

// Present implements Record.
func (m Map) Present(field string) (bool, error) {
	v, ok := m[field]
	if !ok {
		return false, nil
	}
	return IsPresent(v), nil
}

// Fixed is a Record with a fixed answer per field. Fields that are not
// listed produce a RecordError.
type Fixed map[string]bool

// Present implements Record.
func (f Fixed) Present(field string) (bool, error) {
	present, ok := f[field]
	if !ok {
		return false, sqlclause.NewRecordError(field, nil)
	}
	return present, nil
}

var presenceType = reflect.TypeFor[Presence]()

// IsPresent reports whether v holds a value:
//
//   - nil, and nil pointers, interfaces, maps, slices, funcs and channels
//     are absent;
//   - values implementing Presence answer themselves;
//   - structs with a bool field named Valid (sql.NullString, uuid.NullUUID)
//     report that field;
//   - non-nil pointers report the value they point to;
//   - everything else is present.
func IsPresent(v any) bool {
	if v == nil {
		return false
	}
	return isPresent(reflect.ValueOf(v))
}

func isPresent(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return false
		}
	}
	if rv.Type().Implements(presenceType) {
		return rv.Interface().(Presence).IsPresent()
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(presenceType) {
		return rv.Addr().Interface().(Presence).IsPresent()
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return isPresent(rv.Elem())
	case reflect.Struct:
		if valid, ok := ValidField(rv.Type()); ok {
			return rv.FieldByIndex(valid.Index).Bool()
		}
	}
	return true
}

// ValidField returns the exported bool field named Valid of a struct type,
// the convention of the database/sql Null types.
func ValidField(t reflect.Type) (reflect.StructField, bool) {
	if t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	f, ok := t.FieldByName("Valid")
	if !ok || !f.IsExported() || f.Type.Kind() != reflect.Bool {
		return reflect.StructField{}, false
	}
	return f, true
}

// Optional reports whether values of type t can be absent.
func Optional(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	}
	if t.Implements(presenceType) || reflect.PointerTo(t).Implements(presenceType) {
		return true
	}
	_, ok := ValidField(t)
	return ok
}
