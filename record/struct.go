package record

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/internal/naming"
)

// Struct is a Record over the fields of a struct value.
type Struct struct {
	value  reflect.Value
	fields map[string][]int
}

// structFields caches the field lookup table of each struct type.
var structFields sync.Map // map[reflect.Type]map[string][]int

// Of returns a Record over the struct v or the struct v points to. A field
// is found by its sql tag name, its snake_case name, or its Go name.
func Of(v any) (*Struct, error) {
	rv, err := structValue(v)
	if err != nil {
		return nil, err
	}
	return &Struct{value: rv, fields: lookup(rv.Type())}, nil
}

// OfColumns is like Of but resolves field names through columns, a mapping
// from descriptor name to Go field name. Names missing from columns fall
// back to the rules of Of.
func OfColumns(v any, columns map[string]string) (*Struct, error) {
	rv, err := structValue(v)
	if err != nil {
		return nil, err
	}
	base := lookup(rv.Type())
	fields := make(map[string][]int, len(base)+len(columns))
	for name, index := range base {
		fields[name] = index
	}
	for name, goName := range columns {
		f, ok := rv.Type().FieldByName(goName)
		if !ok {
			return nil, sqlclause.NewRecordError(name, fmt.Errorf("%s has no field %s", rv.Type(), goName))
		}
		fields[name] = f.Index
	}
	return &Struct{value: rv, fields: fields}, nil
}

// Present implements Record.
func (s *Struct) Present(field string) (bool, error) {
	index, ok := s.fields[field]
	if !ok {
		return false, sqlclause.NewRecordError(field, nil)
	}
	fv, err := s.value.FieldByIndexErr(index)
	if err != nil {
		// nil embedded pointer on the path
		return false, nil
	}
	return isPresent(fv), nil
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, sqlclause.NewRecordError("", fmt.Errorf("nil %s", rv.Type()))
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, sqlclause.NewRecordError("", fmt.Errorf("expected struct, got %T", v))
	}
	return rv, nil
}

func lookup(t reflect.Type) map[string][]int {
	if cached, ok := structFields.Load(t); ok {
		return cached.(map[string][]int)
	}
	fields := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag := strings.Split(f.Tag.Get("sql"), ",")[0]
		if tag == "-" {
			continue
		}
		for _, name := range []string{tag, naming.Snake(f.Name), f.Name} {
			if _, ok := fields[name]; name != "" && !ok {
				fields[name] = f.Index
			}
		}
	}
	cached, _ := structFields.LoadOrStore(t, fields)
	return cached.(map[string][]int)
}
