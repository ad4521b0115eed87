// Package load builds field descriptors from annotated Go structs and from
// YAML schema documents.
package load

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/internal/naming"
	"github.com/syssam/sqlclause/record"
	"github.com/syssam/sqlclause/schema"
	"github.com/syssam/sqlclause/schema/field"
)

// NameTag is the struct tag holding the column name and field options.
const NameTag = "sql"

// Convention derives column names from Go struct field names.
type Convention interface {
	// Name identifies the convention.
	Name() string
	// ColumnName returns the column name of a Go field name.
	ColumnName(fieldName string) string
}

type convention struct {
	name string
	fn   func(string) string
}

func (c convention) Name() string { return c.name }
func (c convention) ColumnName(name string) string { return c.fn(name) }

var (
	// Snake is the default convention: FieldName => field_name.
	Snake Convention = convention{name: "snake", fn: naming.Snake}
	// Verbatim uses the Go field name unchanged.
	Verbatim Convention = convention{name: "verbatim", fn: func(s string) string { return s }}
)

// Schema is a loaded field list with the options it was declared with.
type Schema struct {
	// Name of the struct type or schema document.
	Name string
	// Fields in declaration order.
	Fields []*field.Descriptor
	// Columns maps descriptor names to Go field names. Empty for YAML.
	Columns map[string]string
	// Options holds the configuration declared by the source.
	Options []schema.Option
}

// Bind binds the loaded fields. opts are applied after the loaded options.
func (s *Schema) Bind(opts ...schema.Option) (*schema.Schema, error) {
	all := make([]schema.Option, 0, len(s.Options)+len(opts)+1)
	if s.Name != "" {
		all = append(all, schema.WithName(s.Name))
	}
	all = append(all, s.Options...)
	return schema.New(s.Fields, append(all, opts...)...)
}

// Record returns a record over the struct v that resolves descriptor names
// through the loaded column mapping.
func (s *Schema) Record(v any) (record.Record, error) {
	r, err := record.OfColumns(v, s.Columns)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Option configures struct loading.
type Option func(*loader)

// WithConvention sets the naming convention. Defaults to Snake.
func WithConvention(c Convention) Option {
	return func(l *loader) {
		l.convention = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

type loader struct {
	convention Convention
	logger     *slog.Logger
}

// clauseTags maps struct tag keys to clause kinds.
var clauseTags = []struct {
	key  string
	kind field.Kind
}{
	{"fields", field.KindFields},
	{"select", field.KindSelect},
	{"values", field.KindValues},
	{"where", field.KindWhere},
	{"set", field.KindSet},
}

// Struct reads the field descriptors of the struct type of v. v may be a
// struct, a pointer to one, or a reflect.Type.
//
//	type Update struct {
//	    ID    int64     `sql:"id" set:"where"`
//	    Title *string   `set:""`
//	    Seen  time.Time `set:"value=now()"`
//	}
//
// The sql tag holds the column name followed by options; the only option is
// "optional", which marks a field whose type cannot express absence. The
// fields, select, values, where and set tags hold the directives of their
// clause. A present but empty clause tag declares the clause without
// directives.
func Struct(v any, opts ...Option) (*Schema, error) {
	l := &loader{convention: Snake}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, sqlclause.NewConfigError("struct", fmt.Sprintf("%T", v), "expected a struct type")
	}
	s := &Schema{Name: t.Name(), Columns: make(map[string]string)}
	var errs []error
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous {
			continue
		}
		if !f.IsExported() {
			l.logger.Debug("skipping unexported field", "type", t.Name(), "field", f.Name)
			continue
		}
		fd, err := l.field(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if fd == nil {
			l.logger.Debug("skipping field", "type", t.Name(), "field", f.Name, "reason", "sql tag is \"-\"")
			continue
		}
		s.Columns[fd.Name] = f.Name
		s.Fields = append(s.Fields, fd)
		l.logger.Debug("loaded field", "type", t.Name(), "field", f.Name, "name", fd.Name,
			"optional", fd.Optional, "kinds", fd.Kinds())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

func (l *loader) field(f reflect.StructField) (*field.Descriptor, error) {
	tag := f.Tag.Get(NameTag)
	if tag == "-" {
		return nil, nil
	}
	column, options, _ := strings.Cut(tag, ",")
	column = strings.TrimSpace(column)
	if column == "" {
		column = l.convention.ColumnName(f.Name)
	}
	b := field.New(column)
	if record.Optional(f.Type) {
		b.Optional()
	}
	for _, opt := range strings.Split(options, ",") {
		switch opt = strings.TrimSpace(opt); opt {
		case "":
		case "optional":
			b.Optional()
		default:
			return nil, sqlclause.NewFieldConfigError(column, NameTag, opt, "unknown field option")
		}
	}
	for _, ct := range clauseTags {
		value, ok := f.Tag.Lookup(ct.key)
		if !ok {
			continue
		}
		ds, err := ParseTag(column, ct.kind, value)
		if err != nil {
			return nil, err
		}
		b.Directives(ct.kind, ds...)
	}
	return b.Descriptor(), nil
}
