package schema

import (
	"errors"
	"slices"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/dialect"
	"github.com/syssam/sqlclause/schema/field"
)

// Kind is a clause kind.
type Kind = field.Kind

// Clause kinds.
const (
	Fields = field.KindFields
	Select = field.KindSelect
	Values = field.KindValues
	Where  = field.KindWhere
	Set    = field.KindSet
)

// Schema is a bound schema: an ordered field list together with its
// configuration and the instructions resolved for every clause kind.
// A Schema is immutable and safe for concurrent use.
type Schema struct {
	config    Config
	dialect   dialect.Dialect
	fields    []*field.Descriptor
	byName    map[string]int
	plans     map[Kind][]*Instruction
	redirects []*Instruction
}

// New binds the field list with the given options. Directives are validated
// and resolved once; every failure found is reported, joined into one error,
// and no Schema is returned.
func New(fields []*field.Descriptor, opts ...Option) (*Schema, error) {
	cfg := DefaultConfig()
	var errs []error
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			errs = append(errs, err)
		}
	}
	s := &Schema{
		config: cfg.clone(),
		byName: make(map[string]int, len(fields)),
		plans:  make(map[Kind][]*Instruction, len(field.Kinds)),
	}
	d, err := s.config.validate()
	if err != nil {
		errs = append(errs, err)
	}
	s.dialect = d
	for i, fd := range fields {
		if fd == nil {
			errs = append(errs, sqlclause.NewConfigError("fields", i, "nil field descriptor"))
			continue
		}
		if fd.Err != nil {
			errs = append(errs, sqlclause.NewFieldConfigError(fd.Name, "field", nil, fd.Err.Error()))
			continue
		}
		if _, ok := s.byName[fd.Name]; ok {
			errs = append(errs, sqlclause.NewFieldConfigError(fd.Name, "name", nil, "duplicate field name"))
			continue
		}
		fd = fd.Clone()
		s.byName[fd.Name] = len(s.fields)
		s.fields = append(s.fields, fd)
		if err := s.resolveField(fd); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(fields []*field.Descriptor, opts ...Option) *Schema {
	s, err := New(fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (c Config) validate() (dialect.Dialect, error) {
	var errs []error
	var d dialect.Dialect
	if c.Dialect == "" {
		errs = append(errs, sqlclause.NewConfigError("database", nil, "database is required"))
	} else {
		var err error
		if d, err = dialect.Get(c.Dialect); err != nil {
			errs = append(errs, err)
		}
	}
	if c.StartIndex < 1 {
		errs = append(errs, sqlclause.NewConfigError("index", c.StartIndex, "start index must be at least 1"))
	}
	return d, errors.Join(errs...)
}

// Config returns a copy of the schema configuration.
func (s *Schema) Config() Config {
	return s.config.clone()
}

// Dialect returns the bound dialect.
func (s *Schema) Dialect() dialect.Dialect {
	return s.dialect
}

// StartIndex returns the configured first placeholder position.
func (s *Schema) StartIndex() int {
	return s.config.StartIndex
}

// Fields returns copies of the field descriptors in declaration order.
func (s *Schema) Fields() []*field.Descriptor {
	fields := make([]*field.Descriptor, len(s.fields))
	for i, fd := range s.fields {
		fields[i] = fd.Clone()
	}
	return fields
}

// Field returns a copy of the named field descriptor.
func (s *Schema) Field(name string) (*field.Descriptor, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Clone(), true
}

// Plan returns the instructions of kind in emission order. Suppressed fields
// have no instruction. The instructions are shared and must not be modified.
func (s *Schema) Plan(kind Kind) []*Instruction {
	return slices.Clone(s.plans[kind])
}

// Redirects returns the WHERE instructions of set fields moved or copied to
// the WHERE clause, in declaration order.
func (s *Schema) Redirects() []*Instruction {
	return slices.Clone(s.redirects)
}
