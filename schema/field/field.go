package field

import (
	"errors"
	"maps"
	"slices"
)

// Descriptor holds the declaration of one record field.
type Descriptor struct {
	Name       string               // Field name, used for {name} unless renamed.
	Optional   bool                 // Value can be absent at runtime.
	Comment    string               // Free-form documentation.
	Directives map[Kind][]Directive // Declared directive groups, in declaration order.
	Err        error                // First builder error, reported at binding.
}

// Group returns the directives declared for kind and whether a group was
// declared at all. An empty declared group returns (nil, true).
func (d *Descriptor) Group(kind Kind) ([]Directive, bool) {
	g, ok := d.Directives[kind]
	return g, ok
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	if d.Directives != nil {
		c.Directives = make(map[Kind][]Directive, len(d.Directives))
		for k, g := range d.Directives {
			c.Directives[k] = slices.Clone(g)
		}
	}
	return &c
}

// Kinds returns the clause kinds the field declares groups for, in the
// documented kind order.
func (d *Descriptor) Kinds() []Kind {
	kinds := slices.Collect(maps.Keys(d.Directives))
	slices.Sort(kinds)
	return kinds
}

// Builder is the fluent builder of a Descriptor.
type Builder struct {
	desc *Descriptor
}

// New returns a builder for a field with the given name.
func New(name string) *Builder {
	b := &Builder{desc: &Descriptor{Name: name}}
	if name == "" {
		b.desc.Err = errors.New("field name cannot be empty")
	}
	return b
}

// Optional marks the field value as possibly absent.
func (b *Builder) Optional() *Builder {
	b.desc.Optional = true
	return b
}

// Comment sets the field comment.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Fields declares the directive group of the column-list clause.
func (b *Builder) Fields(ds ...Directive) *Builder {
	return b.Directives(KindFields, ds...)
}

// Select declares the directive group of the select-list clause.
func (b *Builder) Select(ds ...Directive) *Builder {
	return b.Directives(KindSelect, ds...)
}

// Values declares the directive group of the placeholder-list clause.
func (b *Builder) Values(ds ...Directive) *Builder {
	return b.Directives(KindValues, ds...)
}

// Where declares the directive group of the predicate clause.
func (b *Builder) Where(ds ...Directive) *Builder {
	return b.Directives(KindWhere, ds...)
}

// Set declares the directive group of the assignment clause.
func (b *Builder) Set(ds ...Directive) *Builder {
	return b.Directives(KindSet, ds...)
}

// Directives appends directives to the group of kind, declaring the group if
// needed. Repeated calls accumulate.
func (b *Builder) Directives(kind Kind, ds ...Directive) *Builder {
	if !kind.Valid() {
		if b.desc.Err == nil {
			b.desc.Err = errors.New("unknown clause kind " + kind.String())
		}
		return b
	}
	if b.desc.Directives == nil {
		b.desc.Directives = make(map[Kind][]Directive)
	}
	g := b.desc.Directives[kind]
	if g == nil {
		g = make([]Directive, 0, len(ds))
	}
	b.desc.Directives[kind] = append(g, ds...)
	return b
}

// Descriptor returns the built descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
