package schema

import (
	"errors"
	"slices"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/internal/template"
	"github.com/syssam/sqlclause/schema/field"
)

// accepted lists the directive operations each clause kind understands.
var accepted = map[Kind][]field.Op{
	Fields: {field.OpIgnore, field.OpRename},
	Select: {field.OpIgnore, field.OpRename},
	Values: {field.OpIgnore, field.OpIndex, field.OpValue},
	Where: {
		field.OpIgnore, field.OpIgnoreNone, field.OpConditionAll,
		field.OpRename, field.OpCondition, field.OpValue, field.OpIndex,
	},
	Set: {
		field.OpIgnore, field.OpIgnoreNone, field.OpAsWhere, field.OpIgnoreSet,
		field.OpRename, field.OpCondition, field.OpValue, field.OpIndex,
	},
}

// rule is one step of a resolution chain. It reports whether the resolution
// is complete; later rules are skipped when it is.
type rule func(*resolution) bool

// chains holds the resolution rules of each kind, highest priority first.
var chains = map[Kind][]rule{
	Fields: {ignoreRule, renameRule},
	Select: {ignoreRule, renameRule},
	Values: {ignoreRule, fixedIndexRule, valueTemplateRule},
	Where: {
		ignoreRule, undeclaredRule, ignoreNoneRule,
		conditionAllRule, composeRule, indexRule,
	},
	Set: {
		ignoreRule, undeclaredRule, ignoreNoneRule,
		redirectRule, ignoreSetRule, composeRule, indexRule,
	},
}

// directives is a validated directive group keyed by operation.
type directives map[field.Op]field.Directive

func (ds directives) get(op field.Op) (field.Directive, bool) {
	d, ok := ds[op]
	return d, ok
}

func (ds directives) has(op field.Op) bool {
	_, ok := ds[op]
	return ok
}

// resolution is the working state of one field resolved for one kind.
type resolution struct {
	config   *Config
	field    *field.Descriptor
	kind     Kind
	group    directives
	declared bool

	in         Instruction
	skip       bool
	redirected bool
	redirect   string
}

func ignoreRule(r *resolution) bool {
	if r.group.has(field.OpIgnore) {
		r.skip = true
		return true
	}
	return false
}

func undeclaredRule(r *resolution) bool {
	if !r.declared && r.config.IgnoresFieldsWithoutDirective(r.kind) {
		r.skip = true
		return true
	}
	return false
}

func ignoreNoneRule(r *resolution) bool {
	ignore := r.config.IgnoreNone
	if d, ok := r.group.get(field.OpIgnoreNone); ok {
		ignore = d.Flag
	}
	r.in.Presence = r.field.Optional && ignore
	return false
}

func renameRule(r *resolution) bool {
	if d, ok := r.group.get(field.OpRename); ok {
		r.in.Name = d.Text
	}
	return true
}

func fixedIndexRule(r *resolution) bool {
	if d, ok := r.group.get(field.OpIndex); ok {
		r.in.FixedIndex = d.N
		return true
	}
	return false
}

// valueTemplateRule makes a VALUES value the whole fragment. An {index}
// inside it still renders, and consumes, the next placeholder.
func valueTemplateRule(r *resolution) bool {
	if d, ok := r.group.get(field.OpValue); ok {
		r.in.Template = d.Text
	}
	return true
}

func conditionAllRule(r *resolution) bool {
	if d, ok := r.group.get(field.OpConditionAll); ok {
		r.in.Template = d.Text
	}
	return false
}

func composeRule(r *resolution) bool {
	if d, ok := r.group.get(field.OpRename); ok {
		r.in.Name = d.Text
	}
	if d, ok := r.group.get(field.OpCondition); ok {
		r.in.Condition = d.Text
	}
	if d, ok := r.group.get(field.OpValue); ok {
		r.in.Literal, r.in.HasLiteral = d.Text, true
	}
	return false
}

func indexRule(r *resolution) bool {
	if d, ok := r.group.get(field.OpIndex); ok {
		r.in.FixedIndex = d.N
	}
	return true
}

// redirectRule handles where and where=<tpl> on set fields. The bare flag
// moves the field to WHERE; a template copies it there and keeps the SET
// fragment unless set/where conflicts are ignored.
func redirectRule(r *resolution) bool {
	d, ok := r.group.get(field.OpAsWhere)
	if !ok {
		return false
	}
	r.redirected = true
	r.redirect = DefaultWhereTemplate
	if d.Flag {
		r.redirect = d.Text
	}
	if !d.Flag || r.config.IgnoreSetAndWhereConflict {
		r.skip = true
	}
	return false
}

func ignoreSetRule(r *resolution) bool {
	if r.group.has(field.OpIgnoreSet) {
		r.skip = true
	}
	return false
}

// resolveField validates every directive group of fd and records the
// instructions of each kind.
func (s *Schema) resolveField(fd *field.Descriptor) error {
	var errs []error
	for _, group := range fd.Kinds() {
		if _, ok := accepted[group]; !ok {
			errs = append(errs, sqlclause.NewFieldConfigError(fd.Name, "kind", group.String(), "unknown clause kind"))
		}
	}
	for _, kind := range field.Kinds {
		ds, declared := fd.Group(kind)
		group, err := validateGroup(fd.Name, kind, ds)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r := &resolution{
			config:   &s.config,
			field:    fd,
			kind:     kind,
			group:    group,
			declared: declared,
			in:       defaultInstruction(fd.Name, kind),
		}
		for _, step := range chains[kind] {
			if step(r) {
				break
			}
		}
		if err := s.add(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func defaultInstruction(name string, kind Kind) Instruction {
	in := Instruction{Field: name, Kind: kind, Name: name}
	switch kind {
	case Values:
		in.Template, in.byTemplate = valuesTemplate, true
	case Where:
		in.Template, in.Condition = DefaultWhereTemplate, DefaultCondition
	case Set:
		in.Template, in.Condition = DefaultSetTemplate, DefaultCondition
	default:
		in.Template = namesTemplate
	}
	return in
}

// add checks and compiles the instructions produced by r.
func (s *Schema) add(r *resolution) error {
	var out []*Instruction
	if !r.skip {
		in := r.in
		out = append(out, &in)
	}
	var redirect *Instruction
	if r.redirected {
		in := r.in
		in.Kind, in.Template, in.byTemplate = Where, r.redirect, true
		redirect = &in
		out = append(out, redirect)
	}
	var errs []error
	for _, in := range out {
		if template.Uses(in.Template, template.Condition) && in.Condition == "" {
			errs = append(errs, sqlclause.NewMissingConditionError(in.Field, in.Kind.String(), in.Template))
			continue
		}
		in.compile()
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if !r.skip {
		s.plans[r.kind] = append(s.plans[r.kind], out[0])
	}
	if redirect != nil {
		s.redirects = append(s.redirects, redirect)
	}
	return nil
}

// validateGroup checks that every directive is accepted by kind and that no
// concern is declared twice with different payloads.
func validateGroup(name string, kind Kind, ds []field.Directive) (directives, error) {
	group := make(directives, len(ds))
	var errs []error
	for _, d := range ds {
		if !slices.Contains(accepted[kind], d.Op) {
			errs = append(errs, sqlclause.NewFieldConfigError(name, d.Op.String(), kind.String(), "directive not accepted by clause"))
			continue
		}
		if d.Op == field.OpIndex && d.N < 1 {
			errs = append(errs, sqlclause.NewFieldConfigError(name, d.Op.String(), d.N, "index must be at least 1"))
			continue
		}
		prev, ok := group[d.Op]
		switch {
		case !ok:
			group[d.Op] = d
		case prev != d:
			errs = append(errs, sqlclause.NewDirectiveConflictError(name, kind.String(), d.Op.String(), prev.Payload(), d.Payload()))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return group, nil
}
