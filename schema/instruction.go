package schema

import (
	"github.com/syssam/sqlclause/dialect"
	"github.com/syssam/sqlclause/internal/template"
)

// Default fragment templates.
const (
	DefaultWhereTemplate = "{name} {condition} {index}"
	DefaultSetTemplate   = "{name} = {index}"
	DefaultCondition     = "="

	namesTemplate  = "{name}"
	valuesTemplate = "{index}"
)

// Instruction is the effective rendering instruction of one field for one
// clause, resolved from its directives at binding time.
type Instruction struct {
	Field      string // Descriptor name.
	Kind       Kind   // Clause the instruction renders into.
	Template   string // Effective template before substitution.
	Name       string // Value substituted for {name}.
	Condition  string // Value substituted for {condition}.
	Literal    string // Value substituted for {index} when HasLiteral.
	HasLiteral bool
	FixedIndex int  // Placeholder position fixed by an index directive; 0 if unset.
	Presence   bool // Skip when the record value of the field is absent.

	fragment *template.Fragment
	// byTemplate makes consumption depend on the template holding an
	// {index} slot. Set for VALUES and for WHERE fragments redirected from SET.
	byTemplate bool
}

func (in *Instruction) compile() {
	in.fragment = template.Compile(in.Template, in.Name, in.Condition)
}

// Consumes reports whether rendering takes the next position of the running
// counter. Fields with a literal or a fixed index never consume. WHERE and SET
// fragments consume otherwise, even when a condition_all template has no
// {index} slot; VALUES and redirected WHERE fragments consume only when their
// template has one.
func (in *Instruction) Consumes() bool {
	if in.HasLiteral || in.FixedIndex > 0 {
		return false
	}
	if in.byTemplate {
		return in.fragment.HasIndex()
	}
	return true
}

// Render produces the fragment text. n is the running counter position; it
// is used only when the instruction consumes.
func (in *Instruction) Render(d dialect.Dialect, n int) string {
	switch {
	case in.HasLiteral:
		return in.fragment.Render(in.Literal)
	case in.FixedIndex > 0:
		return in.fragment.Render(d.Placeholder(in.FixedIndex))
	default:
		return in.fragment.Render(d.Placeholder(n))
	}
}
