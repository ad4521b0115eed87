package field

import (
	"fmt"
	"strconv"
)

// Op identifies the concern a directive addresses.
type Op uint8

// Directive operations.
const (
	OpIgnore Op = iota + 1
	OpRename
	OpCondition
	OpConditionAll
	OpValue
	OpIndex
	OpIgnoreNone
	OpAsWhere
	OpIgnoreSet
)

var opNames = map[Op]string{
	OpIgnore:       "ignore",
	OpRename:       "rename",
	OpCondition:    "condition",
	OpConditionAll: "condition_all",
	OpValue:        "value",
	OpIndex:        "index",
	OpIgnoreNone:   "ignore_none",
	OpAsWhere:      "where",
	OpIgnoreSet:    "ignore_set",
}

// String returns the directive name as written in struct tags and YAML.
func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Directive is one per-field, per-clause instruction. Which payload field is
// meaningful depends on Op.
type Directive struct {
	Op   Op
	Text string // rename, condition, condition_all, value, where template
	N    int    // index
	Flag bool   // ignore_none value; for where, whether Text holds a template
}

// Ignore omits the field from the clause.
func Ignore() Directive { return Directive{Op: OpIgnore} }

// Rename replaces the field name in the rendered fragment.
func Rename(name string) Directive { return Directive{Op: OpRename, Text: name} }

// Condition sets the comparison operator substituted for {condition}.
func Condition(op string) Directive { return Directive{Op: OpCondition, Text: op} }

// ConditionAll replaces the whole fragment template.
func ConditionAll(template string) Directive {
	return Directive{Op: OpConditionAll, Text: template}
}

// Value substitutes a literal for the placeholder. The literal is inserted
// verbatim and consumes no parameter position.
func Value(literal string) Directive { return Directive{Op: OpValue, Text: literal} }

// Index fixes the placeholder position of the field. The running counter is
// not advanced.
func Index(n int) Directive { return Directive{Op: OpIndex, N: n} }

// IgnoreNone overrides the schema-level ignore_none setting for the field.
func IgnoreNone(ignore bool) Directive { return Directive{Op: OpIgnoreNone, Flag: ignore} }

// AsWhere moves the field from SET to WHERE using the default where template.
func AsWhere() Directive { return Directive{Op: OpAsWhere} }

// AsWhereTemplate adds a WHERE fragment rendered from template. The SET
// fragment is kept unless the schema ignores set/where conflicts.
func AsWhereTemplate(template string) Directive {
	return Directive{Op: OpAsWhere, Text: template, Flag: true}
}

// IgnoreSet drops the SET fragment of the field while keeping any WHERE
// redirect.
func IgnoreSet() Directive { return Directive{Op: OpIgnoreSet} }

// Payload returns the directive argument for diagnostics, or nil for flags.
func (d Directive) Payload() any {
	switch d.Op {
	case OpRename, OpCondition, OpConditionAll, OpValue:
		return d.Text
	case OpIndex:
		return d.N
	case OpIgnoreNone:
		return d.Flag
	case OpAsWhere:
		if d.Flag {
			return d.Text
		}
	}
	return nil
}

// String returns the directive in tag syntax, e.g. rename="id".
func (d Directive) String() string {
	switch p := d.Payload().(type) {
	case string:
		return d.Op.String() + "=" + strconv.Quote(p)
	case int:
		return d.Op.String() + "=" + strconv.Itoa(p)
	case bool:
		return d.Op.String() + "=" + strconv.FormatBool(p)
	}
	return d.Op.String()
}
