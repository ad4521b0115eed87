// Package field provides fluent builders for declaring record fields and the
// per-clause directives that shape how each field is rendered.
//
// A field is declared by name and given zero or more directive groups, one
// per clause kind:
//
//	field.New("user_name").
//	    Select(field.Rename("u.name AS user_name")).
//	    Where(field.Condition("LIKE")).
//	    Set(field.IgnoreNone(false))
//
// Calling a clause method with no arguments still declares an (empty) group
// for that clause. This matters for schemas that ignore fields without a
// directive: such a field is included with the default template.
//
//	field.New("title").Optional().Set()
//
// # Directives
//
//	field.Ignore()                   // omit the field from the clause
//	field.Rename("id")               // replace {name}
//	field.Condition(">=")            // replace {condition} (default "=")
//	field.ConditionAll("{name} = ANY({index})") // replace the whole template
//	field.Value("now()")             // literal instead of a placeholder
//	field.Index(4)                   // fixed placeholder position
//	field.IgnoreNone(false)          // keep absent optional values
//	field.AsWhere()                  // SET only: move the field to WHERE
//	field.AsWhereTemplate("{name} < {index}") // SET only: extra WHERE fragment
//	field.IgnoreSet()                // SET only: drop the SET fragment
//
// Not every directive applies to every clause; binding a schema rejects
// misplaced directives.
//
// # Optional Fields
//
// Optional marks a field whose value can be absent (a nil pointer, an invalid
// sql.Null* value). WHERE and SET consult the record for such fields and skip
// them when the value is absent and ignore_none is in effect.
package field
