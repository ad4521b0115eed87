// Package sqlclause turns a declarative record schema into SQL clause
// fragments: column lists, placeholder lists, SET assignments and WHERE
// predicates, numbered for the placeholder syntax of a target dialect.
//
// A schema is declared once per record type and bound with schema.New, which
// resolves every per-field directive up front. The clause package then renders
// fragments for the schema, consulting a record for optional-value presence
// where a clause depends on instance data:
//
//	s, err := schema.New([]*field.Descriptor{
//	    field.New("id").Set(field.AsWhere()).Descriptor(),
//	    field.New("title").Optional().Set().Descriptor(),
//	    field.New("updated_at").Set(field.Value("now()")).Descriptor(),
//	}, schema.WithDialect(dialect.Postgres))
//	if err != nil {
//	    return err
//	}
//	res, err := clause.SetWhere(s, record.Map(map[string]any{"id": 7, "title": "x"}))
//	// res.Set   = ["title = $1", "updated_at = now()"]
//	// res.Where = ["id = $2"]
//
// The engine never joins fragments into a statement and never executes SQL.
// Literal text supplied through Value, ConditionAll and Rename directives is
// inserted verbatim.
//
// This package holds the error taxonomy shared by all sub-packages.
package sqlclause
