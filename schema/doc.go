// Package schema binds field descriptors to a configuration and resolves,
// once, how every field renders in every clause kind.
//
// Field descriptors are built with the [field] package:
//
//	s, err := schema.New([]*field.Descriptor{
//	    field.New("id").Set(field.AsWhere()).Descriptor(),
//	    field.New("title").Optional().Set().Descriptor(),
//	    field.New("updated_at").Set(field.Value("now()")).Descriptor(),
//	}, schema.WithDialect("postgres"))
//
// Resolution follows a fixed priority per clause kind:
//
//   - Fields, Select: ignore, rename, field name.
//   - Values: ignore, index, value, next placeholder.
//   - Where: ignore, ignore_none, condition_all, rename/condition/value, index.
//   - Set: ignore, ignore_none, where redirect or ignore_set,
//     rename/condition/value, index.
//
// The result is a list of [Instruction] values per kind. Presence of
// optional values is not known at binding time; it is checked by the clause
// generators when a record is rendered.
package schema
