package codegen

import (
	"fmt"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlclause/clause"
	"github.com/syssam/sqlclause/internal/naming"
	"github.com/syssam/sqlclause/schema"
	"github.com/syssam/sqlclause/schema/field"
)

const (
	pkgSchema = "github.com/syssam/sqlclause/schema"
	pkgField  = "github.com/syssam/sqlclause/schema/field"
	pkgClause = "github.com/syssam/sqlclause/clause"
	pkgRecord = "github.com/syssam/sqlclause/record"
)

// builders maps clause kinds to their field.Builder methods.
var builders = map[field.Kind]string{
	field.KindFields: "Fields",
	field.KindSelect: "Select",
	field.KindValues: "Values",
	field.KindWhere:  "Where",
	field.KindSet:    "Set",
}

// SchemaFile builds the file of one target.
func (g *Generator) SchemaFile(t *Target) (*jen.File, error) {
	s := t.Schema
	name := t.TypeName()
	lower := lowerFirst(name)
	f := g.newFile()

	values, err := clause.Values(s)
	if err != nil {
		return nil, fmt.Errorf("codegen: render values of %s: %w", t.Name, err)
	}

	// Field name constants.
	fields := s.Fields()
	if len(fields) > 0 {
		defs := make([]jen.Code, 0, len(fields))
		for _, fd := range fields {
			defs = append(defs, jen.Id(fieldConst(name, fd.Name)).Op("=").Lit(fd.Name))
		}
		f.Commentf("Field names of the %s schema.", t.Name)
		f.Const().Defs(defs...)
	}

	f.Commentf("%sFields is the column list of the %s schema.", name, t.Name)
	f.Var().Id(name + "Fields").Op("=").Add(stringSlice(clause.Fields(s)))
	f.Commentf("%sSelect is the select list of the %s schema.", name, t.Name)
	f.Var().Id(name + "Select").Op("=").Add(stringSlice(clause.Select(s)))
	f.Commentf("%sValues is the placeholder list of the %s schema, starting at %d.", name, t.Name, s.StartIndex())
	f.Var().Id(name + "Values").Op("=").Add(stringSlice(values.Fragments))

	f.Commentf("%sSchema is the bound %s schema.", name, t.Name)
	f.Var().Id(name+"Schema").Op("=").Qual(pkgSchema, "MustNew").Call(
		jen.Id(lower+"Descriptors").Call(),
		jen.Id(lower+"Options").Call().Op("..."),
	)

	f.Commentf("New%sSchema binds the %s schema again. opts apply after the generated options.", name, t.Name)
	f.Func().Id("New"+name+"Schema").Params(
		jen.Id("opts").Op("...").Qual(pkgSchema, "Option"),
	).Params(jen.Op("*").Qual(pkgSchema, "Schema"), jen.Error()).Block(
		jen.Return(jen.Qual(pkgSchema, "New").Call(
			jen.Id(lower+"Descriptors").Call(),
			jen.Append(jen.Id(lower+"Options").Call(), jen.Id("opts").Op("...")).Op("..."),
		)),
	)

	for _, w := range []struct {
		suffix, fn, result, doc string
	}{
		{"Where", "Where", "Result", "renders the WHERE fragments of rec."},
		{"Set", "Set", "Result", "renders the SET fragments of rec."},
		{"SetWhere", "SetWhere", "SetWhereResult", "renders the SET fragments of rec followed by its WHERE redirects."},
	} {
		f.Commentf("%s%s %s", name, w.suffix, w.doc)
		f.Func().Id(name+w.suffix).Params(
			jen.Id("rec").Qual(pkgRecord, "Record"),
			jen.Id("opts").Op("...").Qual(pkgClause, "Option"),
		).Params(jen.Op("*").Qual(pkgClause, w.result), jen.Error()).Block(
			jen.Return(jen.Qual(pkgClause, w.fn).Call(jen.Id(name+"Schema"), jen.Id("rec"), jen.Id("opts").Op("..."))),
		)
	}

	descs := make([]jen.Code, 0, len(fields))
	for _, fd := range fields {
		descs = append(descs, descriptor(fd))
	}
	f.Func().Id(lower+"Descriptors").Params().Index().Op("*").Qual(pkgField, "Descriptor").Block(
		jen.Return(jen.Index().Op("*").Qual(pkgField, "Descriptor").ValuesFunc(func(grp *jen.Group) {
			for _, d := range descs {
				grp.Line().Add(d)
			}
			grp.Line()
		})),
	)

	f.Func().Id(lower+"Options").Params().Index().Qual(pkgSchema, "Option").Block(
		jen.Return(jen.Index().Qual(pkgSchema, "Option").ValuesFunc(func(grp *jen.Group) {
			for _, o := range options(t.Name, s.Config()) {
				grp.Line().Add(o)
			}
			grp.Line()
		})),
	)
	return f, nil
}

// RegistryFile builds the file holding the Schemas map.
func (g *Generator) RegistryFile(targets []*Target) *jen.File {
	f := g.newFile()
	dict := jen.Dict{}
	for _, t := range targets {
		dict[jen.Lit(t.Name)] = jen.Id(t.TypeName() + "Schema")
	}
	f.Comment("Schemas maps schema names to their bound schemas.")
	f.Var().Id("Schemas").Op("=").Map(jen.String()).Op("*").Qual(pkgSchema, "Schema").Values(dict)
	return f
}

func stringSlice(ss []string) *jen.Statement {
	lits := make([]jen.Code, len(ss))
	for i, s := range ss {
		lits[i] = jen.Lit(s)
	}
	return jen.Index().String().Values(lits...)
}

// descriptor returns the builder expression of fd.
func descriptor(fd *field.Descriptor) *jen.Statement {
	c := jen.Qual(pkgField, "New").Call(jen.Lit(fd.Name))
	if fd.Optional {
		c = c.Dot("Optional").Call()
	}
	if fd.Comment != "" {
		c = c.Dot("Comment").Call(jen.Lit(fd.Comment))
	}
	for _, kind := range fd.Kinds() {
		ds, _ := fd.Group(kind)
		args := make([]jen.Code, len(ds))
		for i, d := range ds {
			args[i] = directive(d)
		}
		c = c.Dot(builders[kind]).Call(args...)
	}
	return c.Dot("Descriptor").Call()
}

func directive(d field.Directive) *jen.Statement {
	q := func(name string, args ...jen.Code) *jen.Statement {
		return jen.Qual(pkgField, name).Call(args...)
	}
	switch d.Op {
	case field.OpIgnore:
		return q("Ignore")
	case field.OpRename:
		return q("Rename", jen.Lit(d.Text))
	case field.OpCondition:
		return q("Condition", jen.Lit(d.Text))
	case field.OpConditionAll:
		return q("ConditionAll", jen.Lit(d.Text))
	case field.OpValue:
		return q("Value", jen.Lit(d.Text))
	case field.OpIndex:
		return q("Index", jen.Lit(d.N))
	case field.OpIgnoreNone:
		return q("IgnoreNone", jen.Lit(d.Flag))
	case field.OpAsWhere:
		if d.Flag {
			return q("AsWhereTemplate", jen.Lit(d.Text))
		}
		return q("AsWhere")
	case field.OpIgnoreSet:
		return q("IgnoreSet")
	}
	panic(fmt.Sprintf("codegen: unknown directive %v", d.Op))
}

// options returns the option expressions that reproduce cfg.
func options(name string, cfg schema.Config) []jen.Code {
	opts := []jen.Code{
		jen.Qual(pkgSchema, "WithName").Call(jen.Lit(name)),
		jen.Qual(pkgSchema, "WithDialect").Call(jen.Lit(cfg.Dialect)),
		jen.Qual(pkgSchema, "WithStartIndex").Call(jen.Lit(cfg.StartIndex)),
		jen.Qual(pkgSchema, "WithIgnoreNone").Call(jen.Lit(cfg.IgnoreNone)),
	}
	for _, kind := range []field.Kind{field.KindWhere, field.KindSet} {
		opts = append(opts, jen.Qual(pkgSchema, "WithIgnoreFieldsWithoutDirective").Call(
			jen.Qual(pkgSchema, naming.Pascal(kind.String())),
			jen.Lit(cfg.IgnoresFieldsWithoutDirective(kind)),
		))
	}
	return append(opts, jen.Qual(pkgSchema, "WithIgnoreSetAndWhereConflict").Call(jen.Lit(cfg.IgnoreSetAndWhereConflict)))
}

// lowerFirst lowers the leading word of a Go identifier:
// "Article" => "article", "URLSet" => "urlSet", "ID" => "id".
func lowerFirst(s string) string {
	r := []rune(s)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	switch {
	case n == 0:
	case n == 1 || n == len(r):
		for i := 0; i < n; i++ {
			r[i] = unicode.ToLower(r[i])
		}
	default:
		for i := 0; i < n-1; i++ {
			r[i] = unicode.ToLower(r[i])
		}
	}
	return string(r)
}
