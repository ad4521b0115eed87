package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlclause/schema"
	"github.com/syssam/sqlclause/schema/field"
)

func names(ins []*schema.Instruction) []string {
	out := make([]string, len(ins))
	for i, in := range ins {
		out[i] = in.Field
	}
	return out
}

func TestResolveSelect(t *testing.T) {
	s := schema.MustNew([]*field.Descriptor{
		field.New("field1").Descriptor(),
		field.New("field2").Select(field.Ignore()).Descriptor(),
		field.New("field3").Select(field.Rename("renamed")).Descriptor(),
		field.New("field4").Select(field.Ignore(), field.Rename("unused")).Descriptor(),
	}, schema.WithDialect("postgres"))

	plan := s.Plan(schema.Select)
	require.Len(t, plan, 2)
	assert.Equal(t, "field1", plan[0].Name)
	assert.Equal(t, "renamed", plan[1].Name)
	assert.False(t, plan[1].Consumes())

	assert.Equal(t, []string{"field1", "field2", "field3", "field4"}, names(s.Plan(schema.Fields)))
}

func TestResolveValues(t *testing.T) {
	s := schema.MustNew([]*field.Descriptor{
		field.New("a").Descriptor(),
		field.New("b").Values(field.Ignore()).Descriptor(),
		field.New("c").Values(field.Index(4)).Descriptor(),
		field.New("d").Values(field.Value("'x'")).Descriptor(),
		field.New("e").Values(field.Index(2), field.Value("now()")).Descriptor(),
		field.New("f").Values(field.Value("{index}::bit(4)")).Descriptor(),
	}, schema.WithDialect("postgres"))

	plan := s.Plan(schema.Values)
	require.Equal(t, []string{"a", "c", "d", "e", "f"}, names(plan))
	assert.True(t, plan[0].Consumes())

	assert.False(t, plan[1].Consumes())
	assert.Equal(t, 4, plan[1].FixedIndex)

	assert.Equal(t, "'x'", plan[2].Template)
	assert.False(t, plan[2].Consumes())
	assert.Equal(t, "'x'", plan[2].Render(s.Dialect(), 3))

	// index wins over value in VALUES
	assert.Equal(t, "{index}", plan[3].Template)
	assert.Equal(t, 2, plan[3].FixedIndex)
	assert.Equal(t, "$2", plan[3].Render(s.Dialect(), 9))

	assert.True(t, plan[4].Consumes())
	assert.Equal(t, "$5::bit(4)", plan[4].Render(s.Dialect(), 5))
}

func TestResolveWhere(t *testing.T) {
	s := schema.MustNew([]*field.Descriptor{
		field.New("field1").Where(field.Rename("id")).Descriptor(),
		field.New("field2").Optional().Where().Descriptor(),
		field.New("field3").Where(field.Ignore()).Descriptor(),
		field.New("field4").Optional().Where(field.IgnoreNone(false)).Descriptor(),
		field.New("field5").Where(field.Condition(">")).Descriptor(),
		field.New("field6").Where(field.Value("25"), field.Index(7)).Descriptor(),
		field.New("field7").Where(field.ConditionAll("{name} IS NULL"), field.Rename("x")).Descriptor(),
		field.New("field8").Descriptor(),
	}, schema.WithDialect("postgres"))

	plan := s.Plan(schema.Where)
	require.Equal(t, []string{"field1", "field2", "field4", "field5", "field6", "field7"}, names(plan))

	d := s.Dialect()
	assert.Equal(t, "id = $1", plan[0].Render(d, 1))
	assert.True(t, plan[1].Presence)
	assert.False(t, plan[2].Presence, "per-field ignore_none overrides")
	assert.Equal(t, "field5 > $3", plan[3].Render(d, 3))

	// value wins over index in WHERE
	assert.Equal(t, "field6 = 25", plan[4].Render(d, 4))
	assert.False(t, plan[4].Consumes())

	// condition_all without {index} still takes a position
	assert.Equal(t, "x IS NULL", plan[5].Render(d, 5))
	assert.True(t, plan[5].Consumes())
}

func TestResolveWhereWithoutDirective(t *testing.T) {
	fields := []*field.Descriptor{
		field.New("a").Where().Descriptor(),
		field.New("b").Optional().Descriptor(),
	}
	s := schema.MustNew(fields, schema.WithDialect("sqlite"),
		schema.WithIgnoreFieldsWithoutDirective(schema.Where, false),
		schema.WithIgnoreNone(false))
	plan := s.Plan(schema.Where)
	require.Equal(t, []string{"a", "b"}, names(plan))
	assert.False(t, plan[1].Presence)
	assert.Equal(t, "b = ?", plan[1].Render(s.Dialect(), 2))
}

func TestResolveSet(t *testing.T) {
	s := schema.MustNew([]*field.Descriptor{
		field.New("id").Set(field.AsWhere()).Descriptor(),
		field.New("title").Optional().Set().Descriptor(),
		field.New("slug").Set(field.AsWhereTemplate("{name} <> {index}")).Descriptor(),
		field.New("draft").Set(field.IgnoreSet(), field.AsWhereTemplate("{name} IS FALSE")).Descriptor(),
		field.New("hidden").Set(field.IgnoreSet()).Descriptor(),
		field.New("updated_at").Set(field.Value("now()")).Descriptor(),
		field.New("secret").Set(field.Ignore(), field.AsWhere()).Descriptor(),
		field.New("untagged").Descriptor(),
	}, schema.WithDialect("postgres"))

	set := s.Plan(schema.Set)
	assert.Equal(t, []string{"title", "slug", "updated_at"}, names(set))
	assert.True(t, set[0].Presence)

	redirects := s.Redirects()
	require.Equal(t, []string{"id", "slug", "draft"}, names(redirects))
	for _, in := range redirects {
		assert.Equal(t, schema.Where, in.Kind)
	}
	d := s.Dialect()
	assert.Equal(t, "id = $3", redirects[0].Render(d, 3))
	assert.Equal(t, "slug <> $4", redirects[1].Render(d, 4))
	assert.Equal(t, "draft IS FALSE", redirects[2].Render(d, 5))
	assert.False(t, redirects[2].Consumes())

	assert.Empty(t, s.Plan(schema.Where), "set redirects are not where directives")
}

func TestResolveSetAndWhereConflict(t *testing.T) {
	fields := []*field.Descriptor{
		field.New("slug").Set(field.AsWhereTemplate("{name} <> {index}")).Descriptor(),
		field.New("title").Set().Descriptor(),
	}
	s := schema.MustNew(fields, schema.WithDialect("postgres"), schema.WithIgnoreSetAndWhereConflict(true))
	assert.Equal(t, []string{"title"}, names(s.Plan(schema.Set)))
	assert.Equal(t, []string{"slug"}, names(s.Redirects()))
}

func TestResolveSetWithoutDirective(t *testing.T) {
	s := schema.MustNew([]*field.Descriptor{
		field.New("a").Descriptor(),
		field.New("b").Set(field.Rename("bee")).Descriptor(),
	}, schema.WithDialect("mssql"), schema.WithIgnoreFieldsWithoutDirective(schema.Set, false))
	plan := s.Plan(schema.Set)
	require.Len(t, plan, 2)
	assert.Equal(t, "a = @p1", plan[0].Render(s.Dialect(), 1))
	assert.Equal(t, "bee = @p2", plan[1].Render(s.Dialect(), 2))
}
