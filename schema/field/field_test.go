package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlclause/schema/field"
)

func TestNew(t *testing.T) {
	fd := field.New("title").
		Optional().
		Comment("comment").
		Descriptor()
	assert.Equal(t, "title", fd.Name)
	assert.True(t, fd.Optional)
	assert.Equal(t, "comment", fd.Comment)
	assert.NoError(t, fd.Err)
	assert.Empty(t, fd.Directives)

	fd = field.New("").Descriptor()
	assert.Error(t, fd.Err)
}

func TestGroups(t *testing.T) {
	fd := field.New("id").
		Select(field.Rename("u.id")).
		Where(field.Rename("id"), field.Condition(">")).
		Where(field.Index(3)).
		Set().
		Descriptor()

	g, ok := fd.Group(field.KindWhere)
	require.True(t, ok)
	assert.Equal(t, []field.Directive{
		field.Rename("id"),
		field.Condition(">"),
		field.Index(3),
	}, g)

	g, ok = fd.Group(field.KindSet)
	assert.True(t, ok, "empty group is still declared")
	assert.Empty(t, g)

	_, ok = fd.Group(field.KindValues)
	assert.False(t, ok)

	assert.Equal(t, []field.Kind{field.KindSelect, field.KindWhere, field.KindSet}, fd.Kinds())

	fd = field.New("x").Directives(field.Kind(42)).Descriptor()
	assert.Error(t, fd.Err)
}

func TestClone(t *testing.T) {
	fd := field.New("id").Where(field.Rename("a")).Descriptor()
	c := fd.Clone()
	c.Directives[field.KindWhere][0] = field.Rename("b")
	c.Name = "other"
	assert.Equal(t, "a", fd.Directives[field.KindWhere][0].Text)
	assert.Equal(t, "id", fd.Name)
}

func TestDirectiveString(t *testing.T) {
	tests := []struct {
		d    field.Directive
		want string
	}{
		{field.Ignore(), "ignore"},
		{field.Rename("id"), `rename="id"`},
		{field.Condition(">="), `condition=">="`},
		{field.ConditionAll("{name} IS NULL"), `condition_all="{name} IS NULL"`},
		{field.Value("now()"), `value="now()"`},
		{field.Index(4), "index=4"},
		{field.IgnoreNone(false), "ignore_none=false"},
		{field.AsWhere(), "where"},
		{field.AsWhereTemplate("{name} < {index}"), `where="{name} < {index}"`},
		{field.IgnoreSet(), "ignore_set"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestKind(t *testing.T) {
	for _, k := range field.Kinds {
		parsed, err := field.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	k, err := field.ParseKind("value")
	require.NoError(t, err)
	assert.Equal(t, field.KindValues, k)

	_, err = field.ParseKind("update")
	assert.Error(t, err)
	assert.False(t, field.Kind(0).Valid())
	assert.Equal(t, "kind(9)", field.Kind(9).String())

	var u field.Kind
	require.NoError(t, u.UnmarshalText([]byte("set")))
	assert.Equal(t, field.KindSet, u)
	text, err := u.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "set", string(text))
}
