package record_test

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/record"
)

type flag struct{ set bool }

func (f flag) IsPresent() bool { return f.set }

type ptrFlag struct{ set bool }

func (f *ptrFlag) IsPresent() bool { return f.set }

func TestIsPresent(t *testing.T) {
	var nilString *string
	var nilSlice []int
	var nilMap map[string]int
	s := "x"
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"nil pointer", nilString, false},
		{"nil slice", nilSlice, false},
		{"nil map", nilMap, false},
		{"pointer", &s, true},
		{"zero int", 0, true},
		{"empty string", "", true},
		{"time", time.Time{}, true},
		{"invalid NullString", sql.NullString{}, false},
		{"valid NullString", sql.NullString{String: "a", Valid: true}, true},
		{"pointer to invalid NullInt64", &sql.NullInt64{}, false},
		{"invalid NullUUID", uuid.NullUUID{}, false},
		{"valid NullUUID", uuid.NullUUID{UUID: uuid.New(), Valid: true}, true},
		{"presence false", flag{}, false},
		{"presence true", flag{set: true}, true},
		{"pointer presence", &ptrFlag{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, record.IsPresent(tt.v))
		})
	}
}

func TestOptional(t *testing.T) {
	assert.True(t, record.Optional(reflect.TypeFor[*int]()))
	assert.True(t, record.Optional(reflect.TypeFor[[]byte]()))
	assert.True(t, record.Optional(reflect.TypeFor[sql.NullTime]()))
	assert.True(t, record.Optional(reflect.TypeFor[uuid.NullUUID]()))
	assert.True(t, record.Optional(reflect.TypeFor[flag]()))
	assert.True(t, record.Optional(reflect.TypeFor[ptrFlag]()))
	assert.False(t, record.Optional(reflect.TypeFor[int]()))
	assert.False(t, record.Optional(reflect.TypeFor[uuid.UUID]()))
	assert.False(t, record.Optional(reflect.TypeFor[time.Time]()))
}

func TestMap(t *testing.T) {
	var nilPtr *int
	m := record.Map{"a": 1, "b": nil, "c": nilPtr}
	for field, want := range map[string]bool{"a": true, "b": false, "c": false, "d": false} {
		got, err := m.Present(field)
		require.NoError(t, err)
		assert.Equal(t, want, got, field)
	}
}

func TestFixedAndFunc(t *testing.T) {
	f := record.Fixed{"a": true}
	ok, err := f.Present("a")
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = f.Present("b")
	assert.True(t, sqlclause.IsRecordError(err))

	boom := errors.New("boom")
	fn := record.Func(func(string) (bool, error) { return false, boom })
	_, err = fn.Present("x")
	assert.ErrorIs(t, err, boom)
}

type Base struct {
	ID int64 `sql:"id"`
}

type Article struct {
	Base
	Title     *string
	StartTime sql.NullTime `sql:"start_time"`
	OwnerID   uuid.NullUUID
	Secret    string `sql:"-"`
	hidden    string
}

func TestOf(t *testing.T) {
	title := "hello"
	a := &Article{Title: &title, OwnerID: uuid.NullUUID{Valid: true}}
	r, err := record.Of(a)
	require.NoError(t, err)

	tests := []struct {
		field string
		want  bool
	}{
		{"id", true},
		{"title", true},
		{"Title", true},
		{"start_time", false},
		{"StartTime", false},
		{"owner_id", true},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := r.Present(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, missing := range []string{"secret", "Secret", "hidden", "nope"} {
		_, err := r.Present(missing)
		assert.True(t, sqlclause.IsRecordError(err), missing)
	}

	// by value
	r, err = record.Of(Article{})
	require.NoError(t, err)
	got, err := r.Present("title")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestOfErrors(t *testing.T) {
	var a *Article
	_, err := record.Of(a)
	assert.True(t, sqlclause.IsRecordError(err))

	_, err = record.Of(42)
	assert.True(t, sqlclause.IsRecordError(err))
}

func TestOfColumns(t *testing.T) {
	r, err := record.OfColumns(&Article{}, map[string]string{"headline": "Title"})
	require.NoError(t, err)
	got, err := r.Present("headline")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = record.OfColumns(&Article{}, map[string]string{"x": "Missing"})
	assert.True(t, sqlclause.IsRecordError(err))
}
