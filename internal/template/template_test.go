package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/sqlclause/internal/template"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		tpl       string
		fieldName string
		condition string
		index     string
		want      string
	}{
		{"default where", "{name} {condition} {index}", "id", "=", "$1", "id = $1"},
		{"default set", "{name} = {index}", "title", "", "$2", "title = $2"},
		{"no tokens", "deleted_at IS NULL", "deleted_at", "=", "$1", "deleted_at IS NULL"},
		{"index only", "title like {index}", "keyword", "=", "$3", "title like $3"},
		{"cast", "{name} = ANY({index}::int[])", "ids", "=", "$4", "ids = ANY($4::int[])"},
		{"repeated index", "{name} BETWEEN {index} AND {index}", "age", "", "?", "age BETWEEN ? AND ?"},
		{"literal value", "{name} {condition} {index}", "field6", "=", "25", "field6 = 25"},
		{"foreign braces", "{name} = '{other}'", "a", "", "", "a = '{other}'"},
		{"unterminated", "{name} {inde", "a", "", "$1", "a {inde"},
		{"nested braces", "{{name}}", "a", "", "", "{a}"},
		{"empty", "", "a", "=", "$1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, template.Render(tt.tpl, tt.fieldName, tt.condition, tt.index))
		})
	}
}

func TestNonRecursive(t *testing.T) {
	// A renamed field whose new name contains tokens keeps them literally.
	got := template.Render("{name} {condition} {index}", "{index}", "{name}", "$1")
	assert.Equal(t, "{index} {name} $1", got)

	// A literal substituted for {index} is not rescanned either.
	got = template.Render("{name} = {index}", "a", "", "{condition}")
	assert.Equal(t, "a = {condition}", got)

	// A condition cannot assemble a token with the surrounding text.
	got = template.Render("{na{condition}", "x", "me}", "$1")
	assert.Equal(t, "{name}", got)
}

func TestCompile(t *testing.T) {
	f := template.Compile("{name} > {index}", "age", "")
	assert.True(t, f.HasIndex())
	assert.Equal(t, "{name} > {index}", f.Source())
	assert.Equal(t, []template.Segment{
		{Type: template.SegmentText, Text: "age > "},
		{Type: template.SegmentIndex},
	}, f.Segments())
	assert.Equal(t, "age > $7", f.Render("$7"))
	assert.Equal(t, "age > ?", f.Render("?"))

	f = template.Compile("{name} IS NOT NULL", "age", "")
	assert.False(t, f.HasIndex())
	assert.Equal(t, "age IS NOT NULL", f.Render("$1"))

	assert.True(t, template.Uses("{name} {condition}", template.Condition))
	assert.False(t, template.Uses("{name} = {index}", template.Condition))
}
