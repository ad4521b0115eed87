package dialect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/dialect"
)

func TestPlaceholderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{dialect.Postgres, "${index}"},
		{dialect.MSSQL, "@p{index}"},
		{dialect.MySQL, "?"},
		{dialect.MariaDB, "?"},
		{dialect.SQLite, "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := dialect.PlaceholderTemplate(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.template, tpl)
		})
	}
}

func TestPlaceholder(t *testing.T) {
	pg, err := dialect.Get(dialect.Postgres)
	require.NoError(t, err)
	assert.True(t, pg.Numbered())
	assert.Equal(t, "$1", pg.Placeholder(1))
	assert.Equal(t, "$12", pg.Placeholder(12))

	ms, err := dialect.Get(dialect.MSSQL)
	require.NoError(t, err)
	assert.Equal(t, "@p4", ms.Placeholder(4))

	my, err := dialect.Get(dialect.MySQL)
	require.NoError(t, err)
	assert.False(t, my.Numbered())
	assert.Equal(t, "?", my.Placeholder(1))
	assert.Equal(t, "?", my.Placeholder(99))
}

func TestGetAliases(t *testing.T) {
	for alias, want := range map[string]string{
		"POSTGRES":   dialect.Postgres,
		" Postgres ": dialect.Postgres,
		"postgresql": dialect.Postgres,
		"pgx":        dialect.Postgres,
		"sqlite3":    dialect.SQLite,
		"SQLServer":  dialect.MSSQL,
		"MariaDB":    dialect.MariaDB,
	} {
		d, err := dialect.Get(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, d.Name, alias)
	}
}

func TestGetUnsupported(t *testing.T) {
	_, err := dialect.Get("oracle")
	require.Error(t, err)
	assert.True(t, sqlclause.IsUnsupportedDialect(err))
	assert.True(t, errors.Is(err, sqlclause.ErrConfig))
	assert.Contains(t, err.Error(), `"oracle"`)

	var ude *sqlclause.UnsupportedDialectError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, dialect.Names(), ude.Supported)

	_, err = dialect.PlaceholderTemplate("")
	assert.True(t, sqlclause.IsUnsupportedDialect(err))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"mariadb", "mssql", "mysql", "postgres", "sqlite"}, dialect.Names())
	all := dialect.All()
	require.Len(t, all, 5)
	assert.Equal(t, dialect.MariaDB, all[0].String())
}
