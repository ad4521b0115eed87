// Package dialect maps database dialect names to positional placeholder
// templates.
//
// Each dialect is described by a placeholder template. Numbered dialects carry
// the {index} token, which is replaced with the parameter position; the other
// dialects use a fixed token and ignore the position entirely.
//
// # Supported Dialects
//
//	dialect.Postgres = "postgres"  // $1, $2, ...
//	dialect.MSSQL    = "mssql"     // @p1, @p2, ...
//	dialect.MySQL    = "mysql"     // ?
//	dialect.MariaDB  = "mariadb"   // ?
//	dialect.SQLite   = "sqlite"    // ?
//
// Lookups are case-insensitive and accept a few driver-style aliases
// ("postgresql", "pgx", "sqlite3", "sqlserver").
//
// # Usage
//
//	d, err := dialect.Get("postgres")
//	if err != nil {
//	    return err
//	}
//	d.Placeholder(3) // "$3"
//
//	tpl, _ := dialect.PlaceholderTemplate(dialect.MySQL) // "?"
//
// An unknown name fails with a *sqlclause.UnsupportedDialectError.
package dialect
