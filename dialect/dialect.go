package dialect

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/syssam/sqlclause"
)

// Dialect names.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	MariaDB  = "mariadb"
	SQLite   = "sqlite"
	MSSQL    = "mssql"
)

// IndexToken is replaced with the parameter position in numbered templates.
const IndexToken = "{index}"

// Dialect describes the placeholder convention of one database engine.
type Dialect struct {
	Name     string
	Template string
}

var dialects = map[string]Dialect{
	Postgres: {Name: Postgres, Template: "$" + IndexToken},
	MySQL:    {Name: MySQL, Template: "?"},
	MariaDB:  {Name: MariaDB, Template: "?"},
	SQLite:   {Name: SQLite, Template: "?"},
	MSSQL:    {Name: MSSQL, Template: "@p" + IndexToken},
}

var aliases = map[string]string{
	"postgresql": Postgres,
	"pgx":        Postgres,
	"sqlite3":    SQLite,
	"sqlserver":  MSSQL,
}

// Numbered reports whether placeholders carry their parameter position.
func (d Dialect) Numbered() bool {
	return strings.Contains(d.Template, IndexToken)
}

// Placeholder renders the placeholder for position n. Unnumbered dialects
// return their fixed token for every n.
func (d Dialect) Placeholder(n int) string {
	if !d.Numbered() {
		return d.Template
	}
	return strings.ReplaceAll(d.Template, IndexToken, strconv.Itoa(n))
}

// String returns the dialect name.
func (d Dialect) String() string {
	return d.Name
}

// Get returns the dialect registered under name or one of its aliases.
func Get(name string) (Dialect, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	d, ok := dialects[key]
	if !ok {
		return Dialect{}, sqlclause.NewUnsupportedDialectError(name, Names())
	}
	return d, nil
}

// PlaceholderTemplate returns the placeholder template of the named dialect.
func PlaceholderTemplate(name string) (string, error) {
	d, err := Get(name)
	if err != nil {
		return "", err
	}
	return d.Template, nil
}

// Names returns the canonical dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every supported dialect ordered by name.
func All() []Dialect {
	names := Names()
	all := make([]Dialect, len(names))
	for i, name := range names {
		all[i] = dialects[name]
	}
	return all
}
