// Package config loads the settings of the sqlclause command.
//
// Settings are layered, highest precedence first: command-line flags,
// SQLCLAUSE_* environment variables, the config file (sqlclause.yaml) and
// the built-in defaults. Schema documents may still override the binding
// settings for their own fields.
package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/dialect"
	"github.com/syssam/sqlclause/schema"
	"github.com/syssam/sqlclause/schema/field"
)

// Defaults.
const (
	DefaultIndex   = 1
	DefaultFormat  = "table"
	DefaultPackage = "clauses"
	DefaultOut     = "."
)

// Formats lists the accepted output formats of the render command.
var Formats = []string{"table", "json", "csv", "markdown"}

// Config holds the command settings.
type Config struct {
	Database                     string          `koanf:"database"`
	Index                        int             `koanf:"index"`
	IgnoreNone                   bool            `koanf:"ignore_none"`
	IgnoreFieldsWithoutDirective map[string]bool `koanf:"ignore_fields_without_directive"`
	IgnoreSetAndWhereConflict    bool            `koanf:"ignore_set_and_where_conflict"`

	// Schemas lists schema document paths or glob patterns.
	Schemas []string `koanf:"schemas"`
	Format  string   `koanf:"format"`
	Out     string   `koanf:"out"`
	Package string   `koanf:"package"`
	Verbose bool     `koanf:"verbose"`

	// File is the config file the settings were read from, if any.
	File string `koanf:"-"`
}

// Validate checks the settings that do not depend on a schema document.
// An empty database is accepted; documents may declare their own.
func (c *Config) Validate() error {
	if c.Database != "" {
		if _, err := dialect.Get(c.Database); err != nil {
			return err
		}
	}
	if c.Index < 1 {
		return sqlclause.NewConfigError("index", c.Index, "start index must be at least 1")
	}
	for name := range c.IgnoreFieldsWithoutDirective {
		kind, err := field.ParseKind(name)
		if err != nil || (kind != field.KindWhere && kind != field.KindSet) {
			return sqlclause.NewConfigError("ignore_fields_without_directive", name, "only where and set accept this setting")
		}
	}
	if !slices.Contains(Formats, c.Format) {
		return sqlclause.NewConfigError("format", c.Format, fmt.Sprintf("format must be one of %v", Formats))
	}
	return nil
}

// Options converts the binding settings to schema options. They are meant to
// be applied before the options of a schema document.
func (c *Config) Options() []schema.Option {
	var opts []schema.Option
	if c.Database != "" {
		opts = append(opts, schema.WithDialect(c.Database))
	}
	if c.Index > 0 {
		opts = append(opts, schema.WithStartIndex(c.Index))
	}
	opts = append(opts,
		schema.WithIgnoreNone(c.IgnoreNone),
		schema.WithIgnoreSetAndWhereConflict(c.IgnoreSetAndWhereConflict),
	)
	for _, name := range slices.Sorted(maps.Keys(c.IgnoreFieldsWithoutDirective)) {
		kind, err := field.ParseKind(name)
		if err != nil {
			opts = append(opts, func(*schema.Config) error {
				return sqlclause.NewConfigError("ignore_fields_without_directive", name, err.Error())
			})
			continue
		}
		opts = append(opts, schema.WithIgnoreFieldsWithoutDirective(kind, c.IgnoreFieldsWithoutDirective[name]))
	}
	return opts
}
