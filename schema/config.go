package schema

import (
	"maps"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/dialect"
)

// Config holds the schema-level settings of one schema binding. It is
// immutable once the schema is bound.
type Config struct {
	// Name labels the schema in diagnostics and generated code.
	Name string

	// Dialect selects the placeholder syntax. Required.
	Dialect string

	// StartIndex is the first placeholder position. Defaults to 1.
	StartIndex int

	// IgnoreNone skips absent optional values in WHERE and SET. Defaults to true.
	IgnoreNone bool

	// IgnoreFieldsWithoutDirective drops fields that declare no directive
	// group for the kind. Applies to Where and Set; both default to true.
	IgnoreFieldsWithoutDirective map[Kind]bool

	// IgnoreSetAndWhereConflict drops the SET fragment of fields that also
	// render a templated WHERE fragment. Defaults to false.
	IgnoreSetAndWhereConflict bool
}

// DefaultConfig returns the configuration defaults. The dialect is left empty
// and must be set.
func DefaultConfig() Config {
	return Config{
		StartIndex: 1,
		IgnoreNone: true,
		IgnoreFieldsWithoutDirective: map[Kind]bool{
			Where: true,
			Set:   true,
		},
	}
}

// IgnoresFieldsWithoutDirective reports the setting for kind.
func (c Config) IgnoresFieldsWithoutDirective(kind Kind) bool {
	return c.IgnoreFieldsWithoutDirective[kind]
}

func (c Config) clone() Config {
	c.IgnoreFieldsWithoutDirective = maps.Clone(c.IgnoreFieldsWithoutDirective)
	return c
}

// Option configures a schema binding.
type Option func(*Config) error

// WithName sets the schema name used in diagnostics.
func WithName(name string) Option {
	return func(c *Config) error {
		c.Name = name
		return nil
	}
}

// WithDialect sets the target dialect.
// Supported dialects: "postgres", "mysql", "mariadb", "sqlite", "mssql".
func WithDialect(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return sqlclause.NewConfigError("database", nil, "database cannot be empty")
		}
		d, err := dialect.Get(name)
		if err != nil {
			return err
		}
		c.Dialect = d.Name
		return nil
	}
}

// WithStartIndex sets the first placeholder position.
func WithStartIndex(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return sqlclause.NewConfigError("index", n, "start index must be at least 1")
		}
		c.StartIndex = n
		return nil
	}
}

// WithIgnoreNone sets whether absent optional values are skipped.
func WithIgnoreNone(ignore bool) Option {
	return func(c *Config) error {
		c.IgnoreNone = ignore
		return nil
	}
}

// WithIgnoreFieldsWithoutDirective sets whether fields without a directive
// group for kind are dropped. Only Where and Set accept the setting.
func WithIgnoreFieldsWithoutDirective(kind Kind, ignore bool) Option {
	return func(c *Config) error {
		if kind != Where && kind != Set {
			return sqlclause.NewConfigError("ignore_fields_without_directive", kind.String(), "only where and set accept this setting")
		}
		if c.IgnoreFieldsWithoutDirective == nil {
			c.IgnoreFieldsWithoutDirective = make(map[Kind]bool)
		}
		c.IgnoreFieldsWithoutDirective[kind] = ignore
		return nil
	}
}

// WithIgnoreSetAndWhereConflict sets whether a field rendered into WHERE by a
// where template is dropped from SET.
func WithIgnoreSetAndWhereConflict(ignore bool) Option {
	return func(c *Config) error {
		c.IgnoreSetAndWhereConflict = ignore
		return nil
	}
}

// WithConfig replaces the whole configuration. Later options still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) error {
		*c = cfg.clone()
		return nil
	}
}
