// Package commands implements the sqlclause subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/syssam/sqlclause/internal/config"
	"github.com/syssam/sqlclause/load"
	"github.com/syssam/sqlclause/schema"
)

type configKey struct{}

type loggerKey struct{}

// NewContext returns ctx carrying the command configuration and logger.
func NewContext(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Config returns the configuration stored in ctx, or the defaults.
func Config(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Index:      config.DefaultIndex,
		IgnoreNone: true,
		IgnoreFieldsWithoutDirective: map[string]bool{
			"where": true,
			"set":   true,
		},
		Format:  config.DefaultFormat,
		Out:     config.DefaultOut,
		Package: config.DefaultPackage,
	}
}

// Logger returns the logger stored in ctx, or a discarding logger.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// bound is a loaded schema document bound with the command configuration.
type bound struct {
	name   string
	schema *schema.Schema
}

// schemaPaths returns args, or the configured schema patterns expanded.
func schemaPaths(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var paths []string
	for _, pattern := range cfg.Schemas {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("schema pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema documents: pass paths or set schemas in the config file")
	}
	return paths, nil
}

// bindAll loads the schema documents and binds them. Document settings
// override the command configuration.
func bindAll(ctx context.Context, cfg *config.Config, args []string) ([]bound, error) {
	logger := Logger(ctx)
	paths, err := schemaPaths(cfg, args)
	if err != nil {
		return nil, err
	}
	docs, err := load.Files(ctx, paths...)
	if err != nil {
		return nil, err
	}
	out := make([]bound, 0, len(docs))
	for i, doc := range docs {
		opts := append(cfg.Options(), schema.WithName(doc.Name))
		s, err := schema.New(doc.Fields, append(opts, doc.Options...)...)
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", paths[i], err)
		}
		logger.Debug("bound schema", "path", paths[i], "name", doc.Name,
			"dialect", s.Dialect().Name, "fields", len(doc.Fields))
		out = append(out, bound{name: doc.Name, schema: s})
	}
	return out, nil
}
