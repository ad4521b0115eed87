// Package codegen generates Go source for bound schemas.
//
// For every schema it writes one file holding the precomputed column,
// select and placeholder lists, the field name constants, the bound schema
// itself and typed wrappers for the record-dependent clauses:
//
//	{out}/
//	├── sqlclause.go        # Schemas registry
//	└── {name}_clause.go    # One file per schema
package codegen

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/sqlclause/internal/naming"
	"github.com/syssam/sqlclause/schema"
)

// Header is written at the top of every generated file.
const Header = "Code generated by sqlclause. DO NOT EDIT."

// Target is one schema to generate.
type Target struct {
	// Name is the schema name; the Go type name is derived from it.
	Name   string
	Schema *schema.Schema
}

// TypeName returns the Go identifier prefix of the target:
// "articles" => "Article", "ArticleUpdate" => "ArticleUpdate".
func (t *Target) TypeName() string {
	return naming.Pascal(naming.Singular(naming.Snake(t.Name)))
}

// FileName returns the generated file name of the target.
func (t *Target) FileName() string {
	return naming.Snake(t.TypeName()) + "_clause.go"
}

// Metrics reports what a generation run wrote.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// Generator writes the generated files of a package.
type Generator struct {
	outDir  string
	pkg     string
	workers int
	logger  *slog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets the number of files written in parallel.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New returns a generator writing package pkg into outDir.
func New(outDir, pkg string, opts ...Option) *Generator {
	g := &Generator{
		outDir:  outDir,
		pkg:     pkg,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Metrics returns the metrics of the last run.
func (g *Generator) Metrics() Metrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.metrics
}

// Generate writes the files of every target and the registry file.
func (g *Generator) Generate(ctx context.Context, targets ...*Target) error {
	if g.pkg == "" {
		return fmt.Errorf("codegen: missing package name")
	}
	if !token.IsIdentifier(g.pkg) {
		return fmt.Errorf("codegen: invalid package name %q", g.pkg)
	}
	if err := checkNames(targets); err != nil {
		return err
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	g.mu.Lock()
	g.metrics = Metrics{}
	g.mu.Unlock()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, t := range targets {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := g.SchemaFile(t)
			if err != nil {
				return err
			}
			return g.writeFile(f, t.FileName())
		})
	}
	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return g.writeFile(g.RegistryFile(targets), "sqlclause.go")
	})
	return eg.Wait()
}

// checkNames rejects targets whose generated identifiers are invalid or
// collide, before anything is written.
func checkNames(targets []*Target) error {
	seen := make(map[string]string, len(targets))
	for _, t := range targets {
		if t.Schema == nil {
			return fmt.Errorf("codegen: schema %q is not bound", t.Name)
		}
		name := t.TypeName()
		if name == "" {
			return fmt.Errorf("codegen: schema without a name")
		}
		if !token.IsIdentifier(name) {
			return fmt.Errorf("codegen: schema %q generates invalid type name %q", t.Name, name)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("codegen: schemas %q and %q generate the same type name %s", prev, t.Name, name)
		}
		seen[name] = t.Name
		consts := make(map[string]string)
		for _, fd := range t.Schema.Fields() {
			id := fieldConst(name, fd.Name)
			if !token.IsIdentifier(id) {
				return fmt.Errorf("codegen: field %q of schema %q generates invalid identifier %q", fd.Name, t.Name, id)
			}
			if prev, ok := consts[id]; ok {
				return fmt.Errorf("codegen: fields %q and %q of schema %q generate the same identifier %s", prev, fd.Name, t.Name, id)
			}
			consts[id] = fd.Name
		}
	}
	return nil
}

// fieldConst returns the name of the constant holding a field name.
func fieldConst(typeName, field string) string {
	return typeName + "Field" + naming.Pascal(field)
}

func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.pkg)
	f.HeaderComment(Header)
	return f
}

// writeFile renders f, formats it with goimports and writes it to name.
func (g *Generator) writeFile(f *jen.File, name string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	path := filepath.Join(g.outDir, name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return fmt.Errorf("format %s: %w (unformatted written to %s)", name, err, debugPath)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	g.logger.Debug("generated file", "path", path, "bytes", len(formatted))

	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(formatted))
	g.mu.Unlock()
	return nil
}
