package load

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/schema"
	"github.com/syssam/sqlclause/schema/field"
)

// Document is the YAML form of a schema.
//
//	name: articles
//	database: postgres
//	index: 1
//	ignore_none: true
//	ignore_fields_without_directive: {set: false}
//	ignore_set_and_where_conflict: false
//	fields:
//	  - name: id
//	    set: {where: true}
//	  - name: title
//	    optional: true
//	    set: {}
//	  - name: secret
//	    select: ignore
type Document struct {
	Name                         string              `yaml:"name,omitempty"`
	Database                     *string             `yaml:"database,omitempty"`
	Index                        *int                `yaml:"index,omitempty"`
	IgnoreNone                   *bool               `yaml:"ignore_none,omitempty"`
	IgnoreFieldsWithoutDirective map[field.Kind]bool `yaml:"ignore_fields_without_directive,omitempty"`
	IgnoreSetAndWhereConflict    *bool               `yaml:"ignore_set_and_where_conflict,omitempty"`
	Fields                       []FieldDocument     `yaml:"fields"`
}

// FieldDocument is the YAML form of one field.
type FieldDocument struct {
	Name       string
	Optional   bool
	Comment    string
	Directives map[field.Kind][]field.Directive
	kinds      []field.Kind
}

// UnmarshalYAML implements yaml.Unmarshaler. Clause blocks are either a
// mapping of directives or a scalar in struct tag syntax; an empty or null
// block declares the clause without directives. The field keys are decoded
// before any clause block, so errors name the field whatever the key order.
func (f *FieldDocument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected field mapping, got %v", node.Line, node.Tag)
	}
	var blocks []int
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var err error
		switch key.Value {
		case "name":
			err = value.Decode(&f.Name)
		case "optional":
			err = value.Decode(&f.Optional)
		case "comment":
			err = value.Decode(&f.Comment)
		default:
			blocks = append(blocks, i)
		}
		if err != nil {
			return err
		}
	}
	for _, i := range blocks {
		key, value := node.Content[i], node.Content[i+1]
		kind, err := field.ParseKind(key.Value)
		if err != nil {
			return fmt.Errorf("line %d: unknown field key %q", key.Line, key.Value)
		}
		ds, err := f.block(kind, value)
		if err != nil {
			return err
		}
		if f.Directives == nil {
			f.Directives = make(map[field.Kind][]field.Directive)
		}
		if _, ok := f.Directives[kind]; !ok {
			f.kinds = append(f.kinds, kind)
		}
		f.Directives[kind] = append(f.Directives[kind], ds...)
	}
	return nil
}

func (f *FieldDocument) block(kind field.Kind, node *yaml.Node) ([]field.Directive, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return ParseTag(f.Name, kind, node.Value)
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("line %d: %s directives must be a mapping or a string", node.Line, kind)
	}
	ds := make([]field.Directive, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %s.%s must be a scalar", value.Line, kind, key)
		}
		switch key {
		case "ignore", "ignore_set", "where":
			// Flags accept booleans; false omits the directive.
			if value.Tag == "!!bool" {
				var on bool
				if err := value.Decode(&on); err != nil {
					return nil, err
				}
				if !on {
					continue
				}
				d, err := ParseDirective(f.Name, key, "", false)
				if err != nil {
					return nil, err
				}
				ds = append(ds, d)
				continue
			}
		}
		d, err := ParseDirective(f.Name, key, value.Value, true)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

// Descriptor builds the field descriptor.
func (f *FieldDocument) Descriptor() *field.Descriptor {
	b := field.New(f.Name).Comment(f.Comment)
	if f.Optional {
		b.Optional()
	}
	for _, kind := range f.kinds {
		b.Directives(kind, f.Directives[kind]...)
	}
	return b.Descriptor()
}

// Options returns the schema options declared by the document.
func (d *Document) Options() []schema.Option {
	var opts []schema.Option
	if d.Database != nil {
		opts = append(opts, schema.WithDialect(*d.Database))
	}
	if d.Index != nil {
		opts = append(opts, schema.WithStartIndex(*d.Index))
	}
	if d.IgnoreNone != nil {
		opts = append(opts, schema.WithIgnoreNone(*d.IgnoreNone))
	}
	for _, kind := range field.Kinds {
		if v, ok := d.IgnoreFieldsWithoutDirective[kind]; ok {
			opts = append(opts, schema.WithIgnoreFieldsWithoutDirective(kind, v))
		}
	}
	if d.IgnoreSetAndWhereConflict != nil {
		opts = append(opts, schema.WithIgnoreSetAndWhereConflict(*d.IgnoreSetAndWhereConflict))
	}
	return opts
}

// Schema converts the document to a loaded schema.
func (d *Document) Schema() *Schema {
	s := &Schema{Name: d.Name, Options: d.Options()}
	for i := range d.Fields {
		s.Fields = append(s.Fields, d.Fields[i].Descriptor())
	}
	return s
}

// YAML parses a schema document. Unknown keys are rejected.
func YAML(data []byte) (*Schema, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		if sqlclause.IsConfigError(err) {
			return nil, err
		}
		return nil, sqlclause.NewConfigError("yaml", nil, err.Error())
	}
	return doc.Schema(), nil
}

// File reads and parses the schema document at path. A document without a
// name is named after the file.
func File(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := YAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = baseName(path)
	}
	return s, nil
}

// Files reads several schema documents concurrently. The result is in the
// order of paths.
func Files(ctx context.Context, paths ...string) ([]*Schema, error) {
	out := make([]*Schema, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := File(path)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
