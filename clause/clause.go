// Package clause renders SQL clause fragments from a bound schema.
//
// Fields, Select and Values depend only on the schema. Where, Set and
// SetWhere also take a record, consulted for the presence of optional values.
// Every call owns its placeholder counter; a Schema can be rendered by any
// number of goroutines at once.
//
// The generators never join fragments. Callers join Fields, Select, Values
// and Set fragments with ", " and Where fragments with " AND ".
package clause

import (
	"errors"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/internal/counter"
	"github.com/syssam/sqlclause/record"
	"github.com/syssam/sqlclause/schema"
)

var errNilRecord = errors.New("nil record")

// Result is the output of one index-bearing generator call.
type Result struct {
	// Fragments in field declaration order.
	Fragments []string
	// Next is the counter position after the call.
	Next int
}

// SetWhereResult is the output of SetWhere.
type SetWhereResult struct {
	Set   []string
	Where []string
	// Next is the counter position after both clauses.
	Next int
}

// Option configures one generator call.
type Option func(*options) error

type options struct {
	start int
}

// StartAt starts the placeholder counter at n instead of the schema's
// configured start index.
func StartAt(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return sqlclause.NewConfigError("index", n, "start index must be at least 1")
		}
		o.start = n
		return nil
	}
}

func newCounter(s *schema.Schema, opts []Option) (*counter.Counter, error) {
	o := options{start: s.StartIndex()}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return counter.New(o.start), nil
}

// Fields returns the column names of the schema.
func Fields(s *schema.Schema) []string {
	return names(s.Plan(schema.Fields))
}

// Select returns the select-list expressions of the schema.
func Select(s *schema.Schema) []string {
	return names(s.Plan(schema.Select))
}

func names(plan []*schema.Instruction) []string {
	out := make([]string, len(plan))
	for i, in := range plan {
		out[i] = in.Name
	}
	return out
}

// Values returns one placeholder or literal per included field.
func Values(s *schema.Schema, opts ...Option) (*Result, error) {
	c, err := newCounter(s, opts)
	if err != nil {
		return nil, err
	}
	frags, err := render(s, s.Plan(schema.Values), nil, c)
	if err != nil {
		return nil, err
	}
	return &Result{Fragments: frags, Next: c.Current()}, nil
}

// Where returns the predicates of the fields declaring where directives.
func Where(s *schema.Schema, rec record.Record, opts ...Option) (*Result, error) {
	return instance(s, schema.Where, rec, opts)
}

// Set returns the assignments of the schema. Fields moved to WHERE by a
// where directive are not part of the result; use SetWhere to render them.
func Set(s *schema.Schema, rec record.Record, opts ...Option) (*Result, error) {
	return instance(s, schema.Set, rec, opts)
}

func instance(s *schema.Schema, kind schema.Kind, rec record.Record, opts []Option) (*Result, error) {
	if rec == nil {
		return nil, sqlclause.NewRecordError("", errNilRecord)
	}
	c, err := newCounter(s, opts)
	if err != nil {
		return nil, err
	}
	frags, err := render(s, s.Plan(kind), rec, c)
	if err != nil {
		return nil, err
	}
	return &Result{Fragments: frags, Next: c.Current()}, nil
}

// SetWhere renders the assignments of the schema followed by the predicates
// of fields moved or copied to WHERE by a where directive. One counter is
// shared: WHERE placeholders continue after the SET placeholders.
func SetWhere(s *schema.Schema, rec record.Record, opts ...Option) (*SetWhereResult, error) {
	if rec == nil {
		return nil, sqlclause.NewRecordError("", errNilRecord)
	}
	c, err := newCounter(s, opts)
	if err != nil {
		return nil, err
	}
	set, err := render(s, s.Plan(schema.Set), rec, c)
	if err != nil {
		return nil, err
	}
	where, err := render(s, s.Redirects(), rec, c)
	if err != nil {
		return nil, err
	}
	return &SetWhereResult{Set: set, Where: where, Next: c.Current()}, nil
}

// render emits the fragments of plan. Presence is checked before the counter
// is touched, so suppressed fields consume nothing.
func render(s *schema.Schema, plan []*schema.Instruction, rec record.Record, c *counter.Counter) ([]string, error) {
	d := s.Dialect()
	out := make([]string, 0, len(plan))
	for _, in := range plan {
		if in.Presence {
			ok, err := rec.Present(in.Field)
			if err != nil {
				if !sqlclause.IsRecordError(err) {
					err = sqlclause.NewRecordError(in.Field, err)
				}
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, in.Render(d, c.Next(in.Consumes())))
	}
	return out, nil
}
