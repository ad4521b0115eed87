package clause_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/sqlclause/clause"
	"github.com/syssam/sqlclause/record"
	"github.com/syssam/sqlclause/schema"
)

func TestConcurrentRendering(t *testing.T) {
	s := schema.MustNew(articleFields(), schema.WithDialect("postgres"))
	records := []record.Record{
		record.Map{"id": 1, "title": "a", "body": "b"},
		record.Map{"id": 2, "title": "a"},
	}
	want := make([]*clause.SetWhereResult, len(records))
	for i, rec := range records {
		res, err := clause.SetWhere(s, rec)
		require.NoError(t, err)
		want[i] = res
	}

	const workers = 32
	got := make([]*clause.SetWhereResult, workers)
	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			res, err := clause.SetWhere(s, records[i%len(records)], clause.StartAt(1))
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			got[i] = res
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for i, res := range got {
		assert.Equal(t, want[i%len(records)], res, "worker %d", i)
	}
}

func TestDeterminism(t *testing.T) {
	s := schema.MustNew(articleFields(), schema.WithDialect("mssql"))
	rec := record.Map{"id": 1, "title": "a"}
	first, err := clause.SetWhere(s, rec)
	require.NoError(t, err)
	for range 10 {
		again, err := clause.SetWhere(s, rec)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"title = @p1"}, first.Set)
	assert.Equal(t, []string{"id = @p2"}, first.Where)
}
