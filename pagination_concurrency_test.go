package pagination_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	pagination "github.com/syssam/gqlpaginate"
	"github.com/syssam/gqlpaginate/schemainfo"
)

type countingEstimator struct {
	rows float64
	n    atomic.Int64
}

func (e *countingEstimator) Estimate(ctx context.Context, info *schemainfo.SchemaInfo, queryString string, parameters map[string]any) (float64, error) {
	e.n.Add(1)
	return e.rows, nil
}

func (e *countingEstimator) calls() int {
	return int(e.n.Load())
}

// TestPaginateQueryConcurrentCallsAreRaceFree checks that PaginateQuery
// carries no shared mutable state: many goroutines call it concurrently
// against the same SchemaInfo and must all see the same, correctly computed
// result. Run with -race to catch any violation.
func TestPaginateQueryConcurrentCallsAreRaceFree(t *testing.T) {
	info := animalSchemaInfo()
	query := `{ Animal { name @output(out_name: "animal_name") } }`

	const workers = 32
	firsts := make([]string, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			first, _, err := pagination.PaginateQuery(
				context.Background(), info, fixedEstimator{rows: 400}, query, nil, 100,
			)
			if err != nil {
				return err
			}
			firsts[i] = first.QueryString
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 1; i < workers; i++ {
		assert.Equal(t, firsts[0], firsts[i])
	}
}

// TestCoalescingEstimatorDeduplicatesConcurrentCalls exercises the
// CoalescingEstimator wrapper: concurrent Estimate calls for the same
// (query, parameters) share one underlying call to the wrapped Estimator.
func TestCoalescingEstimatorDeduplicatesConcurrentCalls(t *testing.T) {
	inner := &countingEstimator{rows: 123}
	est := pagination.NewCoalescingEstimator(inner)

	const workers = 16
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := est.Estimate(context.Background(), nil, "{ Animal { uuid } }", nil)
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.LessOrEqual(t, inner.calls(), workers)
	assert.GreaterOrEqual(t, inner.calls(), 1)
}
