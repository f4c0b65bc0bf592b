package pagination

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"golang.org/x/sync/singleflight"

	"github.com/syssam/gqlpaginate/schemainfo"
)

// Estimator is the external cardinality estimator: given a query and its
// parameters, it returns an approximate row count. PaginateQuery uses the
// estimate to decide how many pages to split the query into; the core never
// estimates cardinality itself; that stays out of scope, delegated entirely
// to the caller's implementation.
type Estimator interface {
	Estimate(ctx context.Context, info *schemainfo.SchemaInfo, queryString string, parameters map[string]any) (float64, error)
}

// CoalescingEstimator wraps an Estimator so that concurrent PaginateQuery
// calls for an identical (query, parameters) pair share one in-flight
// estimate, rather than each issuing its own. This is a convenience, not a
// correctness requirement: PaginateQuery already permits concurrent calls
// with no coordination, since the core holds no shared mutable state of its
// own.
type CoalescingEstimator struct {
	inner Estimator
	group singleflight.Group
}

// NewCoalescingEstimator wraps inner.
func NewCoalescingEstimator(inner Estimator) *CoalescingEstimator {
	return &CoalescingEstimator{inner: inner}
}

// Estimate implements Estimator, deduplicating concurrent calls that share
// the same query string and parameter values.
func (c *CoalescingEstimator) Estimate(ctx context.Context, info *schemainfo.SchemaInfo, queryString string, parameters map[string]any) (float64, error) {
	key := estimateCacheKey(queryString, parameters)
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.inner.Estimate(ctx, info, queryString, parameters)
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// estimateCacheKey derives a stable key from queryString and parameters,
// sorting parameter names so map iteration order never affects the key.
func estimateCacheKey(queryString string, parameters map[string]any) string {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(queryString))
	for _, name := range names {
		fmt.Fprintf(h, "\x00%s=%v", name, parameters[name])
	}
	return hex.EncodeToString(h.Sum(nil))
}
