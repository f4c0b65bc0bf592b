package pagination

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/syssam/gqlpaginate/gqlast"
	"github.com/syssam/gqlpaginate/paramgen"
	"github.com/syssam/gqlpaginate/parameterizer"
	"github.com/syssam/gqlpaginate/planning"
	"github.com/syssam/gqlpaginate/schemainfo"
)

// ASTWithParameters re-exports gqlast.ASTWithParameters under this package's
// name. It lives in gqlast, not here, so that parameterizer (which this
// package imports) never has to import this package back.
type ASTWithParameters = gqlast.ASTWithParameters

// QueryStringWithParameters is the printed-text analogue of
// ASTWithParameters: what PaginateQuery actually hands back to its caller.
type QueryStringWithParameters struct {
	QueryString string
	Parameters  map[string]any
}

// config holds the options PaginateQuery is configured with.
type config struct {
	debugLog func(...any)
}

// Option configures PaginateQuery.
type Option func(*config) error

// WithDebugLog sets the function PaginateQuery logs its planning decisions
// and advisories through. The default logs via log.Println.
func WithDebugLog(fn func(...any)) Option {
	return func(c *config) error {
		if fn == nil {
			return fmt.Errorf("pagination: WithDebugLog: fn cannot be nil")
		}
		c.debugLog = fn
		return nil
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{debugLog: func(args ...any) { log.Println(args...) }}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// PaginateQuery splits queryString into a bounded first page and a
// complementary remainder, such that running both against the same backing
// store and combining the results reproduces the original query's result
// set exactly once per row.
//
// numberOfPages is derived from estimator's cardinality estimate:
// max(1, ceil(estimate/desiredPageRowCount)). When that comes out to 1, or
// the planner cannot find a paginable field, PaginateQuery returns
// queryString verbatim as first and a zero-value remainder: an unpaginable
// query is never a fatal error.
func PaginateQuery(ctx context.Context, info *schemainfo.SchemaInfo, estimator Estimator, queryString string, parameters map[string]any, desiredPageRowCount int, opts ...Option) (first, remainder QueryStringWithParameters, err error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return QueryStringWithParameters{}, QueryStringWithParameters{}, err
	}

	original := QueryStringWithParameters{QueryString: queryString, Parameters: parameters}

	doc, err := gqlast.Parse(queryString)
	if err != nil {
		return QueryStringWithParameters{}, QueryStringWithParameters{}, NewASTShapeUnsupportedError("parse query", err)
	}

	if desiredPageRowCount <= 0 {
		return original, QueryStringWithParameters{}, nil
	}

	estimate, err := estimator.Estimate(ctx, info, queryString, parameters)
	if err != nil {
		return QueryStringWithParameters{}, QueryStringWithParameters{}, fmt.Errorf("pagination: estimate query cardinality: %w", err)
	}

	numberOfPages := numberOfPagesFor(estimate, desiredPageRowCount)
	cfg.debugLog("pagination: estimated", estimate, "rows,", numberOfPages, "pages")
	if numberOfPages <= 1 {
		return original, QueryStringWithParameters{}, nil
	}

	plan, advisories := planning.GetPaginationPlan(info, doc, numberOfPages)
	for _, advisory := range advisories {
		cfg.debugLog("pagination: advisory:", advisory.Message())
	}
	if len(plan) == 0 {
		return original, QueryStringWithParameters{}, nil
	}
	step := plan[0]

	seq, err := paramgen.Generate(info, doc, parameters, step)
	if err != nil {
		return QueryStringWithParameters{}, QueryStringWithParameters{}, classifyError("generate thresholds", err)
	}
	thresholds := paramgen.Collect(seq)
	if len(thresholds) == 0 {
		cfg.debugLog("pagination: no thresholds generated for", step.VertexType, step.PaginationField)
		return original, QueryStringWithParameters{}, nil
	}
	threshold := thresholds[0]

	awp := gqlast.ASTWithParameters{Document: doc, Parameters: parameters}
	nextAWP, remAWP, err := parameterizer.GenerateParameterizedQueries(info, awp, step, threshold)
	if err != nil {
		return QueryStringWithParameters{}, QueryStringWithParameters{}, classifyError("parameterize query", err)
	}

	first = QueryStringWithParameters{QueryString: gqlast.Print(nextAWP.Document), Parameters: nextAWP.Parameters}
	remainder = QueryStringWithParameters{QueryString: gqlast.Print(remAWP.Document), Parameters: remAWP.Parameters}
	return first, remainder, nil
}

// numberOfPagesFor computes max(1, ceil(estimatedRows / desiredPageRowCount)).
func numberOfPagesFor(estimatedRows float64, desiredPageRowCount int) int {
	if estimatedRows <= 0 {
		return 1
	}
	n := int(math.Ceil(estimatedRows / float64(desiredPageRowCount)))
	if n < 1 {
		return 1
	}
	return n
}
