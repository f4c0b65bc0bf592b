// Package pagination is the top-level orchestrator of a GraphQL-to-database
// compiler's query pagination core: given a query, its parameters, an
// external cardinality estimator, and a desired page row count, it decides
// whether and how to split the query into a bounded first page and a
// complementary remainder.
//
// The heavy lifting lives in the leaf packages this one composes —
// [github.com/syssam/gqlpaginate/planning], [github.com/syssam/gqlpaginate/paramgen],
// [github.com/syssam/gqlpaginate/parameterizer] — each pure and
// single-threaded. This package is the only one that talks to the outside
// world, through the [Estimator] interface, and the only one that accepts a
// context.Context.
package pagination
