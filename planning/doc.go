// Package planning selects which vertex and field of a query to partition.
//
// [GetPaginationPlan] is deliberately conservative: whenever it cannot be
// confident a split will produce a sane pair of queries — too few samples,
// no configured pagination key, an unsupported field type — it returns an
// empty [PaginationPlan] paired with an [Advisory] rather than guessing. The
// current design only ever plans a partition of the query's root vertex; see
// [github.com/syssam/gqlpaginate/gqlast] for how a richer, multi-vertex
// query_path would be represented if that is extended later.
package planning
