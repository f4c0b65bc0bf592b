// Package parameterizer rewrites a query's chosen partition vertex into the
// pair of queries a single page split produces: a next_page query bounded
// above by a freshly computed threshold, and a remainder query bounded below
// by the same threshold. Both clones share one new parameter, so the two
// queries' results are disjoint and exhaustive over the original query's
// rows.
package parameterizer
