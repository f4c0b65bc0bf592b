// Package gqlast adapts github.com/vektah/gqlparser/v2's AST to the shape
// the pagination core needs: parsing and printing a query document, walking
// a query_path down to a target vertex (transparently through inline
// fragments, the one type-refinement construct the core's queries use), and
// producing structurally-copied selection sets so a rewrite never mutates
// its input.
//
// gqlparser is the external "GraphQL parser/printer" the compiler's planner
// and parameterizer are built against; this package does not reimplement
// parsing, it narrows gqlparser's general-purpose AST down to the handful of
// shapes ([ast.Field], [ast.Directive], [ast.Argument], string-valued
// [ast.Value]) the pagination core actually rewrites.
package gqlast
