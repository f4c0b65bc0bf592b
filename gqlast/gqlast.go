package gqlast

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// Document wraps a parsed GraphQL query document.
type Document struct {
	AST *ast.QueryDocument
}

// Parse parses text as a GraphQL query document.
func Parse(text string) (*Document, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: text})
	if err != nil {
		return nil, fmt.Errorf("gqlast: parse query: %w", err)
	}
	return &Document{AST: doc}, nil
}

// Print renders doc back to GraphQL source text. Round-tripping Parse(Print(d))
// reproduces d up to whitespace, since the formatter and parser share the
// same AST shapes.
func Print(doc *Document) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc.AST)
	return buf.String()
}

// RootSelectionSet returns the selection set of the document's sole
// operation. The pagination core only ever handles single-operation
// documents, matching the compiler's one-query-per-call model.
func RootSelectionSet(doc *Document) (ast.SelectionSet, error) {
	if len(doc.AST.Operations) != 1 {
		return nil, fmt.Errorf("gqlast: expected exactly one operation, got %d", len(doc.AST.Operations))
	}
	return doc.AST.Operations[0].SelectionSet, nil
}

// RootVertexName returns the type name of the query's root vertex: the name
// of the sole top-level field selection.
func RootVertexName(doc *Document) (string, error) {
	set, err := RootSelectionSet(doc)
	if err != nil {
		return "", err
	}
	for _, sel := range flatten(set) {
		if f, ok := sel.(*ast.Field); ok {
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("gqlast: no root field in query")
}

// flatten returns the selections in set with any inline fragment's inner
// selections spliced in at the same level, recursively. Fragment spreads are
// left as-is (the pagination core's queries never use them).
func flatten(set ast.SelectionSet) []ast.Selection {
	out := make([]ast.Selection, 0, len(set))
	for _, sel := range set {
		if frag, ok := sel.(*ast.InlineFragment); ok {
			out = append(out, flatten(frag.SelectionSet)...)
			continue
		}
		out = append(out, sel)
	}
	return out
}

// findField returns the first field named name among set's selections,
// flattening through inline fragments.
func findField(set ast.SelectionSet, name string) (*ast.Field, bool) {
	for _, sel := range flatten(set) {
		f, ok := sel.(*ast.Field)
		if ok && f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindField returns the first field named name directly within set,
// flattening through inline fragments. Exported for callers in paramgen and
// parameterizer that need to inspect a vertex's fields without re-walking
// the whole query_path.
func FindField(set ast.SelectionSet, name string) (*ast.Field, bool) {
	return findField(set, name)
}

// LocateVertex walks path, a sequence of field names, starting from the
// document root, returning the selection set of the vertex at the end of
// the path. Each step looks up its field name transparently through inline
// fragments at the current level, matching the compiler's query_path
// semantics: a path never names a type-condition, only field/edge names.
func LocateVertex(doc *Document, path []string) (ast.SelectionSet, error) {
	field, err := LocateVertexField(doc, path)
	if err != nil {
		return nil, err
	}
	return field.SelectionSet, nil
}

// LocateVertexField is [LocateVertex], but returns the vertex's own field
// node rather than its selection set. Callers that need to rewrite the
// selection set itself (inserting a field) need the parent node to write
// the new slice back to, since append may reallocate.
func LocateVertexField(doc *Document, path []string) (*ast.Field, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("gqlast: empty query_path")
	}
	set, err := RootSelectionSet(doc)
	if err != nil {
		return nil, err
	}

	root, ok := findField(set, path[0])
	if !ok {
		return nil, fmt.Errorf("gqlast: %w: root field %q not found", ErrUnreachablePath, path[0])
	}
	current := root

	for _, segment := range path[1:] {
		next, ok := findField(current.SelectionSet, segment)
		if !ok {
			return nil, fmt.Errorf("gqlast: %w: field %q not found under %q", ErrUnreachablePath, segment, current.Name)
		}
		current = next
	}
	return current, nil
}

// ErrUnreachablePath is returned by LocateVertex when a query_path names a
// selection that does not exist in the document.
var ErrUnreachablePath = fmt.Errorf("gqlast: query_path unreachable in document")

// FilterArgument returns the directive's "op_name" string argument and the
// string values of its "value" list argument, or false if dir is not a
// well-formed @filter directive.
func FilterArgument(dir *ast.Directive) (opName string, values []string, ok bool) {
	if dir.Name != "filter" {
		return "", nil, false
	}
	opArg := dir.Arguments.ForName("op_name")
	valueArg := dir.Arguments.ForName("value")
	if opArg == nil || valueArg == nil {
		return "", nil, false
	}
	if opArg.Value.Kind != ast.StringValue {
		return "", nil, false
	}
	if valueArg.Value.Kind != ast.ListValue {
		return "", nil, false
	}
	out := make([]string, 0, len(valueArg.Value.Children))
	for _, child := range valueArg.Value.Children {
		if child.Value.Kind != ast.StringValue {
			return "", nil, false
		}
		out = append(out, child.Value.Raw)
	}
	return opArg.Value.Raw, out, true
}

// FilterDirectives returns every @filter directive on field, in order.
func FilterDirectives(field *ast.Field) []*ast.Directive {
	var out []*ast.Directive
	for _, d := range field.Directives {
		if d.Name == "filter" {
			out = append(out, d)
		}
	}
	return out
}

// ParamReference returns the bare parameter name referenced by a filter
// value string, stripping the leading "$" the compiler uses to mark
// parameter placeholders, and false if raw is not a parameter reference.
func ParamReference(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '$' {
		return "", false
	}
	return raw[1:], true
}

// NewFilterDirective builds an @filter(op_name: opName, value: ["$paramName"])
// directive node.
func NewFilterDirective(opName, paramName string) *ast.Directive {
	return &ast.Directive{
		Name: "filter",
		Arguments: ast.ArgumentList{
			{Name: "op_name", Value: &ast.Value{Kind: ast.StringValue, Raw: opName}},
			{Name: "value", Value: &ast.Value{
				Kind: ast.ListValue,
				Children: ast.ChildValueList{
					{Value: &ast.Value{Kind: ast.StringValue, Raw: "$" + paramName}},
				},
			}},
		},
	}
}
