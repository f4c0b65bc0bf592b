package gqlast

import "github.com/vektah/gqlparser/v2/ast"

// ASTWithParameters pairs a document with the parameter bindings it
// references, the unit of currency the parameterizer and the top-level
// pagination orchestrator pass around: a query is never meaningful without
// the parameters that fill in its @filter values.
type ASTWithParameters struct {
	Document   *Document
	Parameters map[string]any
}

// HasOutputDirective reports whether f carries an @output directive.
func HasOutputDirective(f *ast.Field) bool {
	for _, d := range f.Directives {
		if d.Name == "output" {
			return true
		}
	}
	return false
}

// InsertField adds field to set, placed directly before the first
// output-bearing field at this level, or appended at the end if set has no
// output fields. This matches the reference compiler's convention of
// grouping filter-only fields ahead of the fields the query actually
// returns.
func InsertField(set ast.SelectionSet, field *ast.Field) ast.SelectionSet {
	for i, sel := range set {
		if f, ok := sel.(*ast.Field); ok && HasOutputDirective(f) {
			out := make(ast.SelectionSet, 0, len(set)+1)
			out = append(out, set[:i]...)
			out = append(out, field)
			out = append(out, set[i:]...)
			return out
		}
	}
	return append(set, field)
}

// SetFilterOperand rewrites the index'th element of dir's "value" list
// argument to a "$paramName" reference. It is how the parameterizer reuses
// an existing @filter directive's slot for a freshly computed threshold
// instead of adding a second directive alongside it.
func SetFilterOperand(dir *ast.Directive, index int, paramName string) {
	valueArg := dir.Arguments.ForName("value")
	if valueArg == nil || index >= len(valueArg.Value.Children) {
		return
	}
	valueArg.Value.Children[index].Value.Raw = "$" + paramName
}

// ReferencedParameters walks doc collecting every parameter name referenced
// by a "$name" operand in an @filter directive, the set the compiler's
// bijective parameter-map invariant is checked against: every name in this
// set must have a binding, and no binding may be for a name outside it.
func ReferencedParameters(doc *Document) map[string]struct{} {
	out := make(map[string]struct{})
	set, err := RootSelectionSet(doc)
	if err != nil {
		return out
	}
	collectReferencedParameters(set, out)
	return out
}

func collectReferencedParameters(set ast.SelectionSet, out map[string]struct{}) {
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			for _, dir := range FilterDirectives(s) {
				_, values, ok := FilterArgument(dir)
				if !ok {
					continue
				}
				for _, raw := range values {
					if name, isParam := ParamReference(raw); isParam {
						out[name] = struct{}{}
					}
				}
			}
			collectReferencedParameters(s.SelectionSet, out)
		case *ast.InlineFragment:
			collectReferencedParameters(s.SelectionSet, out)
		}
	}
}

// BindParameters returns the subset of candidates whose key is referenced in
// doc, the final step of assembling an [ASTWithParameters]'s Parameters: a
// rewrite that drops a directive's old parameter (reused for a fresh
// binding elsewhere) must not leave the old name's binding dangling.
func BindParameters(doc *Document, candidates map[string]any) map[string]any {
	referenced := ReferencedParameters(doc)
	out := make(map[string]any, len(referenced))
	for name := range referenced {
		if v, ok := candidates[name]; ok {
			out[name] = v
		}
	}
	return out
}
