package gqlast

import "github.com/vektah/gqlparser/v2/ast"

// CloneDocument returns a document whose root selection set is a deep
// structural copy of doc's, sharing everything else (operation name,
// variable definitions, fragments) by reference. Callers rewrite the cloned
// tree in place rather than mutating doc.
func CloneDocument(doc *Document) *Document {
	op := *doc.AST.Operations[0]
	op.SelectionSet = CloneSelectionSet(op.SelectionSet)

	clonedAST := *doc.AST
	clonedAST.Operations = ast.OperationList{&op}
	return &Document{AST: &clonedAST}
}

// CloneSelectionSet returns a deep copy of set: every Field and
// InlineFragment node, and their own selection sets, are freshly allocated,
// down to directive/argument/value leaves. Fragment spreads are copied by
// value (they carry no nested selection set of their own to protect).
func CloneSelectionSet(set ast.SelectionSet) ast.SelectionSet {
	if set == nil {
		return nil
	}
	out := make(ast.SelectionSet, len(set))
	for i, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			out[i] = CloneField(s)
		case *ast.InlineFragment:
			clone := *s
			clone.SelectionSet = CloneSelectionSet(s.SelectionSet)
			clone.Directives = cloneDirectives(s.Directives)
			out[i] = &clone
		case *ast.FragmentSpread:
			clone := *s
			out[i] = &clone
		default:
			out[i] = sel
		}
	}
	return out
}

// CloneField returns a deep copy of f.
func CloneField(f *ast.Field) *ast.Field {
	clone := *f
	clone.Arguments = cloneArguments(f.Arguments)
	clone.Directives = cloneDirectives(f.Directives)
	clone.SelectionSet = CloneSelectionSet(f.SelectionSet)
	return &clone
}

// CloneDirective returns a deep copy of d.
func CloneDirective(d *ast.Directive) *ast.Directive {
	clone := *d
	clone.Arguments = cloneArguments(d.Arguments)
	return &clone
}

func cloneDirectives(dirs ast.DirectiveList) ast.DirectiveList {
	if dirs == nil {
		return nil
	}
	out := make(ast.DirectiveList, len(dirs))
	for i, d := range dirs {
		out[i] = CloneDirective(d)
	}
	return out
}

func cloneArguments(args ast.ArgumentList) ast.ArgumentList {
	if args == nil {
		return nil
	}
	out := make(ast.ArgumentList, len(args))
	for i, a := range args {
		clone := *a
		clone.Value = cloneValue(a.Value)
		out[i] = &clone
	}
	return out
}

func cloneValue(v *ast.Value) *ast.Value {
	if v == nil {
		return nil
	}
	clone := *v
	if v.Children != nil {
		clone.Children = make(ast.ChildValueList, len(v.Children))
		for i, c := range v.Children {
			clonedChild := *c
			clonedChild.Value = cloneValue(c.Value)
			clone.Children[i] = &clonedChild
		}
	}
	return &clone
}
