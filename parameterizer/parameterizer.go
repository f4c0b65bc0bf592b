package parameterizer

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gqlpaginate/gqlast"
	"github.com/syssam/gqlpaginate/planning"
	"github.com/syssam/gqlpaginate/schemainfo"
	"github.com/syssam/gqlpaginate/valuespace"
)

// ErrSchemaMismatch is wrapped into the error returned when a plan names a
// vertex type or field the schema graph does not recognize.
var ErrSchemaMismatch = errors.New("parameterizer: plan field not present in schema graph")

// lowerBoundOps are @filter operators whose inclusive lower bound can be
// replaced by a newly computed ">=" threshold, mapped to the index within
// the directive's value list that carries that bound. Reusing one of these
// slots is sound because the threshold is drawn only from samples that
// already satisfy the existing bound, so the new bound always subsumes it.
var lowerBoundOps = map[string]int{">=": 0, "between": 0}

// upperBoundOps are @filter operators whose exclusive upper bound can be
// replaced by a newly computed "<" threshold, mapped to the index within
// the directive's value list that carries that bound.
var upperBoundOps = map[string]int{"<": 0}

// GenerateParameterizedQueries splits awp's query at plan's vertex into a
// next_page query (rows with plan.PaginationField < threshold) and a
// remainder query (rows with plan.PaginationField >= threshold). The two
// queries share one freshly allocated parameter bound to threshold; every
// other parameter reference in each output is whatever of awp.Parameters it
// still needs, per [gqlast.BindParameters].
func GenerateParameterizedQueries(info *schemainfo.SchemaInfo, awp gqlast.ASTWithParameters, plan planning.VertexPartitionPlan, threshold valuespace.Value) (nextPage, remainder gqlast.ASTWithParameters, err error) {
	if info != nil && info.Graph != nil {
		if verr := info.Validate(plan.VertexType, plan.PaginationField); verr != nil {
			return gqlast.ASTWithParameters{}, gqlast.ASTWithParameters{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, verr)
		}
	}

	paramName := freshParameterName(awp.Parameters)

	nextDoc := gqlast.CloneDocument(awp.Document)
	if err := applyBound(nextDoc, plan, "<", upperBoundOps, paramName); err != nil {
		return gqlast.ASTWithParameters{}, gqlast.ASTWithParameters{}, err
	}

	remDoc := gqlast.CloneDocument(awp.Document)
	if err := applyBound(remDoc, plan, ">=", lowerBoundOps, paramName); err != nil {
		return gqlast.ASTWithParameters{}, gqlast.ASTWithParameters{}, err
	}

	candidates := make(map[string]any, len(awp.Parameters)+1)
	for k, v := range awp.Parameters {
		candidates[k] = v
	}
	candidates[paramName] = threshold.CanonicalText()

	nextPage = gqlast.ASTWithParameters{Document: nextDoc, Parameters: gqlast.BindParameters(nextDoc, candidates)}
	remainder = gqlast.ASTWithParameters{Document: remDoc, Parameters: gqlast.BindParameters(remDoc, candidates)}
	return nextPage, remainder, nil
}

// freshParameterName returns "__paged_param_<k>" for the smallest
// non-negative k not already present in parameters.
func freshParameterName(parameters map[string]any) string {
	for k := 0; ; k++ {
		name := fmt.Sprintf("__paged_param_%d", k)
		if _, exists := parameters[name]; !exists {
			return name
		}
	}
}

// applyBound locates plan's pagination field within doc and either reuses an
// existing @filter directive shaped like op (per reuseOps) or appends a new
// one, in both cases referencing paramName.
func applyBound(doc *gqlast.Document, plan planning.VertexPartitionPlan, op string, reuseOps map[string]int, paramName string) error {
	vertexField, err := gqlast.LocateVertexField(doc, plan.QueryPath)
	if err != nil {
		return fmt.Errorf("parameterizer: %w", err)
	}

	field, ok := gqlast.FindField(vertexField.SelectionSet, plan.PaginationField)
	if !ok {
		field = &ast.Field{
			Name:       plan.PaginationField,
			Directives: ast.DirectiveList{gqlast.NewFilterDirective(op, paramName)},
		}
		vertexField.SelectionSet = gqlast.InsertField(vertexField.SelectionSet, field)
		return nil
	}

	for _, dir := range gqlast.FilterDirectives(field) {
		opName, _, ok := gqlast.FilterArgument(dir)
		if !ok {
			continue
		}
		if index, reusable := reuseOps[opName]; reusable {
			gqlast.SetFilterOperand(dir, index, paramName)
			return nil
		}
	}

	field.Directives = append(field.Directives, gqlast.NewFilterDirective(op, paramName))
	return nil
}
