package planning

import (
	"fmt"

	"github.com/syssam/gqlpaginate/gqlast"
	"github.com/syssam/gqlpaginate/quantile"
	"github.com/syssam/gqlpaginate/schemainfo"
)

// VertexPartitionPlan describes a single vertex/field chosen to carry
// pagination filters: where it sits in the query (query_path), its schema
// type (VertexType — needed because a query_path segment names a selection,
// not necessarily a type, once it descends past the root), which field
// (pagination_field), and into how many buckets (number_of_subdivisions).
type VertexPartitionPlan struct {
	QueryPath            []string
	VertexType           string
	PaginationField      string
	NumberOfSubdivisions int
}

// PaginationPlan is an ordered sequence of VertexPartitionPlan entries. The
// current design only ever produces zero or one entry (the root vertex).
// For numberOfPages > 1 an empty plan signals "cannot paginate" and always
// pairs with at least one [Advisory]; for numberOfPages <= 1 the plan is
// empty and there are no advisories.
type PaginationPlan []VertexPartitionPlan

// Advisory is a non-fatal diagnostic explaining a degenerate plan.
type Advisory interface {
	// Message returns a human-readable description of the advisory.
	Message() string
}

// InsufficientQuantiles reports that a field's quantile sample was too small
// to split into the requested number of pages.
type InsufficientQuantiles struct {
	VertexType string
	Field      string
	Have       int
	Need       int
}

func (a InsufficientQuantiles) Message() string {
	return fmt.Sprintf("insufficient quantiles for %s.%s: have %d, need %d", a.VertexType, a.Field, a.Have, a.Need)
}

// UnpaginableField reports that the chosen pagination field is unsupported
// for partitioning: no root vertex could be found, no pagination key is
// configured for the vertex type, or (when a schema graph is present) the
// configured field does not exist in it or has an unsupported SQL type.
type UnpaginableField struct {
	VertexType string
	Field      string
	Reason     string
}

func (a UnpaginableField) Message() string {
	if a.Field == "" {
		return fmt.Sprintf("%s has no configured pagination key: %s", a.VertexType, a.Reason)
	}
	return fmt.Sprintf("%s.%s is unpaginable: %s", a.VertexType, a.Field, a.Reason)
}

// GetPaginationPlan selects the vertex/field to partition for a query
// requesting numberOfPages total pages.
//
// numberOfPages == 1 always yields an empty plan with no advisories: the
// query is its own single page. Otherwise the planner identifies the root
// vertex, looks up its configured pagination field, and classifies it as
// paginable-analytically (a UUID-v4 field), paginable-by-quantile (enough
// samples for the requested split), or not paginable (an advisory and an
// empty plan).
func GetPaginationPlan(info *schemainfo.SchemaInfo, doc *gqlast.Document, numberOfPages int) (PaginationPlan, []Advisory) {
	if numberOfPages <= 1 {
		return nil, nil
	}

	rootType, err := gqlast.RootVertexName(doc)
	if err != nil {
		return nil, []Advisory{UnpaginableField{Reason: err.Error()}}
	}

	field, ok := info.PaginationField(rootType)
	if !ok {
		return nil, []Advisory{UnpaginableField{VertexType: rootType, Reason: "no pagination key configured"}}
	}

	if info.Graph != nil {
		if !info.Graph.HasField(rootType, field) {
			return nil, []Advisory{UnpaginableField{VertexType: rootType, Field: field, Reason: "field not found in schema graph"}}
		}
		if _, err := info.FieldKind(rootType, field); err != nil {
			return nil, []Advisory{UnpaginableField{VertexType: rootType, Field: field, Reason: err.Error()}}
		}
	}

	if info.IsUUID4Field(rootType, field) {
		plan := PaginationPlan{{
			QueryPath:            []string{rootType},
			VertexType:           rootType,
			PaginationField:      field,
			NumberOfSubdivisions: numberOfPages,
		}}
		return plan, nil
	}

	var sample []string
	if info.Statistics != nil {
		sample, _ = info.Statistics.FieldQuantiles(rootType, field)
	}
	need := quantile.Required(numberOfPages)
	if !quantile.Sufficient(len(sample), numberOfPages) {
		return nil, []Advisory{InsufficientQuantiles{
			VertexType: rootType,
			Field:      field,
			Have:       len(sample),
			Need:       need,
		}}
	}

	plan := PaginationPlan{{
		QueryPath:            []string{rootType},
		VertexType:           rootType,
		PaginationField:      field,
		NumberOfSubdivisions: numberOfPages,
	}}
	return plan, nil
}
