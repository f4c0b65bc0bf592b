package schemainfo

import (
	"fmt"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/gqlpaginate/valuespace"
)

// FieldInfo describes a single field on a vertex type: its SQL-level typing,
// used to decide which value-space domain ([valuespace.Kind]-equivalent)
// governs it.
type FieldInfo struct {
	Name string
	Type *schema.ColumnType
}

// VertexType describes one vertex in the schema graph: its name and the
// fields declared on it.
type VertexType struct {
	Name   string
	Fields []FieldInfo
}

// Field returns the field named name on v, or false if it does not exist.
func (v VertexType) Field(name string) (FieldInfo, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// SchemaGraph enumerates the vertex types known to the compiler and their
// fields, with SQL-level typing supplied by ariga.io/atlas.
type SchemaGraph struct {
	vertices map[string]VertexType
}

// NewSchemaGraph builds a SchemaGraph from a list of vertex types.
func NewSchemaGraph(vertices ...VertexType) *SchemaGraph {
	g := &SchemaGraph{vertices: make(map[string]VertexType, len(vertices))}
	for _, v := range vertices {
		g.vertices[v.Name] = v
	}
	return g
}

// Vertex returns the vertex type named name, or false if the schema graph
// has no such vertex.
func (g *SchemaGraph) Vertex(name string) (VertexType, bool) {
	v, ok := g.vertices[name]
	return v, ok
}

// HasField reports whether vertexType declares a field named fieldName. This
// backs the planner's UnpaginableField check and the parameterizer's
// SchemaMismatch check (via [SchemaInfo.Validate]).
func (g *SchemaGraph) HasField(vertexType, fieldName string) bool {
	v, ok := g.vertices[vertexType]
	if !ok {
		return false
	}
	_, ok = v.Field(fieldName)
	return ok
}

// IntegerColumn returns a ColumnType for a native-integer-ordered field, the
// shape VertexType.Fields expects for Int-domain fields.
func IntegerColumn(sqlType string) *schema.ColumnType {
	return &schema.ColumnType{Type: &schema.IntegerType{T: sqlType}}
}

// TimeColumn returns a ColumnType for a datetime-ordered field.
func TimeColumn(sqlType string) *schema.ColumnType {
	return &schema.ColumnType{Type: &schema.TimeType{T: sqlType}}
}

// StringColumn returns a ColumnType for a UUID-v4 field, which the schema
// graph stores as a fixed-width string column (the SQL-level representation
// atlas reports for e.g. Postgres's uuid or MySQL's char(36)).
func StringColumn(sqlType string) *schema.ColumnType {
	return &schema.ColumnType{Type: &schema.StringType{T: sqlType}}
}

// Statistics is the external runtime-statistics collaborator: approximate
// row counts per vertex type, and ordered quantile samples per (vertex type,
// field) pair.
type Statistics interface {
	// ClassCount returns the approximate row count for vertexType, and false
	// if no estimate is available.
	ClassCount(vertexType string) (int64, bool)
	// FieldQuantiles returns the ordered quantile sample for (vertexType,
	// fieldName), and false if none has been collected.
	FieldQuantiles(vertexType, fieldName string) ([]string, bool)
}

// fieldKey identifies a (vertex type, field name) pair.
type fieldKey struct {
	vertexType string
	fieldName  string
}

// LocalStatistics is an in-memory [Statistics] implementation, the Go
// analogue of the reference compiler's test fixture of the same name: a flat
// map of class counts plus an optional map of field quantile samples.
type LocalStatistics struct {
	ClassCounts    map[string]int64
	QuantileValues map[fieldKey][]string
}

// NewLocalStatistics builds a LocalStatistics from class counts alone, with
// no field quantiles.
func NewLocalStatistics(classCounts map[string]int64) *LocalStatistics {
	return &LocalStatistics{ClassCounts: classCounts}
}

// WithFieldQuantiles returns a copy of s with the quantile sample for
// (vertexType, fieldName) set to values (each the field's canonical text
// form). It does not mutate s.
func (s *LocalStatistics) WithFieldQuantiles(vertexType, fieldName string, values []string) *LocalStatistics {
	out := &LocalStatistics{
		ClassCounts:    s.ClassCounts,
		QuantileValues: make(map[fieldKey][]string, len(s.QuantileValues)+1),
	}
	for k, v := range s.QuantileValues {
		out.QuantileValues[k] = v
	}
	out.QuantileValues[fieldKey{vertexType, fieldName}] = values
	return out
}

func (s *LocalStatistics) ClassCount(vertexType string) (int64, bool) {
	if s == nil {
		return 0, false
	}
	n, ok := s.ClassCounts[vertexType]
	return n, ok
}

func (s *LocalStatistics) FieldQuantiles(vertexType, fieldName string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.QuantileValues[fieldKey{vertexType, fieldName}]
	return v, ok
}

// SchemaInfo bundles the schema graph with the planner hints and statistics
// the pagination core needs: which field paginates each vertex type, which
// of those fields are UUID-v4, and the Go-native analogue of the reference
// compiler's type_equivalence_hints (subtype name -> list of equivalent
// supertype names).
type SchemaInfo struct {
	Graph                *SchemaGraph
	Statistics           Statistics
	PaginationKeys       map[string]string
	UUID4Fields          map[string]map[string]struct{}
	TypeEquivalenceHints map[string][]string
}

// PaginationField returns the field chosen to paginate vertexType, and false
// if no pagination key has been configured for it.
func (s *SchemaInfo) PaginationField(vertexType string) (string, bool) {
	f, ok := s.PaginationKeys[vertexType]
	return f, ok
}

// IsUUID4Field reports whether fieldName on vertexType is a UUID-v4 field.
func (s *SchemaInfo) IsUUID4Field(vertexType, fieldName string) bool {
	fields, ok := s.UUID4Fields[vertexType]
	if !ok {
		return false
	}
	_, ok = fields[fieldName]
	return ok
}

// FieldKind reports the value-space domain of vertexType.fieldName: KindUUID
// if it is registered in UUID4Fields, otherwise derived from the field's
// SQL-level type in the schema graph (ariga.io/atlas's IntegerType maps to
// KindInt, TimeType to KindDatetime).
func (s *SchemaInfo) FieldKind(vertexType, fieldName string) (valuespace.Kind, error) {
	if s.IsUUID4Field(vertexType, fieldName) {
		return valuespace.KindUUID, nil
	}
	if s.Graph == nil {
		return 0, fmt.Errorf("schemainfo: no schema graph configured")
	}
	v, ok := s.Graph.Vertex(vertexType)
	if !ok {
		return 0, fmt.Errorf("schemainfo: vertex type %q not found", vertexType)
	}
	f, ok := v.Field(fieldName)
	if !ok {
		return 0, fmt.Errorf("schemainfo: field %q not found on vertex type %q", fieldName, vertexType)
	}
	if f.Type == nil {
		return 0, fmt.Errorf("schemainfo: field %q has no SQL type", fieldName)
	}
	switch f.Type.Type.(type) {
	case *schema.IntegerType:
		return valuespace.KindInt, nil
	case *schema.TimeType:
		return valuespace.KindDatetime, nil
	default:
		return 0, fmt.Errorf("schemainfo: field %q has unsupported SQL type %T for pagination", fieldName, f.Type.Type)
	}
}

// Validate reports a SchemaMismatch-shaped error if vertexType/fieldName is
// not a real field on a real vertex type in the schema graph.
func (s *SchemaInfo) Validate(vertexType, fieldName string) error {
	if s.Graph == nil {
		return fmt.Errorf("schemainfo: no schema graph configured")
	}
	if !s.Graph.HasField(vertexType, fieldName) {
		return fmt.Errorf("schemainfo: field %q not found on vertex type %q", fieldName, vertexType)
	}
	return nil
}
