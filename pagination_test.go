package pagination_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pagination "github.com/syssam/gqlpaginate"
	"github.com/syssam/gqlpaginate/gqlast"
	"github.com/syssam/gqlpaginate/schemainfo"
)

type fixedEstimator struct {
	rows float64
	err  error
}

func (e fixedEstimator) Estimate(ctx context.Context, info *schemainfo.SchemaInfo, queryString string, parameters map[string]any) (float64, error) {
	return e.rows, e.err
}

func animalSchemaInfo() *schemainfo.SchemaInfo {
	return &schemainfo.SchemaInfo{
		PaginationKeys: map[string]string{"Animal": "uuid"},
		UUID4Fields:    map[string]map[string]struct{}{"Animal": {"uuid": {}}},
	}
}

func TestPaginateQueryUUIDFirstPage(t *testing.T) {
	// desiredPageRowCount picked so estimate/desired yields exactly 4 pages,
	// reusing the UUID four-way split verified in the quantile and paramgen
	// test suites.
	query := `{ Animal { name @output(out_name: "animal_name") } }`
	first, remainder, err := pagination.PaginateQuery(
		context.Background(), animalSchemaInfo(), fixedEstimator{rows: 400}, query, nil, 100,
	)
	require.NoError(t, err)

	firstDoc, err := gqlast.Parse(first.QueryString)
	require.NoError(t, err)
	set, err := gqlast.LocateVertex(firstDoc, []string{"Animal"})
	require.NoError(t, err)
	uuidField, ok := gqlast.FindField(set, "uuid")
	require.True(t, ok)
	opName, values, ok := gqlast.FilterArgument(uuidField.Directives[0])
	require.True(t, ok)
	assert.Equal(t, "<", opName)
	paramName, ok := gqlast.ParamReference(values[0])
	require.True(t, ok)
	assert.Equal(t, "40000000-0000-0000-0000-000000000000", first.Parameters[paramName])

	remDoc, err := gqlast.Parse(remainder.QueryString)
	require.NoError(t, err)
	remSet, err := gqlast.LocateVertex(remDoc, []string{"Animal"})
	require.NoError(t, err)
	remUUIDField, ok := gqlast.FindField(remSet, "uuid")
	require.True(t, ok)
	opName, values, ok = gqlast.FilterArgument(remUUIDField.Directives[0])
	require.True(t, ok)
	assert.Equal(t, ">=", opName)
	remParamName, ok := gqlast.ParamReference(values[0])
	require.True(t, ok)
	assert.Equal(t, first.Parameters[paramName], remainder.Parameters[remParamName])
}

func TestPaginateQuerySinglePageIsFixedPoint(t *testing.T) {
	query := `{ Animal { name @output(out_name: "animal_name") } }`
	first, remainder, err := pagination.PaginateQuery(
		context.Background(), animalSchemaInfo(), fixedEstimator{rows: 50}, query, nil, 100,
	)
	require.NoError(t, err)
	assert.Equal(t, query, first.QueryString)
	assert.Equal(t, pagination.QueryStringWithParameters{}, remainder)
}

func TestPaginateQueryUnpaginableFieldReturnsOriginal(t *testing.T) {
	query := `{ Plant { name @output(out_name: "plant_name") } }`
	info := &schemainfo.SchemaInfo{}
	first, remainder, err := pagination.PaginateQuery(
		context.Background(), info, fixedEstimator{rows: 10000}, query, nil, 10,
	)
	require.NoError(t, err)
	assert.Equal(t, query, first.QueryString)
	assert.Equal(t, pagination.QueryStringWithParameters{}, remainder)
}

func TestPaginateQueryEstimatorError(t *testing.T) {
	query := `{ Animal { name @output(out_name: "animal_name") } }`
	_, _, err := pagination.PaginateQuery(
		context.Background(), animalSchemaInfo(), fixedEstimator{err: assertError("boom")}, query, nil, 100,
	)
	require.Error(t, err)
}

type assertError string

func (e assertError) Error() string { return string(e) }
