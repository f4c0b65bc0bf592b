package paramgen_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlpaginate/gqlast"
	"github.com/syssam/gqlpaginate/paramgen"
	"github.com/syssam/gqlpaginate/planning"
	"github.com/syssam/gqlpaginate/schemainfo"
	"github.com/syssam/gqlpaginate/valuespace"
)

func rangeStrings(n int, step int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i * step)
	}
	return out
}

func canonicalTexts(t *testing.T, values []valuespace.Value) []string {
	t.Helper()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.CanonicalText()
	}
	return out
}

func TestGenerateIntegerFourWay(t *testing.T) {
	doc, err := gqlast.Parse(`{ Species { name @output(out_name: "species_name") } }`)
	require.NoError(t, err)

	info := &schemainfo.SchemaInfo{
		Graph: schemainfo.NewSchemaGraph(schemainfo.VertexType{
			Name:   "Species",
			Fields: []schemainfo.FieldInfo{{Name: "limbs", Type: schemainfo.IntegerColumn("int")}},
		}),
		Statistics: schemainfo.NewLocalStatistics(nil).
			WithFieldQuantiles("Species", "limbs", rangeStrings(101, 1)),
	}
	plan := planning.VertexPartitionPlan{QueryPath: []string{"Species"}, VertexType: "Species", PaginationField: "limbs", NumberOfSubdivisions: 4}

	seq, err := paramgen.Generate(info, doc, nil, plan)
	require.NoError(t, err)

	got := canonicalTexts(t, paramgen.Collect(seq))
	assert.Equal(t, []string{"26", "51", "76"}, got)
}

func TestGenerateIntegerWithExistingFilter(t *testing.T) {
	doc, err := gqlast.Parse(`{
  Species {
    limbs @filter(op_name: "<", value: ["$num_limbs"])
    name @output(out_name: "species_name")
  }
}`)
	require.NoError(t, err)

	info := &schemainfo.SchemaInfo{
		Graph: schemainfo.NewSchemaGraph(schemainfo.VertexType{
			Name:   "Species",
			Fields: []schemainfo.FieldInfo{{Name: "limbs", Type: schemainfo.IntegerColumn("int")}},
		}),
		Statistics: schemainfo.NewLocalStatistics(nil).
			WithFieldQuantiles("Species", "limbs", rangeStrings(101, 10)),
	}
	plan := planning.VertexPartitionPlan{QueryPath: []string{"Species"}, VertexType: "Species", PaginationField: "limbs", NumberOfSubdivisions: 4}

	seq, err := paramgen.Generate(info, doc, map[string]any{"num_limbs": 505}, plan)
	require.NoError(t, err)

	got := canonicalTexts(t, paramgen.Collect(seq))
	assert.Equal(t, []string{"140", "270", "400"}, got)
}

func TestGenerateUUIDFourWay(t *testing.T) {
	doc, err := gqlast.Parse(`{ Animal { name @output(out_name: "animal_name") } }`)
	require.NoError(t, err)

	info := &schemainfo.SchemaInfo{
		UUID4Fields: map[string]map[string]struct{}{"Animal": {"uuid": struct{}{}}},
	}
	plan := planning.VertexPartitionPlan{QueryPath: []string{"Animal"}, VertexType: "Animal", PaginationField: "uuid", NumberOfSubdivisions: 4}

	seq, err := paramgen.Generate(info, doc, nil, plan)
	require.NoError(t, err)

	got := canonicalTexts(t, paramgen.Collect(seq))
	assert.Equal(t, []string{
		"40000000-0000-0000-0000-000000000000",
		"80000000-0000-0000-0000-000000000000",
		"c0000000-0000-0000-0000-000000000000",
	}, got)
}

func TestGenerateDatetimeFourWay(t *testing.T) {
	doc, err := gqlast.Parse(`{ Event { name @output(out_name: "event_name") } }`)
	require.NoError(t, err)

	quantiles := make([]string, 101)
	for i := range quantiles {
		ts := time.Date(2000+i, 1, 1, 0, 0, 0, 0, time.UTC)
		quantiles[i] = valuespace.DatetimeValue(ts).CanonicalText()
	}

	info := &schemainfo.SchemaInfo{
		Graph: schemainfo.NewSchemaGraph(schemainfo.VertexType{
			Name:   "Event",
			Fields: []schemainfo.FieldInfo{{Name: "event_date", Type: schemainfo.TimeColumn("timestamp")}},
		}),
		Statistics: schemainfo.NewLocalStatistics(nil).
			WithFieldQuantiles("Event", "event_date", quantiles),
	}
	plan := planning.VertexPartitionPlan{QueryPath: []string{"Event"}, VertexType: "Event", PaginationField: "event_date", NumberOfSubdivisions: 4}

	seq, err := paramgen.Generate(info, doc, nil, plan)
	require.NoError(t, err)

	got := paramgen.Collect(seq)
	require.Len(t, got, 3)
	wantYears := []int{2026, 2051, 2076}
	for i, v := range got {
		dt := time.Time(v.(valuespace.DatetimeValue))
		assert.Equal(t, wantYears[i], dt.Year())
	}
}

func TestGenerateThroughInlineFragment(t *testing.T) {
	query := `{
  Species {
    out_Entity_Related {
      ... on Species {
        name @output(out_name: "species_name")
      }
    }
  }
}`
	doc, err := gqlast.Parse(query)
	require.NoError(t, err)

	info := &schemainfo.SchemaInfo{
		Graph: schemainfo.NewSchemaGraph(schemainfo.VertexType{
			Name:   "Species",
			Fields: []schemainfo.FieldInfo{{Name: "limbs", Type: schemainfo.IntegerColumn("int")}},
		}),
		Statistics: schemainfo.NewLocalStatistics(nil).
			WithFieldQuantiles("Species", "limbs", rangeStrings(101, 1)),
	}
	plan := planning.VertexPartitionPlan{
		QueryPath:            []string{"Species", "out_Entity_Related"},
		VertexType:           "Species",
		PaginationField:      "limbs",
		NumberOfSubdivisions: 4,
	}

	seq, err := paramgen.Generate(info, doc, nil, plan)
	require.NoError(t, err)

	got := canonicalTexts(t, paramgen.Collect(seq))
	assert.Equal(t, []string{"26", "51", "76"}, got)
}
