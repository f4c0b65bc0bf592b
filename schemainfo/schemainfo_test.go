package schemainfo_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlpaginate/schemainfo"
)

func testGraph() *schemainfo.SchemaGraph {
	return schemainfo.NewSchemaGraph(
		schemainfo.VertexType{
			Name: "Animal",
			Fields: []schemainfo.FieldInfo{
				{Name: "uuid", Type: schemainfo.StringColumn("uuid")},
				{Name: "name", Type: schemainfo.StringColumn("varchar(255)")},
			},
		},
		schemainfo.VertexType{
			Name: "Species",
			Fields: []schemainfo.FieldInfo{
				{Name: "limbs", Type: schemainfo.IntegerColumn("int")},
			},
		},
	)
}

func TestSchemaGraphHasField(t *testing.T) {
	g := testGraph()
	assert.True(t, g.HasField("Animal", "uuid"))
	assert.False(t, g.HasField("Animal", "limbs"))
	assert.False(t, g.HasField("Unknown", "uuid"))
}

func TestSchemaInfoValidate(t *testing.T) {
	info := &schemainfo.SchemaInfo{Graph: testGraph()}
	assert.NoError(t, info.Validate("Animal", "uuid"))
	assert.Error(t, info.Validate("Animal", "limbs"))
}

func TestLocalStatisticsClassCountAndQuantiles(t *testing.T) {
	stats := schemainfo.NewLocalStatistics(map[string]int64{"Animal": 1000})
	n, ok := stats.ClassCount("Animal")
	require.True(t, ok)
	assert.Equal(t, int64(1000), n)

	_, ok = stats.FieldQuantiles("Species", "limbs")
	assert.False(t, ok)

	withQuantiles := stats.WithFieldQuantiles("Species", "limbs", []string{"0", "1", "2"})
	values, ok := withQuantiles.FieldQuantiles("Species", "limbs")
	require.True(t, ok)
	assert.Equal(t, []string{"0", "1", "2"}, values)

	// WithFieldQuantiles must not mutate the receiver.
	_, ok = stats.FieldQuantiles("Species", "limbs")
	assert.False(t, ok)
}

func TestConfigRoundTripYAML(t *testing.T) {
	cfg := &schemainfo.Config{}
	cfg.SetPaginationKey("Animal", "uuid")
	cfg.AddUUID4Field("Animal", "uuid")
	cfg.AddUUID4Field("Animal", "uuid") // duplicate, must not double up

	path := filepath.Join(t.TempDir(), "pagination.yml")
	require.NoError(t, schemainfo.SaveConfig(path, cfg))

	loaded, err := schemainfo.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "uuid", loaded.PaginationKeys["Animal"])
	assert.Equal(t, []string{"uuid"}, loaded.UUID4Fields["Animal"])
}

func TestLoadConfigMissingFileReturnsEmpty(t *testing.T) {
	cfg, err := schemainfo.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.PaginationKeys)
}

func TestConfigApplyTo(t *testing.T) {
	cfg := &schemainfo.Config{}
	cfg.SetPaginationKey("Animal", "uuid")
	cfg.AddUUID4Field("Animal", "uuid")

	info := &schemainfo.SchemaInfo{}
	cfg.ApplyTo(info)

	assert.Equal(t, "uuid", info.PaginationKeys["Animal"])
	assert.True(t, info.IsUUID4Field("Animal", "uuid"))
	assert.False(t, info.IsUUID4Field("Animal", "name"))
}

func TestLocalStatisticsMsgpackRoundTrip(t *testing.T) {
	stats := schemainfo.NewLocalStatistics(map[string]int64{"Species": 1000}).
		WithFieldQuantiles("Species", "limbs", []string{"0", "1", "2"})

	data, err := stats.MarshalBinary()
	require.NoError(t, err)

	var decoded schemainfo.LocalStatistics
	require.NoError(t, decoded.UnmarshalBinary(data))

	n, ok := decoded.ClassCount("Species")
	require.True(t, ok)
	assert.Equal(t, int64(1000), n)

	values, ok := decoded.FieldQuantiles("Species", "limbs")
	require.True(t, ok)
	assert.Equal(t, []string{"0", "1", "2"}, values)
}
