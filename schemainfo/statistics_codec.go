package schemainfo

import "github.com/vmihailenco/msgpack/v5"

// statisticsWire is the msgpack-friendly representation of LocalStatistics:
// msgpack has no native support for a struct-keyed map, so the quantile map
// is flattened to a list of entries, each carrying its vertex type and field
// name alongside the values.
type statisticsWire struct {
	ClassCounts map[string]int64 `msgpack:"class_counts"`
	Quantiles   []quantileEntry  `msgpack:"field_quantiles"`
}

type quantileEntry struct {
	VertexType string   `msgpack:"vertex_type"`
	FieldName  string   `msgpack:"field_name"`
	Values     []string `msgpack:"values"`
}

// MarshalBinary implements encoding.BinaryMarshaler, letting a precomputed
// LocalStatistics be cached or shipped between processes rather than
// recomputed on every run.
func (s *LocalStatistics) MarshalBinary() ([]byte, error) {
	wire := statisticsWire{
		ClassCounts: s.ClassCounts,
		Quantiles:   make([]quantileEntry, 0, len(s.QuantileValues)),
	}
	for k, v := range s.QuantileValues {
		wire.Quantiles = append(wire.Quantiles, quantileEntry{
			VertexType: k.vertexType,
			FieldName:  k.fieldName,
			Values:     v,
		})
	}
	return msgpack.Marshal(wire)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *LocalStatistics) UnmarshalBinary(data []byte) error {
	var wire statisticsWire
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.ClassCounts = wire.ClassCounts
	s.QuantileValues = make(map[fieldKey][]string, len(wire.Quantiles))
	for _, entry := range wire.Quantiles {
		s.QuantileValues[fieldKey{entry.VertexType, entry.FieldName}] = entry.Values
	}
	return nil
}
