// Package paramgen computes the threshold values for a chosen vertex
// partition: the value-space points that split a pagination field's range
// into approximately equal buckets.
//
// [Generate] narrows the field's full range by any existing @filter the
// query already carries on that field — a bisect-left/bisect-right trim of
// the quantile sample for non-UUID fields, an interval replacement for UUID
// fields — before handing the narrowed range to
// [github.com/syssam/gqlpaginate/quantile]. Results are returned as a Go
// 1.23 range-over-func iterator, the idiomatic stand-in for a finite lazy
// sequence.
package paramgen
