package paramgen

import (
	"fmt"
	"iter"
	"slices"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gqlpaginate/gqlast"
	"github.com/syssam/gqlpaginate/planning"
	"github.com/syssam/gqlpaginate/quantile"
	"github.com/syssam/gqlpaginate/schemainfo"
	"github.com/syssam/gqlpaginate/valuespace"
)

// Generate computes the N-1 threshold values (N =
// plan.NumberOfSubdivisions) that partition plan's pagination field, given
// the query's current parameter bindings and any existing @filter
// directives already narrowing that field. Thresholds are produced in
// strictly increasing order with consecutive duplicates removed, so the
// returned sequence may yield fewer than N-1 values.
func Generate(info *schemainfo.SchemaInfo, doc *gqlast.Document, parameters map[string]any, plan planning.VertexPartitionPlan) (iter.Seq[valuespace.Value], error) {
	if len(plan.QueryPath) == 0 {
		return nil, fmt.Errorf("paramgen: empty query_path in plan")
	}
	vertexType := plan.VertexType

	kind, err := info.FieldKind(vertexType, plan.PaginationField)
	if err != nil {
		return nil, fmt.Errorf("paramgen: %w", err)
	}

	selectionSet, err := gqlast.LocateVertex(doc, plan.QueryPath)
	if err != nil {
		return nil, fmt.Errorf("paramgen: %w", err)
	}

	window, err := existingBounds(selectionSet, plan.PaginationField, kind, parameters)
	if err != nil {
		return nil, err
	}

	var thresholds []valuespace.Value
	if kind == valuespace.KindUUID {
		lo, hi := valuespace.FullUUIDSpace()
		if window.lo != nil {
			lo = window.lo.value.(valuespace.UUIDValue)
		}
		if window.hi != nil {
			hi = window.hi.value.(valuespace.UUIDValue)
		}
		thresholds = quantile.UUIDThresholds(lo, hi, plan.NumberOfSubdivisions)
	} else {
		var sample []string
		var ok bool
		if info.Statistics != nil {
			sample, ok = info.Statistics.FieldQuantiles(vertexType, plan.PaginationField)
		}
		if !ok {
			return nil, fmt.Errorf("paramgen: no quantile sample for %s.%s", vertexType, plan.PaginationField)
		}
		values := make([]valuespace.Value, len(sample))
		for i, text := range sample {
			v, err := valuespace.FromCanonicalText(kind, text)
			if err != nil {
				return nil, fmt.Errorf("paramgen: %w", err)
			}
			values[i] = v
		}
		thresholds = quantile.Thresholds(narrowSample(values, window), plan.NumberOfSubdivisions)
	}

	return func(yield func(valuespace.Value) bool) {
		for _, t := range thresholds {
			if !yield(t) {
				return
			}
		}
	}, nil
}

// Collect drains seq into a slice, a convenience for callers (tests, the
// top-level orchestrator) that only need the materialized thresholds.
func Collect(seq iter.Seq[valuespace.Value]) []valuespace.Value {
	return slices.Collect(seq)
}

// edge is one side of a narrowed range: a boundary value and whether it is
// inclusive (">=", "<=") or exclusive (">", "<").
type edge struct {
	value     valuespace.Value
	inclusive bool
}

// window is the narrowed [lo, hi] range implied by a field's existing
// filters. A nil edge means "unbounded on that side."
type window struct {
	lo, hi *edge
}

// existingBounds inspects field's existing @filter directives and narrows
// the full value-space range accordingly. An operator whose operand
// references a parameter with no binding in parameters is ignored, per
// spec: narrowing only applies to literal or already-bound operands.
func existingBounds(set ast.SelectionSet, fieldName string, kind valuespace.Kind, parameters map[string]any) (window, error) {
	field, ok := gqlast.FindField(set, fieldName)
	if !ok {
		return window{}, nil
	}

	var w window
	for _, dir := range gqlast.FilterDirectives(field) {
		opName, rawValues, ok := gqlast.FilterArgument(dir)
		if !ok {
			continue
		}
		operands := make([]valuespace.Value, 0, len(rawValues))
		for _, raw := range rawValues {
			v, resolved, err := resolveOperand(raw, kind, parameters)
			if err != nil {
				return window{}, err
			}
			if !resolved {
				continue
			}
			operands = append(operands, v)
		}
		if len(operands) == 0 {
			continue
		}

		switch opName {
		case "<":
			w.hi = tighterUpper(w.hi, &edge{operands[0], false})
		case "<=":
			w.hi = tighterUpper(w.hi, &edge{operands[0], true})
		case ">":
			w.lo = tighterLower(w.lo, &edge{operands[0], false})
		case ">=":
			w.lo = tighterLower(w.lo, &edge{operands[0], true})
		case "=":
			w.lo = tighterLower(w.lo, &edge{operands[0], true})
			w.hi = tighterUpper(w.hi, &edge{operands[0], true})
		case "between":
			if len(operands) >= 2 {
				w.lo = tighterLower(w.lo, &edge{operands[0], true})
				w.hi = tighterUpper(w.hi, &edge{operands[1], true})
			}
		}
	}
	return w, nil
}

// resolveOperand parses raw (either a literal canonical-text value or a
// "$name" parameter reference) into a Value. A parameter reference with no
// binding present in parameters resolves to (nil, false, nil): present but
// unusable for narrowing.
func resolveOperand(raw string, kind valuespace.Kind, parameters map[string]any) (valuespace.Value, bool, error) {
	name, isParam := gqlast.ParamReference(raw)
	if !isParam {
		v, err := valuespace.FromCanonicalText(kind, raw)
		if err != nil {
			return nil, false, fmt.Errorf("paramgen: %w", err)
		}
		return v, true, nil
	}
	bound, ok := parameters[name]
	if !ok {
		return nil, false, nil
	}
	v, err := valuespace.FromAny(kind, bound)
	if err != nil {
		return nil, false, fmt.Errorf("paramgen: %w", err)
	}
	return v, true, nil
}

func tighterUpper(current, candidate *edge) *edge {
	if current == nil || candidate.value.Less(current.value) {
		return candidate
	}
	return current
}

func tighterLower(current, candidate *edge) *edge {
	if current == nil || current.value.Less(candidate.value) {
		return candidate
	}
	return current
}

// narrowSample restricts sample (ordered ascending) to the range implied by
// w, via a bisect-left/bisect-right trim: an exclusive upper bound excludes
// samples equal to it (bisect-left), an inclusive one keeps them
// (bisect-right), and symmetrically for the lower bound.
func narrowSample(sample []valuespace.Value, w window) []valuespace.Value {
	lo, hi := 0, len(sample)
	if w.lo != nil {
		if w.lo.inclusive {
			lo = bisectLeft(sample, w.lo.value)
		} else {
			lo = bisectRight(sample, w.lo.value)
		}
	}
	if w.hi != nil {
		if w.hi.inclusive {
			hi = bisectRight(sample, w.hi.value)
		} else {
			hi = bisectLeft(sample, w.hi.value)
		}
	}
	if lo > hi {
		lo = hi
	}
	return sample[lo:hi]
}

func bisectLeft(sample []valuespace.Value, v valuespace.Value) int {
	lo, hi := 0, len(sample)
	for lo < hi {
		mid := (lo + hi) / 2
		if sample[mid].Less(v) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func bisectRight(sample []valuespace.Value, v valuespace.Value) int {
	lo, hi := 0, len(sample)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.Less(sample[mid]) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
