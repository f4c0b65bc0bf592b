package quantile

import "github.com/syssam/gqlpaginate/valuespace"

// Required returns the minimum sample length a non-UUID field needs before
// the engine will produce thresholds for an n-way split: 2n+1.
func Required(n int) int {
	return 2*n + 1
}

// Sufficient reports whether a sample of length k is enough to partition
// into n buckets.
func Sufficient(k, n int) bool {
	return k >= Required(n)
}

// Thresholds returns up to n-1 threshold values splitting sample into n
// buckets of approximately equal count, in strictly increasing order.
//
// The walk takes a fixed step of ceil((len(sample)-1)/n) samples per
// threshold (rather than re-deriving a fresh i/n fraction for every i): this
// reproduces the stepped, left-biased boundary positions the rest of the
// compiler already relies on, including in the presence of an existing
// filter that narrows the sample beforehand (see paramgen.Generate).
// Consecutive duplicate values are skipped, so fewer than n-1 thresholds may
// be returned in pathological distributions. Thresholds returns nil if
// sample is not [Sufficient] for n.
func Thresholds(sample []valuespace.Value, n int) []valuespace.Value {
	if n < 2 {
		return nil
	}
	k := len(sample)
	if !Sufficient(k, n) {
		return nil
	}

	step := ceilDiv(k-1, n)

	out := make([]valuespace.Value, 0, n-1)
	for i := 1; i <= n-1; i++ {
		idx := i*step + 1
		if idx >= k {
			break
		}
		candidate := sample[idx]
		if len(out) > 0 && equalValues(out[len(out)-1], candidate) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

func equalValues(a, b valuespace.Value) bool {
	return !a.Less(b) && !b.Less(a)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// UUIDThresholds returns the n-1 analytic UUID-v4 quantile boundaries of the
// interval [lo, hi], computed as the exact i/n fractions of the interval via
// [valuespace.InterpolateUUIDFraction]. Consecutive duplicates (possible
// only when the interval is too narrow to hold n distinct UUIDs) are
// skipped.
func UUIDThresholds(lo, hi valuespace.UUIDValue, n int) []valuespace.Value {
	if n < 2 {
		return nil
	}
	out := make([]valuespace.Value, 0, n-1)
	for i := int64(1); i < int64(n); i++ {
		candidate := valuespace.InterpolateUUIDFraction(lo, hi, i, int64(n))
		if len(out) > 0 && equalValues(out[len(out)-1], candidate) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
