// Package quantile turns an ordered sample of a field's values into the
// thresholds that split it into N buckets of approximately equal count.
//
// [Thresholds] implements the sample-index selection: for a subdivision
// count N and a sample of length K, it walks a fixed step
// (ceil((K-1)/N)) through the sample, skipping consecutive duplicates so
// dense regions never yield a repeated boundary. [Sufficient] and [Required]
// expose the K >= 2N+1 sufficiency check so the pagination planner and the
// parameter generator can share one definition of "enough samples."
// [UUIDThresholds] implements the analytic UUID-v4 case: instead of reading
// from a sample, it computes the canonical i/N boundaries of the 128-bit
// value space directly via [valuespace.InterpolateUUIDFraction].
package quantile
