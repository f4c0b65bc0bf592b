// Package valuespace supplies an ordered, interpolable value space for each
// field type the pagination core can partition on: integers, datetimes, and
// UUID-v4 values.
//
// A [Value] is a small closed interface — the idiomatic Go stand-in for the
// tagged variant the wider design calls for — implemented by exactly three
// concrete types: [IntValue], [DatetimeValue], and [UUIDValue]. Package-level
// functions ([Interpolate], [Less], [CanonicalText], [FromCanonicalText])
// dispatch on the concrete type rather than exposing per-type arithmetic, so
// callers in [github.com/syssam/gqlpaginate/quantile] and
// [github.com/syssam/gqlpaginate/paramgen] can stay generic over field kind.
//
// Canonical textual forms follow the conventions used across the rest of the
// GraphQL-to-database compiler: UUIDs are lowercase, dashed 8-4-4-4-12;
// datetimes are ISO-8601 with microsecond precision preserved. Both are
// produced via gqlgen's runtime scalar codecs (graphql.MarshalUUID /
// graphql.MarshalTime) rather than hand-rolled formatting, so the pagination
// core agrees byte-for-byte with however the rest of the compiler serializes
// the same scalars over the wire.
package valuespace
