// Package schemainfo describes the external, read-only inputs the pagination
// core consumes: the schema graph (vertex types, fields, SQL-level typing via
// ariga.io/atlas), runtime statistics (row counts and per-field quantile
// samples), and the two planner hints — which field paginates each vertex
// type, and which of those fields are UUID-v4.
//
// Nothing in this package is computed by the pagination core itself; it is
// assumed supplied by the wider compiler (schema introspection, a statistics
// collector); no package in this module connects to a database. [Config] exists
// only to let the pagination hints (pagination_keys, uuid4_fields) be
// overridden from a checked-in YAML file rather than hardcoded, mirroring a
// generator-bindings YAML sidecar file.
package schemainfo
