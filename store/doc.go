// Package store provides the persistent backing for the settings provider.
//
// A Store holds one record per tenant, where a record is a flat mapping of
// settings field names to msgpack-encoded values. Stores perform whole-field
// replacement only; merge semantics for structured values belong to the
// provider. The tenant-less "global" scope is persisted under the reserved
// key "0", an encoding private to this package.
//
// Three implementations are provided: NewMemory (tests, ephemeral hosts),
// NewSQLite (single-node persistence via modernc.org/sqlite) and NewRedis
// (shared persistence, one hash per tenant).
package store
