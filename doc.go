// Package settings implements a write-through settings cache for multi-tenant
// host applications.
//
// A Provider maps tenant identity to a settings document, serving all reads
// from memory and persisting writes through a store.Store backend. Writes
// update the cache synchronously before the store is touched, so a store
// failure leaves the cache ahead of the store rather than rolling back.
// Callers should treat a failed write as "applied locally, persistence
// uncertain" and may simply retry.
//
// Structured values merge deeply on repeated Set calls (see the merge
// package); scalars, strings and arrays replace wholesale. The tenant-less
// Global scope holds fallback settings that apply application-wide.
//
// The propagate package subscribes to host lifecycle events and pushes cached
// settings onto live host objects as tenants join and modules register.
package settings
