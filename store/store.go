package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Record is one persisted settings document for one tenant.
type Record struct {
	Tenant   string
	Document map[string]any
}

// Store is the persistent backing for the settings provider. One record per
// tenant, field-level writes. The provider owns merge semantics; stores only
// ever replace whole fields.
type Store interface {
	// LoadAll returns every persisted record.
	LoadAll(ctx context.Context) ([]Record, error)
	// UpsertField sets one field on a tenant's record, creating the record
	// if it does not exist.
	UpsertField(ctx context.Context, tenant, field string, value any) error
	// UnsetField removes one field from a tenant's record. Removing a field
	// that does not exist (or a record that does not exist) is a no-op.
	UnsetField(ctx context.Context, tenant, field string) error
	// DeleteRecord removes a tenant's record entirely.
	DeleteRecord(ctx context.Context, tenant string) error
	// Close shuts down the store.
	Close() error
}

const (
	// globalTenant is the provider-side name for the tenant-less scope.
	globalTenant = "global"
	// globalKey is its reserved on-disk key. Real tenant identifiers are
	// snowflake-style digit strings and are never "0".
	globalKey = "0"
)

// encodeTenant translates the provider's tenant name into its on-disk key.
// Stores are the only components aware of this encoding.
func encodeTenant(tenant string) string {
	if tenant == globalTenant {
		return globalKey
	}
	return tenant
}

func decodeTenant(key string) string {
	if key == globalKey {
		return globalTenant
	}
	return key
}

func encodeValue(val any) ([]byte, error) {
	data, err := msgpack.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("store: failed to marshal value: %w", err)
	}
	return data, nil
}

func decodeValue(data []byte) (any, error) {
	var val any
	if err := msgpack.Unmarshal(data, &val); err != nil {
		return nil, fmt.Errorf("store: failed to unmarshal value: %w", err)
	}
	return val, nil
}

// DefaultQueryTimeout is the per-operation timeout for store backends that
// perform I/O (SQLite, Redis). Prevents indefinite hangs on slow or
// unresponsive storage.
const DefaultQueryTimeout = 5 * time.Second

// DefaultPrefix is the key prefix used by the Redis backend.
const DefaultPrefix = "settings"

type config struct {
	queryTimeout time.Duration
	prefix       string
}

// Option configures a Store implementation.
type Option func(*config)

func defaultConfig() config {
	return config{
		queryTimeout: DefaultQueryTimeout,
		prefix:       DefaultPrefix,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithQueryTimeout sets the per-operation timeout for I/O-backed stores
// (SQLite, Redis). Defaults to DefaultQueryTimeout (5 seconds).
func WithQueryTimeout(d time.Duration) Option {
	return func(c *config) { c.queryTimeout = d }
}

// WithPrefix sets the key prefix for namespacing records.
// Applies to the Redis backend. Defaults to DefaultPrefix.
func WithPrefix(p string) Option {
	return func(c *config) { c.prefix = p }
}
