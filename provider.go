package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentuity/go-common/logger"
	"github.com/agentuity/settings/host"
	"github.com/agentuity/settings/store"
)

// Settings is the capability surface exposed to host application code. Host
// code depends on this interface, so alternate providers (or store backends)
// can be swapped in without touching the host.
type Settings interface {
	// Init bulk-loads the persistent store into the cache and pushes loaded
	// settings onto the host objects that currently exist. It must complete
	// before the propagator is attached.
	Init(ctx context.Context) error
	// Get returns the cached value for a tenant's key, or def when the
	// tenant or key is unknown. A stored false, 0 or "" is a real value,
	// not a miss.
	Get(ref any, key string, def any) (any, error)
	// Set merges value into the tenant's document, updates the cache
	// synchronously and then persists the merged field. The returned value
	// is the merged result. On a store failure the cache is already
	// updated; the error reports persistence only.
	Set(ctx context.Context, ref any, key string, value any) (any, error)
	// Delete removes one key. It fails with ErrNoEntry when the tenant has
	// no document (unlike Set, which lazily creates one). The bool result
	// reports whether the key was present; deleting a missing key is a
	// no-op on the store.
	Delete(ctx context.Context, ref any, key string) (any, bool, error)
	// Clear removes the tenant's entire document from cache and store.
	Clear(ctx context.Context, ref any) error
}

// Provider is the write-through settings provider: reads come from the
// in-memory cache, writes update the cache first and the store second, with
// no rollback on store failure.
type Provider struct {
	store store.Store
	host  host.Host
	log   logger.Logger
	cache *documentCache

	mutex       sync.Mutex
	initialized bool
}

var _ Settings = (*Provider)(nil)

// New returns a Provider over the given store and host registries. The host
// may be nil for cache-only use; propagation then becomes a no-op.
func New(st store.Store, h host.Host, log logger.Logger) *Provider {
	return &Provider{
		store: st,
		host:  h,
		log:   log.With(map[string]interface{}{"component": "settings"}),
		cache: newDocumentCache(),
	}
}

func (p *Provider) Init(ctx context.Context) error {
	p.mutex.Lock()
	if p.initialized {
		p.mutex.Unlock()
		return ErrAlreadyInitialized
	}
	p.mutex.Unlock()

	records, err := p.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}
	for _, rec := range records {
		p.cache.load(TenantID(rec.Tenant), rec.Document)
	}
	p.log.Debug("loaded settings for %d tenants", len(records))

	// Push loaded settings onto whatever host objects already exist.
	// ApplyAll skips tenants the host does not know yet; their settings
	// stay cached until they become active.
	p.ApplyAll(Global)
	for _, id := range p.cache.ids() {
		if id != Global {
			p.ApplyAll(id)
		}
	}

	p.mutex.Lock()
	p.initialized = true
	p.mutex.Unlock()
	return nil
}

// Initialized reports whether Init has completed. The propagator refuses to
// attach before then, so listeners never observe a partially populated cache.
func (p *Provider) Initialized() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.initialized
}

func (p *Provider) Get(ref any, key string, def any) (any, error) {
	id, err := ResolveTenantID(ref)
	if err != nil {
		return nil, err
	}
	val, ok := p.cache.getKey(id, key)
	if !ok {
		return def, nil
	}
	return val, nil
}

func (p *Provider) Set(ctx context.Context, ref any, key string, value any) (any, error) {
	id, err := ResolveTenantID(ref)
	if err != nil {
		return nil, err
	}
	merged := p.cache.upsertKey(id, key, value)
	if err := p.store.UpsertField(ctx, string(id), key, merged); err != nil {
		return merged, fmt.Errorf("settings: persist %q for tenant %q: %w", key, id, err)
	}
	return merged, nil
}

func (p *Provider) Delete(ctx context.Context, ref any, key string) (any, bool, error) {
	id, err := ResolveTenantID(ref)
	if err != nil {
		return nil, false, err
	}
	removed, existed, found := p.cache.removeKey(id, key)
	if !found {
		return nil, false, fmt.Errorf("tenant %q: %w", id, ErrNoEntry)
	}
	if err := p.store.UnsetField(ctx, string(id), key); err != nil {
		return removed, existed, fmt.Errorf("settings: unset %q for tenant %q: %w", key, id, err)
	}
	return removed, existed, nil
}

func (p *Provider) Clear(ctx context.Context, ref any) error {
	id, err := ResolveTenantID(ref)
	if err != nil {
		return err
	}
	p.cache.drop(id)
	if err := p.store.DeleteRecord(ctx, string(id)); err != nil {
		return fmt.Errorf("settings: clear tenant %q: %w", id, err)
	}
	return nil
}

// ApplyAll pushes every cached setting for one tenant onto the live host
// objects. Global settings always apply; tenant settings apply only when the
// host currently knows the tenant.
func (p *Provider) ApplyAll(id TenantID) {
	if p.host == nil {
		return
	}
	global := id == Global
	if !global {
		if _, ok := p.host.Tenant(string(id)); !ok {
			return
		}
	}
	doc, ok := p.cache.snapshot(id)
	if !ok {
		return
	}
	for key, val := range doc {
		host.ApplySetting(p.host, global, string(id), key, val)
	}
}

// ApplyModule pushes the module's enablement setting onto it for the global
// scope and for every cached tenant the host knows. Called when a module is
// registered after settings were loaded.
func (p *Provider) ApplyModule(moduleID string) {
	p.applyKey(host.ModuleKey(moduleID))
}

// ApplyCategory is ApplyModule for categories.
func (p *Provider) ApplyCategory(categoryID string) {
	p.applyKey(host.CategoryKey(categoryID))
}

func (p *Provider) applyKey(key string) {
	if p.host == nil {
		return
	}
	if val, ok := p.cache.getKey(Global, key); ok {
		host.ApplySetting(p.host, true, "", key, val)
	}
	for _, id := range p.cache.ids() {
		if id == Global {
			continue
		}
		if _, ok := p.host.Tenant(string(id)); !ok {
			continue
		}
		if val, ok := p.cache.getKey(id, key); ok {
			host.ApplySetting(p.host, false, string(id), key, val)
		}
	}
}
