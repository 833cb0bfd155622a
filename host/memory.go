package host

import "sync"

// MemoryTenant is an in-memory Tenant.
type MemoryTenant struct {
	TenantID string

	mutex  sync.Mutex
	prefix string
}

var _ Tenant = (*MemoryTenant)(nil)

func (t *MemoryTenant) ID() string {
	return t.TenantID
}

func (t *MemoryTenant) SetPrefix(prefix string) {
	t.mutex.Lock()
	t.prefix = prefix
	t.mutex.Unlock()
}

// Prefix returns the tenant's effective command prefix.
func (t *MemoryTenant) Prefix() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.prefix
}

// MemoryToggleable is an in-memory Module or Category.
type MemoryToggleable struct {
	ToggleID string

	mutex     sync.Mutex
	global    bool
	globalSet bool
	perTenant map[string]bool
}

var (
	_ Module   = (*MemoryToggleable)(nil)
	_ Category = (*MemoryToggleable)(nil)
)

func (m *MemoryToggleable) ID() string {
	return m.ToggleID
}

func (m *MemoryToggleable) SetEnabled(tenant string, enabled bool) {
	m.mutex.Lock()
	if m.perTenant == nil {
		m.perTenant = make(map[string]bool)
	}
	m.perTenant[tenant] = enabled
	m.mutex.Unlock()
}

func (m *MemoryToggleable) SetEnabledGlobal(enabled bool) {
	m.mutex.Lock()
	m.global = enabled
	m.globalSet = true
	m.mutex.Unlock()
}

// Enabled reports the flag for a tenant. Falls back to the global flag, then
// to true (everything is enabled until a setting says otherwise).
func (m *MemoryToggleable) Enabled(tenant string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if enabled, ok := m.perTenant[tenant]; ok {
		return enabled
	}
	if m.globalSet {
		return m.global
	}
	return true
}

// EnabledGlobal reports the global flag and whether it has been set.
func (m *MemoryToggleable) EnabledGlobal() (bool, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.global, m.globalSet
}

// MemoryHost is an in-memory Host implementation, for tests and for embedding
// the provider in hosts without their own registries.
type MemoryHost struct {
	mutex         sync.Mutex
	tenants       map[string]*MemoryTenant
	modules       []*MemoryToggleable
	categories    []*MemoryToggleable
	defaultPrefix string
}

var _ Host = (*MemoryHost)(nil)

// NewMemory returns an empty MemoryHost.
func NewMemory() *MemoryHost {
	return &MemoryHost{
		tenants: make(map[string]*MemoryTenant),
	}
}

// AddTenant registers a tenant and returns it.
func (h *MemoryHost) AddTenant(id string) *MemoryTenant {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	t := &MemoryTenant{TenantID: id}
	h.tenants[id] = t
	return t
}

// RemoveTenant drops a tenant from the registry.
func (h *MemoryHost) RemoveTenant(id string) {
	h.mutex.Lock()
	delete(h.tenants, id)
	h.mutex.Unlock()
}

// AddModule registers a module and returns it.
func (h *MemoryHost) AddModule(id string) *MemoryToggleable {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	m := &MemoryToggleable{ToggleID: id}
	h.modules = append(h.modules, m)
	return m
}

// AddCategory registers a category and returns it.
func (h *MemoryHost) AddCategory(id string) *MemoryToggleable {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	c := &MemoryToggleable{ToggleID: id}
	h.categories = append(h.categories, c)
	return c
}

func (h *MemoryHost) Tenant(id string) (Tenant, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	t, ok := h.tenants[id]
	return t, ok
}

func (h *MemoryHost) Modules() []Module {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	mods := make([]Module, len(h.modules))
	for i, m := range h.modules {
		mods[i] = m
	}
	return mods
}

func (h *MemoryHost) Categories() []Category {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	cats := make([]Category, len(h.categories))
	for i, c := range h.categories {
		cats[i] = c
	}
	return cats
}

func (h *MemoryHost) SetDefaultPrefix(prefix string) {
	h.mutex.Lock()
	h.defaultPrefix = prefix
	h.mutex.Unlock()
}

// DefaultPrefix returns the application-wide command prefix.
func (h *MemoryHost) DefaultPrefix() string {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.defaultPrefix
}
