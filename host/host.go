package host

import "strings"

// Tenant is one live tenant known to the host application.
type Tenant interface {
	// ID returns the tenant's stable identifier, a digit-only string.
	ID() string
	// SetPrefix sets the tenant's effective command prefix.
	SetPrefix(prefix string)
}

// Module is a host command module with a mutable enablement flag, togglable
// per tenant or globally.
type Module interface {
	ID() string
	SetEnabled(tenant string, enabled bool)
	SetEnabledGlobal(enabled bool)
}

// Category is a host command category. Same toggle surface as Module.
type Category interface {
	ID() string
	SetEnabled(tenant string, enabled bool)
	SetEnabledGlobal(enabled bool)
}

// Host is the surface of the host application the settings provider consumes:
// a tenant registry, enumerable module and category registries, and the
// application-wide default prefix.
type Host interface {
	// Tenant looks up a currently active tenant by ID.
	Tenant(id string) (Tenant, bool)
	// Modules returns all registered modules.
	Modules() []Module
	// Categories returns all registered categories.
	Categories() []Category
	// SetDefaultPrefix sets the application-wide command prefix used when a
	// tenant has no override.
	SetDefaultPrefix(prefix string)
}

// Settings field names the provider pushes onto host objects. Fields outside
// this scheme stay cached but are never applied.
const (
	PrefixKey      = "prefix"
	ModuleKeyPre   = "cmd-"
	CategoryKeyPre = "cat-"
)

// ModuleKey returns the settings field name for a module's enablement flag.
func ModuleKey(moduleID string) string {
	return ModuleKeyPre + moduleID
}

// CategoryKey returns the settings field name for a category's enablement flag.
func CategoryKey(categoryID string) string {
	return CategoryKeyPre + categoryID
}

// ApplySetting pushes one resolved settings value onto the live host object it
// targets. When global is true the value applies application-wide, otherwise
// to the named tenant. Values of the wrong type, unknown module/category IDs
// and keys outside the prefix/cmd-/cat- scheme are ignored; the caller keeps
// them cached regardless.
func ApplySetting(h Host, global bool, tenant string, key string, value any) {
	switch {
	case key == PrefixKey:
		prefix, ok := value.(string)
		if !ok {
			return
		}
		if global {
			h.SetDefaultPrefix(prefix)
			return
		}
		if t, ok := h.Tenant(tenant); ok {
			t.SetPrefix(prefix)
		}
	case strings.HasPrefix(key, ModuleKeyPre):
		enabled, ok := value.(bool)
		if !ok {
			return
		}
		id := strings.TrimPrefix(key, ModuleKeyPre)
		for _, mod := range h.Modules() {
			if mod.ID() != id {
				continue
			}
			if global {
				mod.SetEnabledGlobal(enabled)
			} else {
				mod.SetEnabled(tenant, enabled)
			}
			return
		}
	case strings.HasPrefix(key, CategoryKeyPre):
		enabled, ok := value.(bool)
		if !ok {
			return
		}
		id := strings.TrimPrefix(key, CategoryKeyPre)
		for _, cat := range h.Categories() {
			if cat.ID() != id {
				continue
			}
			if global {
				cat.SetEnabledGlobal(enabled)
			} else {
				cat.SetEnabled(tenant, enabled)
			}
			return
		}
	}
}
