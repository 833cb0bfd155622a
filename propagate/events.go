package propagate

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Host lifecycle event names the propagator subscribes to.
const (
	// EventPrefixChange fires when a tenant's command prefix changes.
	EventPrefixChange = "settings.tenant.prefix"
	// EventModuleToggle fires when a module is enabled or disabled.
	EventModuleToggle = "settings.module.toggle"
	// EventCategoryToggle fires when a category is enabled or disabled.
	EventCategoryToggle = "settings.category.toggle"
	// EventTenantJoin fires when a tenant becomes active on the host.
	EventTenantJoin = "settings.tenant.join"
	// EventModuleRegister fires when a module is registered or loaded.
	EventModuleRegister = "settings.module.register"
	// EventCategoryRegister fires when a category is registered.
	EventCategoryRegister = "settings.category.register"
)

// PrefixChange is the payload for EventPrefixChange. An empty Tenant means
// the global scope.
type PrefixChange struct {
	Tenant string `msgpack:"tenant"`
	Prefix string `msgpack:"prefix"`
}

// ModuleToggle is the payload for EventModuleToggle.
type ModuleToggle struct {
	Tenant  string `msgpack:"tenant"`
	Module  string `msgpack:"module"`
	Enabled bool   `msgpack:"enabled"`
}

// CategoryToggle is the payload for EventCategoryToggle.
type CategoryToggle struct {
	Tenant   string `msgpack:"tenant"`
	Category string `msgpack:"category"`
	Enabled  bool   `msgpack:"enabled"`
}

// TenantJoin is the payload for EventTenantJoin.
type TenantJoin struct {
	Tenant string `msgpack:"tenant"`
}

// ModuleRegister is the payload for EventModuleRegister. Reload marks a
// re-registration of an already-loaded module, which carries no settings
// work.
type ModuleRegister struct {
	Module string `msgpack:"module"`
	Reload bool   `msgpack:"reload"`
}

// CategoryRegister is the payload for EventCategoryRegister.
type CategoryRegister struct {
	Category string `msgpack:"category"`
}

// Encode marshals an event payload for publishing on the bus.
func Encode(payload any) ([]byte, error) {
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("propagate: failed to marshal payload: %w", err)
	}
	return data, nil
}

func decode(data []byte, payload any) error {
	if err := msgpack.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("propagate: failed to unmarshal payload: %w", err)
	}
	return nil
}
