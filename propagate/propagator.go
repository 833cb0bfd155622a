package propagate

import (
	"context"

	"github.com/agentuity/go-common/logger"
	"github.com/agentuity/settings"
	"github.com/agentuity/settings/bus"
	"github.com/agentuity/settings/host"
)

// handler processes one event payload against the provider. Handlers are
// plain package functions taking the provider explicitly; the subscription
// table below is the complete wiring.
type handler func(ctx context.Context, p *settings.Provider, data []byte) error

var table = []struct {
	event string
	fn    handler
}{
	{EventPrefixChange, onPrefixChange},
	{EventModuleToggle, onModuleToggle},
	{EventCategoryToggle, onCategoryToggle},
	{EventTenantJoin, onTenantJoin},
	{EventModuleRegister, onModuleRegister},
	{EventCategoryRegister, onCategoryRegister},
}

// Propagator owns the bus subscriptions that keep host objects in sync with
// cached settings. Close revokes all of them.
type Propagator struct {
	subs []bus.Subscription
	log  logger.Logger
}

// Attach subscribes the propagation handlers to the host's event bus. The
// provider must be initialized first: attaching before Init completes would
// let handlers read a partially populated cache.
func Attach(ctx context.Context, b bus.Bus, p *settings.Provider, log logger.Logger) (*Propagator, error) {
	if !p.Initialized() {
		return nil, settings.ErrNotInitialized
	}
	prop := &Propagator{
		log: log.With(map[string]interface{}{"component": "propagate"}),
	}
	for _, entry := range table {
		fn := entry.fn
		sub, err := b.Subscribe(ctx, entry.event, func(ctx context.Context, event string, data []byte) {
			if err := fn(ctx, p, data); err != nil {
				prop.log.Warn("failed to handle %s event: %s", event, err)
			}
		})
		if err != nil {
			prop.Close()
			return nil, err
		}
		prop.subs = append(prop.subs, sub)
	}
	return prop, nil
}

// Close revokes every subscription. Safe to call more than once.
func (pr *Propagator) Close() error {
	for _, sub := range pr.subs {
		sub.Close()
	}
	pr.subs = nil
	return nil
}

// tenantRef maps a payload tenant field to a provider reference, where the
// empty string means the global scope.
func tenantRef(tenant string) any {
	if tenant == "" {
		return nil
	}
	return tenant
}

func onPrefixChange(ctx context.Context, p *settings.Provider, data []byte) error {
	var ev PrefixChange
	if err := decode(data, &ev); err != nil {
		return err
	}
	_, err := p.Set(ctx, tenantRef(ev.Tenant), host.PrefixKey, ev.Prefix)
	return err
}

func onModuleToggle(ctx context.Context, p *settings.Provider, data []byte) error {
	var ev ModuleToggle
	if err := decode(data, &ev); err != nil {
		return err
	}
	_, err := p.Set(ctx, tenantRef(ev.Tenant), host.ModuleKey(ev.Module), ev.Enabled)
	return err
}

func onCategoryToggle(ctx context.Context, p *settings.Provider, data []byte) error {
	var ev CategoryToggle
	if err := decode(data, &ev); err != nil {
		return err
	}
	_, err := p.Set(ctx, tenantRef(ev.Tenant), host.CategoryKey(ev.Category), ev.Enabled)
	return err
}

func onTenantJoin(ctx context.Context, p *settings.Provider, data []byte) error {
	var ev TenantJoin
	if err := decode(data, &ev); err != nil {
		return err
	}
	id, err := settings.ResolveTenantID(ev.Tenant)
	if err != nil {
		return err
	}
	p.ApplyAll(id)
	return nil
}

func onModuleRegister(ctx context.Context, p *settings.Provider, data []byte) error {
	var ev ModuleRegister
	if err := decode(data, &ev); err != nil {
		return err
	}
	// A reload keeps the module instance's flags; nothing to push.
	if ev.Reload {
		return nil
	}
	p.ApplyModule(ev.Module)
	return nil
}

func onCategoryRegister(ctx context.Context, p *settings.Provider, data []byte) error {
	var ev CategoryRegister
	if err := decode(data, &ev); err != nil {
		return err
	}
	p.ApplyCategory(ev.Category)
	return nil
}
