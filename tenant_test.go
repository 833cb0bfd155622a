package settings

import (
	"testing"

	"github.com/agentuity/settings/host"
	"github.com/stretchr/testify/assert"
)

func TestResolveTenantIDGlobal(t *testing.T) {
	id, err := ResolveTenantID(nil)
	assert.NoError(t, err)
	assert.Equal(t, Global, id)

	id, err = ResolveTenantID("global")
	assert.NoError(t, err)
	assert.Equal(t, Global, id)

	id, err = ResolveTenantID(Global)
	assert.NoError(t, err)
	assert.Equal(t, Global, id)
}

func TestResolveTenantIDDigits(t *testing.T) {
	id, err := ResolveTenantID("12345")
	assert.NoError(t, err)
	assert.Equal(t, TenantID("12345"), id)

	id, err = ResolveTenantID(TenantID("42"))
	assert.NoError(t, err)
	assert.Equal(t, TenantID("42"), id)
}

func TestResolveTenantIDHostTenant(t *testing.T) {
	h := host.NewMemory()
	tenant := h.AddTenant("98765")
	id, err := ResolveTenantID(tenant)
	assert.NoError(t, err)
	assert.Equal(t, TenantID("98765"), id)
}

func TestResolveTenantIDInvalid(t *testing.T) {
	for _, ref := range []any{"abc", "", "12a", 42, struct{}{}, []string{"42"}} {
		_, err := ResolveTenantID(ref)
		assert.ErrorIs(t, err, ErrInvalidReference, "ref %v", ref)
	}

	h := host.NewMemory()
	malformed := h.AddTenant("not-digits")
	_, err := ResolveTenantID(malformed)
	assert.ErrorIs(t, err, ErrInvalidReference)
}
