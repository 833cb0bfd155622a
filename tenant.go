package settings

import (
	"fmt"

	"github.com/agentuity/settings/host"
)

// TenantID identifies the owner of one settings document: either a digit-only
// tenant identifier or the Global sentinel.
type TenantID string

// Global is the tenant-less fallback scope. Its settings apply when no
// tenant-specific override exists.
const Global TenantID = "global"

// ResolveTenantID normalizes a tenant reference into a TenantID. Accepted
// references: a host.Tenant, nil or the string "global" (both resolve to
// Global), a digit-only identifier string, or a TenantID. Anything else fails
// with ErrInvalidReference. Every provider operation resolves its reference
// through here; raw references are never stored or compared.
func ResolveTenantID(ref any) (TenantID, error) {
	switch val := ref.(type) {
	case nil:
		return Global, nil
	case host.Tenant:
		id := val.ID()
		if !isDigits(id) {
			return "", fmt.Errorf("%w: host tenant has malformed id %q", ErrInvalidReference, id)
		}
		return TenantID(id), nil
	case TenantID:
		return ResolveTenantID(string(val))
	case string:
		if val == string(Global) {
			return Global, nil
		}
		if isDigits(val) {
			return TenantID(val), nil
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, val)
	default:
		return "", fmt.Errorf("%w: %T", ErrInvalidReference, ref)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
