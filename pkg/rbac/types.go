package rbac

import (
	"fmt"
	"strings"
)

// MaxInheritanceDepth bounds role inheritance chains.
const MaxInheritanceDepth = 10

// ScopeKind says which surface a role grants access to.
type ScopeKind string

const (
	// KindSystem roles are platform-wide and tenant-less.
	KindSystem ScopeKind = "system"
	// KindTenant roles apply to every company of one tenant.
	KindTenant ScopeKind = "tenant"
	// KindCompany roles apply to a single company.
	KindCompany ScopeKind = "company"
)

// Valid reports whether k is one of the known kinds.
func (k ScopeKind) Valid() bool {
	switch k {
	case KindSystem, KindTenant, KindCompany:
		return true
	}
	return false
}

// UnmarshalText accepts kinds case-insensitively.
func (k *ScopeKind) UnmarshalText(b []byte) error {
	v := ScopeKind(strings.ToLower(strings.TrimSpace(string(b))))
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidScopeKind, string(b))
	}
	*k = v
	return nil
}

// Role is a named bundle of permissions.
type Role struct {
	Name        string    `yaml:"name" json:"name"`
	Kind        ScopeKind `yaml:"kind" json:"kind"`
	Permissions []string  `yaml:"permissions" json:"permissions"`

	// Inherits lists roles whose permissions are folded into this one by a Catalog.
	Inherits []string `yaml:"inherits,omitempty" json:"inherits,omitempty"`
}

// IsSystem reports whether the role is platform-wide.
func (r Role) IsSystem() bool { return r.Kind == KindSystem }

// Assignment grants a role to a principal within a tenant and optionally a
// company. CompanyID is zero for tenant-wide and system roles.
type Assignment struct {
	TenantID  int64 `json:"tenant_id"`
	CompanyID int64 `json:"company_id,omitempty"`
	Role      Role  `json:"role"`
	Active    bool  `json:"active"`
}
