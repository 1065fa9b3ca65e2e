package rbac

import (
	"slices"
	"strings"
)

// Authority prefixes carried in token claims.
const (
	RolePrefix       = "ROLE_"
	PermissionPrefix = "PERMISSION_"
)

// RoleAuthority returns the prefixed form of a role name.
func RoleAuthority(name string) string {
	return withPrefix(RolePrefix, name)
}

// PermissionAuthority returns the prefixed form of a permission name.
func PermissionAuthority(name string) string {
	return withPrefix(PermissionPrefix, name)
}

func withPrefix(prefix, name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

// Authorities is the effective authority set of a principal.
type Authorities struct {
	Roles       []string
	Permissions []string
}

// All returns roles followed by permissions.
func (a Authorities) All() []string {
	out := make([]string, 0, len(a.Roles)+len(a.Permissions))
	out = append(out, a.Roles...)
	return append(out, a.Permissions...)
}

// Effective unions the roles and permissions of all active assignments.
// Results are prefixed, sorted and de-duplicated.
func Effective(assignments []Assignment) Authorities {
	var roles, perms []string
	for _, a := range assignments {
		if !a.Active {
			continue
		}
		if r := RoleAuthority(a.Role.Name); r != "" {
			roles = append(roles, r)
		}
		for _, p := range a.Role.Permissions {
			if p = PermissionAuthority(p); p != "" {
				perms = append(perms, p)
			}
		}
	}
	return Authorities{Roles: normalize(roles), Permissions: normalize(perms)}
}

// AccessibleCompanies returns the sorted ids of companies the principal holds
// an active assignment in.
func AccessibleCompanies(assignments []Assignment) []int64 {
	ids := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		if a.Active && a.CompanyID > 0 {
			ids = append(ids, a.CompanyID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// HasSystemRole reports whether any active assignment carries a system-wide role.
func HasSystemRole(assignments []Assignment) bool {
	return slices.ContainsFunc(assignments, func(a Assignment) bool {
		return a.Active && a.Role.IsSystem()
	})
}

// HasAuthority reports whether authorities contains authority verbatim.
func HasAuthority(authorities []string, authority string) bool {
	return authority != "" && slices.Contains(authorities, authority)
}

// HasRole accepts the role name with or without the ROLE_ prefix.
func HasRole(authorities []string, role string) bool {
	return HasAuthority(authorities, RoleAuthority(role))
}

// HasPermission accepts the permission with or without the PERMISSION_ prefix.
func HasPermission(authorities []string, permission string) bool {
	return HasAuthority(authorities, PermissionAuthority(permission))
}

// HasAllPermissions reports whether every permission is present.
// An empty list is satisfied.
func HasAllPermissions(authorities []string, permissions ...string) bool {
	for _, p := range permissions {
		if !HasPermission(authorities, p) {
			return false
		}
	}
	return true
}

// HasAnyPermission reports whether at least one permission is present.
func HasAnyPermission(authorities []string, permissions ...string) bool {
	return slices.ContainsFunc(permissions, func(p string) bool {
		return HasPermission(authorities, p)
	})
}

func normalize(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	slices.Sort(s)
	return slices.Compact(s)
}
