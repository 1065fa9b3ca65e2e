// Package rbac models roles, their scope kinds and the authorities a
// principal derives from its role assignments.
//
// A Role bundles permissions and has a ScopeKind: system roles are platform
// wide, tenant roles span one tenant, company roles are bound to a company.
// Assignments attach a role to a principal for a tenant and optionally a
// company.
//
// Effective turns assignments into the authority lists carried in tokens:
// role names prefixed with ROLE_ and permission names prefixed with
// PERMISSION_, sorted and de-duplicated. Inactive assignments contribute
// nothing. AccessibleCompanies lists the company ids the principal may enter.
//
//	auth := rbac.Effective(principal.Assignments)
//	companies := rbac.AccessibleCompanies(principal.Assignments)
//
//	if !rbac.HasPermission(auth.Permissions, "WRITE_COMPANY") {
//	    return rbac.ErrInsufficientPermissions
//	}
//
// Role definitions live in a YAML Catalog. Roles may inherit other roles; the
// catalog rejects cycles and chains deeper than MaxInheritanceDepth and folds
// inherited permissions into each role.
package rbac
