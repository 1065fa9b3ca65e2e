// Package scope holds the per-request tenancy cells: the current tenant id and
// the current company id.
//
// A new Scope is created when a request enters the pipeline and cleared when it
// leaves. Scopes are never shared between requests: a context kept after its
// request returned sees unset cells, never another request's tenant. Code
// running inside a request reads the cells through the request context:
//
//	tenantID, ok := scope.TenantID(r.Context())
//	if !ok {
//		// tenant was not resolved
//	}
//	if scope.IsSuperAdmin(r.Context()) {
//		// platform-level request, no tenant filtering
//	}
package scope
