// Package tenant resolves the tenant a request belongs to from its host.
//
// Resolution rules, in order:
//
//  1. In development mode, the override header (default X-Tenant-Subdomain)
//     is honoured: "admin" selects the super-admin scope, any other value is
//     looked up as an active slug and falls through on failure.
//  2. The bare base domain and "localhost" select the super-admin scope.
//  3. The leftmost label of "label.localhost" or "label.<base-domain>" is the
//     candidate subdomain.
//  4. "admin" selects the super-admin scope, regardless of reserved names.
//  5. An empty or reserved candidate selects the default tenant.
//  6. Otherwise the candidate is looked up as an active slug. Unknown and
//     inactive tenants fall back to the default tenant.
//
// Misresolution never fails a request. The only error Resolve returns is
// ErrDefaultTenantMissing, which signals broken configuration.
//
// Middleware is the first stage of the authentication pipeline. It owns the
// request scope from pkg/scope:
//
//	resolver, err := tenant.NewResolver(tenant.NewCachedStore(repo), cfg.Tenant,
//	    tenant.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	r.Use(tenant.Middleware(resolver, tenant.WithLogger(log)))
//
// Downstream code reads the result with scope.TenantID(ctx).
package tenant
