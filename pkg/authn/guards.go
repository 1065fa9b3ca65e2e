package authn

import (
	"net/http"

	"github.com/dmitrymomot/tenantkit/handler"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

// RequireAuthenticated rejects requests without a principal with 401.
func RequireAuthenticated() func(http.Handler) http.Handler {
	return require(func(*Principal) bool { return true })
}

// RequirePermission rejects requests whose principal lacks any of the given
// permissions. Unauthenticated requests get 401, others 403.
func RequirePermission(permissions ...string) func(http.Handler) http.Handler {
	return require(func(p *Principal) bool {
		return rbac.HasAllPermissions(p.Authorities(), permissions...)
	})
}

// RequireAnyPermission passes when the principal holds at least one of the
// given permissions.
func RequireAnyPermission(permissions ...string) func(http.Handler) http.Handler {
	return require(func(p *Principal) bool {
		return rbac.HasAnyPermission(p.Authorities(), permissions...)
	})
}

// RequireRole rejects requests whose principal does not hold role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return require(func(p *Principal) bool {
		return rbac.HasRole(p.Authorities(), role)
	})
}

// RequireSuperAdmin only admits principals authenticated in the super-admin scope.
func RequireSuperAdmin() func(http.Handler) http.Handler {
	return require((*Principal).IsSuperAdmin)
}

func require(allowed func(*Principal) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				handler.WriteError(w, handler.ErrUnauthorized)
				return
			}
			if !allowed(p) {
				handler.WriteError(w, handler.ErrForbidden.WithMessage("%s", rbac.ErrInsufficientPermissions))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
