package authn

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// Principal is the authenticated caller as established from a verified token.
type Principal struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	TenantID    int64    `json:"tenant_id"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	CompanyIDs  []int64  `json:"accessible_company_ids"`
}

// PrincipalFromClaims builds a Principal from verified claims.
func PrincipalFromClaims(c *jwt.Claims) *Principal {
	return &Principal{
		UserID:      c.UserID,
		Username:    c.Username,
		TenantID:    c.TenantID,
		Roles:       slices.Clone(c.Roles),
		Permissions: slices.Clone(c.Permissions),
		CompanyIDs:  slices.Clone(c.AccessibleCompanyIDs),
	}
}

// Authorities returns roles followed by permissions.
func (p *Principal) Authorities() []string {
	return rbac.Authorities{Roles: p.Roles, Permissions: p.Permissions}.All()
}

// IsSuperAdmin reports whether the token was issued for the super-admin scope.
func (p *Principal) IsSuperAdmin() bool {
	return p.TenantID == scope.SuperAdminTenantID
}

// HasCompany reports whether companyID is among the accessible companies.
func (p *Principal) HasCompany(companyID int64) bool {
	return slices.Contains(p.CompanyIDs, companyID)
}

type principalKey struct{}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// IsAuthenticated reports whether a principal is attached to ctx.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := PrincipalFromContext(ctx)
	return ok
}

// UsernameLoggerExtractor adds the authenticated username to log records.
func UsernameLoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p, ok := PrincipalFromContext(ctx); ok {
			return logger.Username(p.Username), true
		}
		return slog.Attr{}, false
	}
}
