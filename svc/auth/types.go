package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

// Assignment binds a principal to a role within a tenant and optionally a company.
type Assignment = rbac.Assignment

// Principal is a stored user account.
type Principal struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	Active       bool
	TenantID     *int64 // primary tenant; nil for platform accounts
	Assignments  []Assignment
}

// IsSystemAdmin reports whether the principal holds an active system-wide role.
func (p *Principal) IsSystemAdmin() bool {
	return rbac.HasSystemRole(p.Assignments)
}

// BelongsTo reports whether tenantID is the principal's primary tenant.
func (p *Principal) BelongsTo(tenantID int64) bool {
	return p.TenantID != nil && *p.TenantID == tenantID
}

// Store looks up principals. Every method returns ErrPrincipalNotFound when
// nothing matches; identifiers are passed through NormalizeIdentifier first.
type Store interface {
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*Principal, error)

	// FindByUsernameOrEmailWithinTenant only matches principals whose primary
	// tenant is tenantID or who hold an assignment in it.
	FindByUsernameOrEmailWithinTenant(ctx context.Context, identifier string, tenantID int64) (*Principal, error)

	// FindSystemAdminByUsernameOrEmail only matches principals holding a
	// system-wide role.
	FindSystemAdminByUsernameOrEmail(ctx context.Context, identifier string) (*Principal, error)
}

// Session is the result of a successful login.
type Session struct {
	Token                string    `json:"token"`
	TokenType            string    `json:"token_type"`
	ExpiresAt            time.Time `json:"expires_at"`
	UserID               int64     `json:"user_id"`
	Username             string    `json:"username"`
	TenantID             int64     `json:"tenant_id"`
	Roles                []string  `json:"roles"`
	Permissions          []string  `json:"permissions"`
	AccessibleCompanyIDs []int64   `json:"accessible_company_ids"`
}

// NormalizeIdentifier trims and case-folds a username or email.
func NormalizeIdentifier(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
