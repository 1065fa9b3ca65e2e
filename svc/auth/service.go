package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// Service authenticates principals against the tenant resolved for the
// request and manages the lifetime of the tokens it issues.
type Service struct {
	store      Store
	codec      *jwt.Codec
	registry   revocation.Registry
	logger     *slog.Logger
	bcryptCost int
	dummyHash  []byte
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBcryptCost sets the cost of the hash compared against when the
// identifier is unknown. It should match the cost of stored hashes.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// NewService creates the session service.
func NewService(store Store, codec *jwt.Codec, registry revocation.Registry, opts ...ServiceOption) (*Service, error) {
	switch {
	case store == nil:
		return nil, ErrMissingStore
	case codec == nil:
		return nil, ErrMissingCodec
	case registry == nil:
		return nil, ErrMissingRegistry
	}

	s := &Service{
		store:      store,
		codec:      codec,
		registry:   registry,
		logger:     slog.New(slog.DiscardHandler),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("auth"))

	hash, err := HashPassword("tenantkit-unknown-principal", s.bcryptCost)
	if err != nil {
		return nil, err
	}
	s.dummyHash = hash

	return s, nil
}

// Login authenticates identifier and password against the request scope.
//
// In the super-admin scope only principals holding a system-wide role are
// considered and the token is issued for scope.SuperAdminTenantID. Otherwise
// the scope must carry a concrete tenant; the principal must belong to it and
// must not be a system administrator.
func (s *Service) Login(ctx context.Context, identifier, password string) (*Session, error) {
	identifier = NormalizeIdentifier(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if scope.IsSuperAdmin(ctx) {
		return s.loginSuperAdmin(ctx, identifier, password)
	}

	tenantID, ok := scope.TenantID(ctx)
	if !ok {
		return nil, ErrTenantContextMissing
	}
	return s.loginTenant(ctx, identifier, password, tenantID)
}

func (s *Service) loginSuperAdmin(ctx context.Context, identifier, password string) (*Session, error) {
	p, err := s.store.FindSystemAdminByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, s.lookupFailed(err, password)
	}
	if !passwordMatches(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !p.Active {
		return nil, ErrInactiveAccount
	}
	if !p.IsSystemAdmin() {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, p, scope.SuperAdminTenantID, activeAssignments(p.Assignments, nil))
}

func (s *Service) loginTenant(ctx context.Context, identifier, password string, tenantID int64) (*Session, error) {
	p, err := s.store.FindByUsernameOrEmailWithinTenant(ctx, identifier, tenantID)
	if errors.Is(err, ErrPrincipalNotFound) {
		return nil, s.crossTenantCheck(ctx, identifier, password, tenantID)
	}
	if err != nil {
		return nil, s.lookupFailed(err, password)
	}
	if !passwordMatches(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !p.Active {
		return nil, ErrInactiveAccount
	}
	if !p.BelongsTo(tenantID) {
		s.logger.WarnContext(ctx, "cross-tenant login rejected",
			logger.UserID(p.ID),
			logger.TenantID(tenantID),
		)
		return nil, ErrUnauthorizedCrossTenant
	}
	if p.IsSystemAdmin() {
		s.logger.WarnContext(ctx, "system administrator login on tenant domain rejected",
			logger.UserID(p.ID),
			logger.TenantID(tenantID),
		)
		return nil, fmt.Errorf("%w: system administrators sign in on the admin domain", ErrUnauthorizedCrossTenant)
	}

	return s.issue(ctx, p, tenantID, activeAssignments(p.Assignments, &tenantID))
}

// crossTenantCheck runs when the tenant-scoped lookup misses. Credentials that
// are valid for a principal of another tenant are reported as a cross-tenant
// attempt rather than as unknown credentials.
func (s *Service) crossTenantCheck(ctx context.Context, identifier, password string, tenantID int64) error {
	p, err := s.store.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return s.lookupFailed(err, password)
	}
	if !passwordMatches(p.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	s.logger.WarnContext(ctx, "cross-tenant login rejected",
		logger.UserID(p.ID),
		logger.TenantID(tenantID),
	)
	return ErrUnauthorizedCrossTenant
}

// lookupFailed burns a bcrypt comparison so unknown identifiers take as long
// as wrong passwords.
func (s *Service) lookupFailed(err error, password string) error {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
	if errors.Is(err, ErrPrincipalNotFound) {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("auth: find principal: %w", err)
}

func (s *Service) issue(ctx context.Context, p *Principal, tenantID int64, assignments []Assignment) (*Session, error) {
	authz := rbac.Effective(assignments)
	companies := rbac.AccessibleCompanies(assignments)

	token, err := s.codec.Issue(jwt.IssueParams{
		Username:             p.Username,
		UserID:               p.ID,
		TenantID:             tenantID,
		Roles:                authz.Roles,
		Permissions:          authz.Permissions,
		AccessibleCompanyIDs: companies,
	})
	if err != nil {
		return nil, err
	}

	exp, err := s.codec.ExpiresAt(token)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "principal logged in",
		logger.UserID(p.ID),
		logger.Username(p.Username),
		logger.TenantID(tenantID),
	)

	return &Session{
		Token:                token,
		TokenType:            "Bearer",
		ExpiresAt:            exp,
		UserID:               p.ID,
		Username:             p.Username,
		TenantID:             tenantID,
		Roles:                authz.Roles,
		Permissions:          authz.Permissions,
		AccessibleCompanyIDs: companies,
	}, nil
}

// activeAssignments keeps active assignments, restricted to tenantID when set.
func activeAssignments(all []Assignment, tenantID *int64) []Assignment {
	out := make([]Assignment, 0, len(all))
	for _, a := range all {
		if !a.Active {
			continue
		}
		if tenantID != nil && a.TenantID != *tenantID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Logout revokes token. Revoking an already revoked or expired token
// succeeds; so does a token that cannot be decoded, which no verifier would
// accept anyway.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return jwt.ErrMissingToken
	}

	if _, err := s.registry.Revoke(ctx, token); err != nil {
		if errors.Is(err, revocation.ErrUntrackable) {
			s.logger.WarnContext(ctx, "logout with undecodable token", logger.Error(err))
			return nil
		}
		return fmt.Errorf("auth: revoke token: %w", err)
	}
	return nil
}

// ValidateToken reports whether token is unrevoked, verifies, and still
// belongs to an active principal in the scope it was issued for.
func (s *Service) ValidateToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	revoked, err := s.registry.IsRevoked(ctx, token)
	if err != nil || revoked {
		return false
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		return false
	}

	var p *Principal
	if claims.TenantID == scope.SuperAdminTenantID {
		p, err = s.store.FindSystemAdminByUsernameOrEmail(ctx, NormalizeIdentifier(claims.Username))
	} else {
		p, err = s.store.FindByUsernameOrEmailWithinTenant(ctx, NormalizeIdentifier(claims.Username), claims.TenantID)
	}
	if err != nil {
		if !errors.Is(err, ErrPrincipalNotFound) {
			s.logger.ErrorContext(ctx, "principal lookup failed during token validation", logger.Error(err))
		}
		return false
	}

	if !p.Active || p.ID != claims.UserID {
		return false
	}
	if claims.TenantID != scope.SuperAdminTenantID && !p.BelongsTo(claims.TenantID) {
		return false
	}
	return true
}
