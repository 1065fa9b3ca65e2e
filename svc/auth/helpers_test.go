package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
	"github.com/dmitrymomot/tenantkit/svc/auth"
)

const password = "correct horse battery staple"

var (
	superAdminRole = rbac.Role{Name: "SUPER_ADMIN", Kind: rbac.KindSystem, Permissions: []string{"tenants.manage"}}
	tenantAdmin    = rbac.Role{Name: "TENANT_ADMIN", Kind: rbac.KindTenant, Permissions: []string{"users.manage"}}
	accountant     = rbac.Role{Name: "ACCOUNTANT", Kind: rbac.KindCompany, Permissions: []string{"invoices.read", "invoices.write"}}
)

func int64Ptr(v int64) *int64 { return &v }

func hash(t *testing.T, pw string) []byte {
	t.Helper()
	h, err := auth.HashPassword(pw, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func rootPrincipal(t *testing.T) *auth.Principal {
	return &auth.Principal{
		ID:           1,
		Username:     "root",
		Email:        "root@example.com",
		PasswordHash: hash(t, password),
		Active:       true,
		Assignments:  []auth.Assignment{{Role: superAdminRole, Active: true}},
	}
}

func alicePrincipal(t *testing.T) *auth.Principal {
	return &auth.Principal{
		ID:           100,
		Username:     "alice",
		Email:        "alice@acme.test",
		PasswordHash: hash(t, password),
		Active:       true,
		TenantID:     int64Ptr(7),
		Assignments: []auth.Assignment{
			{TenantID: 7, Role: tenantAdmin, Active: true},
			{TenantID: 7, CompanyID: 3, Role: accountant, Active: true},
			{TenantID: 7, CompanyID: 4, Role: accountant, Active: false},
			{TenantID: 9, CompanyID: 8, Role: accountant, Active: true},
		},
	}
}

type fixture struct {
	store    *MockStore
	codec    *jwt.Codec
	registry *revocation.MemoryRegistry
	svc      *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	codec, err := jwt.New([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	store := &MockStore{}
	registry := revocation.NewMemoryRegistry(codec)
	svc, err := auth.NewService(store, codec, registry, auth.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	return &fixture{store: store, codec: codec, registry: registry, svc: svc}
}

// scoped returns a context whose request scope carries tenantID.
func scoped(t *testing.T, tenantID int64) context.Context {
	t.Helper()
	s := scope.New()
	s.Tenant().Set(tenantID)
	t.Cleanup(s.Clear)
	return scope.WithScope(context.Background(), s)
}
