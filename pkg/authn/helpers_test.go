package authn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/authn"
	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

type tenants map[string]tenant.Tenant

func (ts tenants) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	t, ok := ts[slug]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return &t, nil
}

func (ts tenants) FindActiveBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	t, err := ts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, tenant.ErrInactiveTenant
	}
	return t, nil
}

var testTenants = tenants{
	"default": {ID: 1, Slug: "default", Active: true},
	"acme":    {ID: 7, Slug: "acme", Active: true},
	"globex":  {ID: 9, Slug: "globex", Active: true},
}

func newCodec(t *testing.T) *jwt.Codec {
	t.Helper()
	codec, err := jwt.New([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	return codec
}

func newResolver(t *testing.T) *tenant.Resolver {
	t.Helper()
	r, err := tenant.NewResolver(testTenants, tenant.Config{
		BaseDomain:         "example.com",
		DefaultSlug:        "default",
		ReservedSubdomains: []string{"www"},
		OverrideHeader:     "X-Tenant-Subdomain",
	})
	require.NoError(t, err)
	return r
}

func issue(t *testing.T, codec *jwt.Codec, tenantID int64, companies ...int64) string {
	t.Helper()
	token, err := codec.Issue(jwt.IssueParams{
		Username:             "alice",
		UserID:               100,
		TenantID:             tenantID,
		Roles:                []string{"ROLE_TENANT_ADMIN"},
		Permissions:          []string{"PERMISSION_orders.read"},
		AccessibleCompanyIDs: companies,
	})
	require.NoError(t, err)
	return token
}

// observed is what the innermost handler saw.
type observed struct {
	called    bool
	tenantID  int64
	hasTenant bool
	companyID int64
	hasComp   bool
	principal *authn.Principal
}

func recorder(o *observed) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		o.called = true
		o.tenantID, o.hasTenant = scope.TenantID(ctx)
		o.companyID, o.hasComp = scope.CompanyID(ctx)
		o.principal, _ = authn.PrincipalFromContext(ctx)
		w.WriteHeader(http.StatusNoContent)
	})
}

func pipeline(t *testing.T, codec *jwt.Codec, reg revocation.Registry, h http.Handler) http.Handler {
	t.Helper()
	stages, err := authn.Pipeline(authn.PipelineConfig{
		Resolver: newResolver(t),
		Codec:    codec,
		Registry: reg,
	})
	require.NoError(t, err)
	return stages.Handler(h)
}

func request(host, path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
