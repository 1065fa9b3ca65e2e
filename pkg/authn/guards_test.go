package authn_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/authn"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

func TestGuards(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		guard    func(http.Handler) http.Handler
		tenantID int64
		anon     bool
		want     int
	}{
		{"authenticated passes", authn.RequireAuthenticated(), 7, false, http.StatusOK},
		{"anonymous is unauthorized", authn.RequireAuthenticated(), 7, true, http.StatusUnauthorized},
		{"permission without prefix", authn.RequirePermission("orders.read"), 7, false, http.StatusOK},
		{"permission with prefix", authn.RequirePermission("PERMISSION_orders.read"), 7, false, http.StatusOK},
		{"missing permission", authn.RequirePermission("orders.read", "orders.write"), 7, false, http.StatusForbidden},
		{"any permission", authn.RequireAnyPermission("orders.write", "orders.read"), 7, false, http.StatusOK},
		{"role", authn.RequireRole("TENANT_ADMIN"), 7, false, http.StatusOK},
		{"missing role", authn.RequireRole("AUDITOR"), 7, false, http.StatusForbidden},
		{"anonymous permission", authn.RequirePermission("orders.read"), 7, true, http.StatusUnauthorized},
		{"super admin", authn.RequireSuperAdmin(), scope.SuperAdminTenantID, false, http.StatusOK},
		{"tenant user is not super admin", authn.RequireSuperAdmin(), 7, false, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			codec := newCodec(t)
			token := ""
			if !tt.anon {
				token = issue(t, codec, tt.tenantID)
			}

			h := authn.Authenticate(codec, revocation.NewMemoryRegistry(codec))(tt.guard(ok))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, request("acme.example.com", "/", token))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	t.Run("missing dependency", func(t *testing.T) {
		t.Parallel()

		_, err := authn.Pipeline(authn.PipelineConfig{Codec: newCodec(t)})
		require.ErrorIs(t, err, authn.ErrIncompletePipeline)
	})

	t.Run("admin host resolves super admin scope", func(t *testing.T) {
		t.Parallel()

		codec := newCodec(t)
		var o observed

		pipeline(t, codec, revocation.NewMemoryRegistry(codec), recorder(&o)).
			ServeHTTP(httptest.NewRecorder(), request("admin.example.com", "/", ""))

		require.True(t, o.called)
		assert.Equal(t, scope.SuperAdminTenantID, o.tenantID)
	})

	t.Run("unknown subdomain falls back to default", func(t *testing.T) {
		t.Parallel()

		codec := newCodec(t)
		var o observed

		pipeline(t, codec, revocation.NewMemoryRegistry(codec), recorder(&o)).
			ServeHTTP(httptest.NewRecorder(), request("nope.example.com:8080", "/", ""))

		require.True(t, o.called)
		assert.Equal(t, int64(1), o.tenantID)
	})
}
