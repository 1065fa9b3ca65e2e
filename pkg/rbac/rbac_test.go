package rbac_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

var (
	superAdmin   = rbac.Role{Name: "SUPER_ADMIN", Kind: rbac.KindSystem, Permissions: []string{"MANAGE_TENANTS"}}
	tenantAdmin  = rbac.Role{Name: "TENANT_ADMIN", Kind: rbac.KindTenant, Permissions: []string{"MANAGE_COMPANIES", "READ_COMPANY"}}
	companyUser  = rbac.Role{Name: "COMPANY_USER", Kind: rbac.KindCompany, Permissions: []string{"READ_COMPANY"}}
	companyAdmin = rbac.Role{Name: "COMPANY_ADMIN", Kind: rbac.KindCompany, Permissions: []string{"WRITE_COMPANY", "READ_COMPANY"}}
)

func TestEffective(t *testing.T) {
	t.Parallel()

	t.Run("unions active assignments", func(t *testing.T) {
		t.Parallel()

		got := rbac.Effective([]rbac.Assignment{
			{TenantID: 7, CompanyID: 2, Role: companyAdmin, Active: true},
			{TenantID: 7, CompanyID: 1, Role: companyUser, Active: true},
			{TenantID: 7, CompanyID: 3, Role: companyUser, Active: true},
		})
		assert.Equal(t, []string{"ROLE_COMPANY_ADMIN", "ROLE_COMPANY_USER"}, got.Roles)
		assert.Equal(t, []string{"PERMISSION_READ_COMPANY", "PERMISSION_WRITE_COMPANY"}, got.Permissions)
		assert.Equal(t, append(got.Roles, got.Permissions...), got.All())
	})

	t.Run("skips inactive assignments", func(t *testing.T) {
		t.Parallel()

		got := rbac.Effective([]rbac.Assignment{
			{TenantID: 7, CompanyID: 1, Role: companyUser, Active: true},
			{TenantID: 7, CompanyID: 2, Role: companyAdmin, Active: false},
		})
		assert.Equal(t, []string{"ROLE_COMPANY_USER"}, got.Roles)
		assert.Equal(t, []string{"PERMISSION_READ_COMPANY"}, got.Permissions)
	})

	t.Run("does not double prefix", func(t *testing.T) {
		t.Parallel()

		got := rbac.Effective([]rbac.Assignment{{
			Role:   rbac.Role{Name: "ROLE_AUDITOR", Kind: rbac.KindTenant, Permissions: []string{"PERMISSION_AUDIT", " "}},
			Active: true,
		}})
		assert.Equal(t, []string{"ROLE_AUDITOR"}, got.Roles)
		assert.Equal(t, []string{"PERMISSION_AUDIT"}, got.Permissions)
	})

	t.Run("empty input yields empty lists", func(t *testing.T) {
		t.Parallel()

		got := rbac.Effective(nil)
		assert.NotNil(t, got.Roles)
		assert.Empty(t, got.Roles)
		assert.NotNil(t, got.Permissions)
		assert.Empty(t, got.Permissions)
	})
}

func TestAccessibleCompanies(t *testing.T) {
	t.Parallel()

	got := rbac.AccessibleCompanies([]rbac.Assignment{
		{CompanyID: 3, Role: companyUser, Active: true},
		{CompanyID: 1, Role: companyAdmin, Active: true},
		{CompanyID: 3, Role: companyAdmin, Active: true},
		{CompanyID: 9, Role: companyUser, Active: false},
		{CompanyID: 0, Role: tenantAdmin, Active: true},
	})
	assert.Equal(t, []int64{1, 3}, got)
	assert.Empty(t, rbac.AccessibleCompanies(nil))
}

func TestHasSystemRole(t *testing.T) {
	t.Parallel()

	assert.True(t, rbac.HasSystemRole([]rbac.Assignment{{Role: superAdmin, Active: true}}))
	assert.False(t, rbac.HasSystemRole([]rbac.Assignment{{Role: superAdmin, Active: false}}))
	assert.False(t, rbac.HasSystemRole([]rbac.Assignment{{Role: tenantAdmin, Active: true}}))
}

func TestAuthorityChecks(t *testing.T) {
	t.Parallel()

	auth := []string{"ROLE_COMPANY_ADMIN", "PERMISSION_READ_COMPANY", "PERMISSION_WRITE_COMPANY"}

	assert.True(t, rbac.HasAuthority(auth, "ROLE_COMPANY_ADMIN"))
	assert.False(t, rbac.HasAuthority(auth, ""))
	assert.True(t, rbac.HasRole(auth, "COMPANY_ADMIN"))
	assert.True(t, rbac.HasRole(auth, "ROLE_COMPANY_ADMIN"))
	assert.False(t, rbac.HasRole(auth, "SUPER_ADMIN"))
	assert.True(t, rbac.HasPermission(auth, "READ_COMPANY"))
	assert.True(t, rbac.HasPermission(auth, "PERMISSION_WRITE_COMPANY"))
	assert.False(t, rbac.HasPermission(auth, "MANAGE_TENANTS"))
	assert.True(t, rbac.HasAllPermissions(auth, "READ_COMPANY", "WRITE_COMPANY"))
	assert.True(t, rbac.HasAllPermissions(auth))
	assert.False(t, rbac.HasAllPermissions(auth, "READ_COMPANY", "MANAGE_TENANTS"))
	assert.True(t, rbac.HasAnyPermission(auth, "MANAGE_TENANTS", "READ_COMPANY"))
	assert.False(t, rbac.HasAnyPermission(auth))
}

func TestScopeKind(t *testing.T) {
	t.Parallel()

	var k rbac.ScopeKind
	require.NoError(t, k.UnmarshalText([]byte(" Company ")))
	assert.Equal(t, rbac.KindCompany, k)

	assert.ErrorIs(t, k.UnmarshalText([]byte("galaxy")), rbac.ErrInvalidScopeKind)
	assert.False(t, rbac.ScopeKind("").Valid())
}

const catalogYAML = `
roles:
  - name: COMPANY_ADMIN
    kind: company
    permissions: [WRITE_COMPANY]
    inherits: [COMPANY_USER]
  - name: COMPANY_USER
    kind: company
    permissions: [READ_COMPANY]
  - name: TENANT_ADMIN
    kind: tenant
    permissions: [MANAGE_COMPANIES]
    inherits: [COMPANY_ADMIN]
  - name: SUPER_ADMIN
    kind: system
    permissions: [MANAGE_TENANTS]
`

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	c, err := rbac.LoadCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	role, err := c.Role("TENANT_ADMIN")
	require.NoError(t, err)
	assert.Equal(t, rbac.KindTenant, role.Kind)
	assert.Equal(t, []string{"MANAGE_COMPANIES", "READ_COMPANY", "WRITE_COMPANY"}, role.Permissions)

	role.Permissions[0] = "mutated"
	again, _ := c.Role("TENANT_ADMIN")
	assert.Equal(t, "MANAGE_COMPANIES", again.Permissions[0])

	roles := c.Roles()
	require.Len(t, roles, 4)
	assert.Less(t, indexOf(roles, "COMPANY_USER"), indexOf(roles, "COMPANY_ADMIN"))
	assert.Less(t, indexOf(roles, "COMPANY_ADMIN"), indexOf(roles, "TENANT_ADMIN"))

	assert.NoError(t, c.Can("COMPANY_ADMIN", "READ_COMPANY"))
	assert.ErrorIs(t, c.Can("COMPANY_USER", "WRITE_COMPANY"), rbac.ErrInsufficientPermissions)
	assert.ErrorIs(t, c.Can("GHOST", "READ_COMPANY"), rbac.ErrInvalidRole)

	_, err = c.Role("GHOST")
	assert.ErrorIs(t, err, rbac.ErrInvalidRole)
}

func TestNewCatalog_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		roles []rbac.Role
		want  error
	}{
		{
			name:  "empty name",
			roles: []rbac.Role{{Name: " ", Kind: rbac.KindTenant}},
			want:  rbac.ErrInvalidRole,
		},
		{
			name:  "bad kind",
			roles: []rbac.Role{{Name: "X", Kind: "planet"}},
			want:  rbac.ErrInvalidScopeKind,
		},
		{
			name:  "duplicate",
			roles: []rbac.Role{{Name: "X", Kind: rbac.KindTenant}, {Name: "X", Kind: rbac.KindCompany}},
			want:  rbac.ErrDuplicateRole,
		},
		{
			name:  "unknown parent",
			roles: []rbac.Role{{Name: "X", Kind: rbac.KindTenant, Inherits: []string{"Y"}}},
			want:  rbac.ErrInvalidRole,
		},
		{
			name: "cycle",
			roles: []rbac.Role{
				{Name: "A", Kind: rbac.KindTenant, Inherits: []string{"B"}},
				{Name: "B", Kind: rbac.KindTenant, Inherits: []string{"C"}},
				{Name: "C", Kind: rbac.KindTenant, Inherits: []string{"A"}},
			},
			want: rbac.ErrCircularInheritance,
		},
		{
			name:  "self inheritance",
			roles: []rbac.Role{{Name: "A", Kind: rbac.KindTenant, Inherits: []string{"A"}}},
			want:  rbac.ErrCircularInheritance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := rbac.NewCatalog(tt.roles)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("too deep", func(t *testing.T) {
		t.Parallel()

		roles := make([]rbac.Role, 0, rbac.MaxInheritanceDepth+2)
		for i := range rbac.MaxInheritanceDepth + 2 {
			r := rbac.Role{Name: roleName(i), Kind: rbac.KindTenant}
			if i > 0 {
				r.Inherits = []string{roleName(i - 1)}
			}
			roles = append(roles, r)
		}
		_, err := rbac.NewCatalog(roles)
		assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
	})

	t.Run("bad yaml kind", func(t *testing.T) {
		t.Parallel()

		_, err := rbac.LoadCatalog(strings.NewReader("roles:\n  - name: X\n    kind: planet\n"))
		assert.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		c, err := rbac.LoadCatalog(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, c.Roles())
	})
}

func roleName(i int) string {
	return "R" + strings.Repeat("I", i+1)
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
