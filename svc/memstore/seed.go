package memstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenantkit/pkg/rbac"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	"github.com/dmitrymomot/tenantkit/svc/auth"
)

// Seed is the YAML document accepted by Load:
//
//	tenants:
//	  - {id: 1, slug: default, name: Default, active: true}
//	roles:
//	  - {name: SUPER_ADMIN, kind: system, permissions: [tenants.manage]}
//	principals:
//	  - id: 1
//	    username: root
//	    email: root@example.com
//	    password: change-me
//	    active: true
//	    assignments:
//	      - role: SUPER_ADMIN
//
// A principal sets either password (hashed on load) or password_hash (bcrypt).
type Seed struct {
	Tenants    []SeedTenant    `yaml:"tenants"`
	Roles      []rbac.Role     `yaml:"roles"`
	Principals []SeedPrincipal `yaml:"principals"`
}

type SeedTenant struct {
	ID     int64  `yaml:"id"`
	Slug   string `yaml:"slug"`
	Name   string `yaml:"name"`
	Active bool   `yaml:"active"`
}

type SeedPrincipal struct {
	ID           int64            `yaml:"id"`
	Username     string           `yaml:"username"`
	Email        string           `yaml:"email"`
	Password     string           `yaml:"password"`
	PasswordHash string           `yaml:"password_hash"`
	Active       bool             `yaml:"active"`
	TenantID     *int64           `yaml:"tenant_id"`
	Assignments  []SeedAssignment `yaml:"assignments"`
}

// SeedAssignment refers to a role of the seed's catalog by name. Active
// defaults to true.
type SeedAssignment struct {
	Role      string `yaml:"role"`
	TenantID  int64  `yaml:"tenant_id"`
	CompanyID int64  `yaml:"company_id"`
	Active    *bool  `yaml:"active"`
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	bcryptCost int
}

// WithBcryptCost sets the cost used to hash plain seed passwords.
func WithBcryptCost(cost int) LoadOption {
	return func(o *loadOptions) { o.bcryptCost = cost }
}

// Load parses a YAML seed into a new Store. The role catalog is resolved
// before principals so assignments carry inherited permissions.
func Load(r io.Reader, opts ...LoadOption) (*Store, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var seed Seed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidSeed, err)
	}

	catalog, err := rbac.NewCatalog(seed.Roles)
	if err != nil {
		return nil, errors.Join(ErrInvalidSeed, err)
	}

	s := New()
	for _, t := range seed.Tenants {
		if err := s.PutTenant(tenant.Tenant{ID: t.ID, Slug: t.Slug, Name: t.Name, Active: t.Active}); err != nil {
			return nil, errors.Join(ErrInvalidSeed, err)
		}
	}

	for _, sp := range seed.Principals {
		p, err := sp.principal(catalog, o.bcryptCost)
		if err != nil {
			return nil, errors.Join(ErrInvalidSeed, err)
		}
		if err := s.PutPrincipal(p); err != nil {
			return nil, errors.Join(ErrInvalidSeed, err)
		}
	}

	return s, nil
}

// LoadFile parses the YAML seed at path.
func LoadFile(path string, opts ...LoadOption) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("memstore: open seed: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

func (sp SeedPrincipal) principal(catalog *rbac.Catalog, cost int) (auth.Principal, error) {
	p := auth.Principal{
		ID:       sp.ID,
		Username: sp.Username,
		Email:    sp.Email,
		Active:   sp.Active,
		TenantID: sp.TenantID,
	}

	switch {
	case sp.PasswordHash != "":
		p.PasswordHash = []byte(sp.PasswordHash)
	case sp.Password != "":
		hash, err := auth.HashPassword(sp.Password, cost)
		if err != nil {
			return p, err
		}
		p.PasswordHash = hash
	default:
		return p, fmt.Errorf("principal %s has no password", sp.Username)
	}

	for _, a := range sp.Assignments {
		role, err := catalog.Role(a.Role)
		if err != nil {
			return p, fmt.Errorf("principal %s: %w", sp.Username, err)
		}
		active := a.Active == nil || *a.Active
		p.Assignments = append(p.Assignments, auth.Assignment{
			TenantID:  a.TenantID,
			CompanyID: a.CompanyID,
			Role:      role,
			Active:    active,
		})
	}
	return p, nil
}
