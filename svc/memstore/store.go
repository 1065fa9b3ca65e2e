package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	"github.com/dmitrymomot/tenantkit/svc/auth"
)

var (
	ErrInvalidTenant      = errors.New("memstore: invalid tenant")
	ErrInvalidPrincipal   = errors.New("memstore: invalid principal")
	ErrDuplicatePrincipal = errors.New("memstore: username or email already taken")
	ErrInvalidSeed        = errors.New("memstore: invalid seed")
)

// Store is an in-memory tenant.Store and auth.Store. It is safe for
// concurrent use; lookups return copies.
type Store struct {
	mu         sync.RWMutex
	tenants    map[string]tenant.Tenant
	principals map[int64]auth.Principal
}

// New returns an empty store.
func New() *Store {
	return &Store{
		tenants:    make(map[string]tenant.Tenant),
		principals: make(map[int64]auth.Principal),
	}
}

// PutTenant inserts or replaces the tenant with the same slug.
func (s *Store) PutTenant(t tenant.Tenant) error {
	t.Slug = tenant.NormalizeSlug(t.Slug)
	if t.Slug == "" || t.ID <= 0 {
		return fmt.Errorf("%w: id %d slug %q", ErrInvalidTenant, t.ID, t.Slug)
	}

	s.mu.Lock()
	s.tenants[t.Slug] = t
	s.mu.Unlock()
	return nil
}

// PutPrincipal inserts or replaces the principal with the same id. Username
// and email must not collide with another principal.
func (s *Store) PutPrincipal(p auth.Principal) error {
	if p.ID <= 0 || auth.NormalizeIdentifier(p.Username) == "" {
		return fmt.Errorf("%w: id %d username %q", ErrInvalidPrincipal, p.ID, p.Username)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, other := range s.principals {
		if id == p.ID {
			continue
		}
		for _, ident := range identifiers(&p) {
			if slices.Contains(identifiers(&other), ident) {
				return fmt.Errorf("%w: %s", ErrDuplicatePrincipal, ident)
			}
		}
	}

	s.principals[p.ID] = clonePrincipal(p)
	return nil
}

// FindBySlug implements tenant.Store.
func (s *Store) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	s.mu.RLock()
	t, ok := s.tenants[tenant.NormalizeSlug(slug)]
	s.mu.RUnlock()
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return &t, nil
}

// FindActiveBySlug implements tenant.Store.
func (s *Store) FindActiveBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	t, err := s.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, tenant.ErrInactiveTenant
	}
	return t, nil
}

// FindByUsernameOrEmail implements auth.Store.
func (s *Store) FindByUsernameOrEmail(_ context.Context, identifier string) (*auth.Principal, error) {
	return s.find(identifier, func(*auth.Principal) bool { return true })
}

// FindByUsernameOrEmailWithinTenant implements auth.Store.
func (s *Store) FindByUsernameOrEmailWithinTenant(_ context.Context, identifier string, tenantID int64) (*auth.Principal, error) {
	return s.find(identifier, func(p *auth.Principal) bool {
		if p.BelongsTo(tenantID) {
			return true
		}
		return slices.ContainsFunc(p.Assignments, func(a auth.Assignment) bool {
			return a.TenantID == tenantID
		})
	})
}

// FindSystemAdminByUsernameOrEmail implements auth.Store.
func (s *Store) FindSystemAdminByUsernameOrEmail(_ context.Context, identifier string) (*auth.Principal, error) {
	return s.find(identifier, (*auth.Principal).IsSystemAdmin)
}

// Tenants returns all tenants ordered by id.
func (s *Store) Tenants() []tenant.Tenant {
	s.mu.RLock()
	out := make([]tenant.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		out = append(out, t)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) find(identifier string, match func(*auth.Principal) bool) (*auth.Principal, error) {
	identifier = auth.NormalizeIdentifier(identifier)
	if identifier == "" {
		return nil, auth.ErrPrincipalNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.principals {
		if slices.Contains(identifiers(&p), identifier) && match(&p) {
			out := clonePrincipal(p)
			return &out, nil
		}
	}
	return nil, auth.ErrPrincipalNotFound
}

func identifiers(p *auth.Principal) []string {
	ids := []string{auth.NormalizeIdentifier(p.Username)}
	if e := auth.NormalizeIdentifier(p.Email); e != "" {
		ids = append(ids, e)
	}
	return ids
}

func clonePrincipal(p auth.Principal) auth.Principal {
	p.PasswordHash = slices.Clone(p.PasswordHash)
	if p.TenantID != nil {
		id := *p.TenantID
		p.TenantID = &id
	}
	p.Assignments = slices.Clone(p.Assignments)
	for i := range p.Assignments {
		p.Assignments[i].Role.Permissions = slices.Clone(p.Assignments[i].Role.Permissions)
		p.Assignments[i].Role.Inherits = slices.Clone(p.Assignments[i].Role.Inherits)
	}
	return p
}
