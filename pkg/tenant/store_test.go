package tenant_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// memStore is a Store backed by a map, counting FindBySlug calls.
type memStore struct {
	mu      sync.RWMutex
	tenants map[string]tenant.Tenant
	err     error
	calls   atomic.Int32
}

func newMemStore(ts ...tenant.Tenant) *memStore {
	s := &memStore{tenants: make(map[string]tenant.Tenant)}
	for _, t := range ts {
		s.tenants[t.Slug] = t
	}
	return s
}

func (s *memStore) put(t tenant.Tenant) {
	s.mu.Lock()
	s.tenants[t.Slug] = t
	s.mu.Unlock()
}

func (s *memStore) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[slug]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return &t, nil
}

func (s *memStore) FindActiveBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	t, err := s.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, tenant.ErrInactiveTenant
	}
	return t, nil
}

var (
	defaultTenant = tenant.Tenant{ID: 1, Slug: "default", Name: "Default", Active: true}
	acmeTenant    = tenant.Tenant{ID: 7, Slug: "acme", Name: "Acme", Active: true}
	globexTenant  = tenant.Tenant{ID: 9, Slug: "globex", Name: "Globex", Active: true}
	sleepyTenant  = tenant.Tenant{ID: 11, Slug: "sleepy", Name: "Sleepy", Active: false}
)

func seededStore() *memStore {
	return newMemStore(defaultTenant, acmeTenant, globexTenant, sleepyTenant)
}

func baseConfig() tenant.Config {
	return tenant.Config{
		BaseDomain:         "example.com",
		DefaultSlug:        "default",
		ReservedSubdomains: []string{"www", "api", "admin"},
		OverrideHeader:     "X-Tenant-Subdomain",
	}
}
