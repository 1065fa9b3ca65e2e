package tenant

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
)

// Tenant is the subset of a tenant record the request pipeline needs.
type Tenant struct {
	ID     int64  `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Store loads tenants by slug. Slugs passed in are already normalised.
type Store interface {
	// FindBySlug returns ErrTenantNotFound when no tenant has the slug.
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindActiveBySlug is FindBySlug plus ErrInactiveTenant for disabled tenants.
	FindActiveBySlug(ctx context.Context, slug string) (*Tenant, error)
}

// NormalizeSlug trims and case-folds a slug or host label.
func NormalizeSlug(s string) string {
	// cases.Caser is stateful and not safe for concurrent use.
	return cases.Fold().String(strings.TrimSpace(s))
}
