package repository

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// FindBySlug implements tenant.Store.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	const q = `SELECT id, slug, name, active FROM tenants WHERE slug = $1`

	var t tenant.Tenant
	err := r.db.QueryRow(ctx, q, tenant.NormalizeSlug(slug)).Scan(&t.ID, &t.Slug, &t.Name, &t.Active)
	if pg.IsNotFoundError(err) {
		return nil, tenant.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: find tenant %q: %w", slug, err)
	}
	return &t, nil
}

// FindActiveBySlug implements tenant.Store.
func (r *Repository) FindActiveBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	t, err := r.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, tenant.ErrInactiveTenant
	}
	return t, nil
}

// CreateTenant inserts t and returns its id.
func (r *Repository) CreateTenant(ctx context.Context, t tenant.Tenant) (int64, error) {
	const q = `INSERT INTO tenants (slug, name, active) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, q, tenant.NormalizeSlug(t.Slug), t.Name, t.Active).Scan(&id); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("%w: tenant %s", ErrAlreadyExists, t.Slug)
		}
		return 0, fmt.Errorf("repository: create tenant: %w", err)
	}
	return id, nil
}

// CreateCompany inserts a company under tenantID and returns its id.
func (r *Repository) CreateCompany(ctx context.Context, tenantID int64, name string) (int64, error) {
	const q = `INSERT INTO companies (tenant_id, name) VALUES ($1, $2) RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, q, tenantID, name).Scan(&id); err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return 0, fmt.Errorf("%w: tenant %d", ErrReferenceNotFound, tenantID)
		}
		return 0, fmt.Errorf("repository: create company: %w", err)
	}
	return id, nil
}
