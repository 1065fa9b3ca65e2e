package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
	"github.com/dmitrymomot/tenantkit/svc/auth"
)

const selectUser = `SELECT u.id, u.username, u.email, u.password_hash, u.active, u.tenant_id FROM users u`

const matchIdentifier = `(lower(u.username) = $1 OR (u.email <> '' AND lower(u.email) = $1))`

// FindByUsernameOrEmail implements auth.Store.
func (r *Repository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*auth.Principal, error) {
	q := selectUser + ` WHERE ` + matchIdentifier + ` ORDER BY u.id LIMIT 1`
	return r.findPrincipal(ctx, q, auth.NormalizeIdentifier(identifier))
}

// FindByUsernameOrEmailWithinTenant implements auth.Store.
func (r *Repository) FindByUsernameOrEmailWithinTenant(ctx context.Context, identifier string, tenantID int64) (*auth.Principal, error) {
	q := selectUser + ` WHERE ` + matchIdentifier + `
		AND (u.tenant_id = $2 OR EXISTS (
			SELECT 1 FROM user_company_roles a WHERE a.user_id = u.id AND a.tenant_id = $2
		))
		ORDER BY u.id LIMIT 1`
	return r.findPrincipal(ctx, q, auth.NormalizeIdentifier(identifier), tenantID)
}

// FindSystemAdminByUsernameOrEmail implements auth.Store.
func (r *Repository) FindSystemAdminByUsernameOrEmail(ctx context.Context, identifier string) (*auth.Principal, error) {
	q := selectUser + ` WHERE ` + matchIdentifier + `
		AND EXISTS (
			SELECT 1 FROM user_company_roles a JOIN roles r ON r.id = a.role_id
			WHERE a.user_id = u.id AND a.active AND r.kind = 'system'
		)
		ORDER BY u.id LIMIT 1`
	return r.findPrincipal(ctx, q, auth.NormalizeIdentifier(identifier))
}

func (r *Repository) findPrincipal(ctx context.Context, q string, args ...any) (*auth.Principal, error) {
	var p auth.Principal
	err := r.db.QueryRow(ctx, q, args...).Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.Active, &p.TenantID)
	if pg.IsNotFoundError(err) {
		return nil, auth.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: find principal: %w", err)
	}

	p.Assignments, err = r.assignments(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) assignments(ctx context.Context, userID int64) ([]auth.Assignment, error) {
	const q = `
		SELECT a.tenant_id, a.company_id, a.active, r.name, r.kind,
			COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
		FROM user_company_roles a
		JOIN roles r ON r.id = a.role_id
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE a.user_id = $1
		GROUP BY a.id, r.id
		ORDER BY a.id`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: load assignments: %w", err)
	}
	defer rows.Close()

	var out []auth.Assignment
	for rows.Next() {
		var (
			a                   auth.Assignment
			tenantID, companyID *int64
			kind                string
		)
		if err := rows.Scan(&tenantID, &companyID, &a.Active, &a.Role.Name, &kind, &a.Role.Permissions); err != nil {
			return nil, fmt.Errorf("repository: scan assignment: %w", err)
		}
		if tenantID != nil {
			a.TenantID = *tenantID
		}
		if companyID != nil {
			a.CompanyID = *companyID
		}
		a.Role.Kind = rbac.ScopeKind(kind)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: load assignments: %w", err)
	}
	return out, nil
}

// CreateRole inserts role with its permissions. Permissions are created as
// needed. Inherited permissions must already be folded in, as rbac.Catalog does.
func (r *Repository) CreateRole(ctx context.Context, role rbac.Role) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var roleID int64
		err := tx.QueryRow(ctx, `INSERT INTO roles (name, kind) VALUES ($1, $2) RETURNING id`, role.Name, string(role.Kind)).Scan(&roleID)
		if pg.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: role %s", ErrAlreadyExists, role.Name)
		}
		if err != nil {
			return fmt.Errorf("repository: create role: %w", err)
		}

		for _, perm := range slices.Compact(slices.Sorted(slices.Values(role.Permissions))) {
			var permID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO permissions (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`, perm).Scan(&permID)
			if err != nil {
				return fmt.Errorf("repository: upsert permission %s: %w", perm, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`, roleID, permID); err != nil {
				return fmt.Errorf("repository: grant %s to %s: %w", perm, role.Name, err)
			}
		}
		return nil
	})
}

// CreatePrincipal inserts p and its assignments, resolving roles by name, and
// returns the new id. p.ID is ignored.
func (r *Repository) CreatePrincipal(ctx context.Context, p auth.Principal) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash, active, tenant_id)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			p.Username, p.Email, p.PasswordHash, p.Active, p.TenantID,
		).Scan(&id)
		if pg.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: principal %s", ErrAlreadyExists, p.Username)
		}
		if err != nil {
			return fmt.Errorf("repository: create principal: %w", err)
		}

		for _, a := range p.Assignments {
			tag, err := tx.Exec(ctx, `
				INSERT INTO user_company_roles (user_id, tenant_id, company_id, role_id, active)
				SELECT $1, $2, $3, r.id, $5 FROM roles r WHERE r.name = $4`,
				id, nullID(a.TenantID), nullID(a.CompanyID), a.Role.Name, a.Active,
			)
			if pg.IsForeignKeyViolationError(err) {
				return fmt.Errorf("%w: assignment of %s", ErrReferenceNotFound, a.Role.Name)
			}
			if err != nil {
				return fmt.Errorf("repository: assign %s: %w", a.Role.Name, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: role %s", ErrReferenceNotFound, a.Role.Name)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
