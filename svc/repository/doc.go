// Package repository stores tenants, companies, roles and principals in
// PostgreSQL. It implements tenant.Store and auth.Store and ships its schema as
// embedded goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	if err := pg.Migrate(ctx, pool, repository.Migrations(), cfg, log); err != nil { ... }
//	repo := repository.New(pool)
//
// Identifiers are matched case-insensitively against username and email.
// Lookups that find nothing return auth.ErrPrincipalNotFound or
// tenant.ErrTenantNotFound so callers never see pgx.ErrNoRows.
package repository
