package repository

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/tenantkit/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the embedded schema for pg.Migrate.
func Migrations() pg.Migrations {
	return pg.Migrations{FS: migrations, Dir: "migrations"}
}

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements tenant.Store and auth.Store on PostgreSQL.
type Repository struct {
	db DBTX
}

// New creates a repository over db.
func New(db DBTX) *Repository {
	return &Repository{db: db}
}
