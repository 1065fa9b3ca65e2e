package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

// Migrations locates goose SQL files, usually inside an embed.FS.
type Migrations struct {
	FS  fs.FS
	Dir string
}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrate applies all pending migrations through a database/sql bridge over pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, m Migrations, cfg Config, log *slog.Logger) error {
	if m.FS == nil {
		return errors.Join(ErrFailedToApplyMigrations, ErrMissingMigrations)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	dir := m.Dir
	if dir == "" {
		dir = "."
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", logger.Error(err))
		}
	}()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(m.FS)
	goose.SetLogger(&gooseLogger{log: log.With(logger.Component("migrations"))})
	goose.SetTableName(cfg.MigrationsTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// gooseLogger routes goose output to slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}
