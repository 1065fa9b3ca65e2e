// Package pg bootstraps a PostgreSQL connection pool on pgx/v5 and applies
// goose migrations over it.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, repository.Migrations(), cfg, log); err != nil {
//		return err
//	}
//
// Healthcheck wraps the pool in a readiness probe. IsNotFoundError,
// IsDuplicateKeyError and IsForeignKeyViolationError classify driver errors.
package pg
