package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Healthcheck returns a readiness probe that runs a trivial query on a pooled
// connection. Failures carry the pool counters so an exhausted pool is easy to
// tell apart from an unreachable server.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		var one int
		if err := pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
			st := pool.Stat()
			return errors.Join(ErrHealthcheckFailed, err,
				fmt.Errorf("pool: %d/%d connections acquired", st.AcquiredConns(), st.MaxConns()))
		}
		return nil
	}
}
