package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness probe that pings the server. Failures
// include pool timeouts for clients that expose pool stats.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}
		if s, ok := client.(interface{ PoolStats() *redis.PoolStats }); ok {
			st := s.PoolStats()
			err = errors.Join(err, fmt.Errorf("pool: %d total, %d timeouts", st.TotalConns, st.Timeouts))
		}
		return errors.Join(ErrHealthcheckFailed, err)
	}
}
