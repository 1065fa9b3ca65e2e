// Package redis connects to Redis for the shared revocation registry.
//
// Connect retries the initial ping according to Config, and Healthcheck
// produces a probe suitable for the readiness endpoint:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	registry := revocation.NewRedisRegistry(client, codec)
//
// Config fields load from REDIS_* environment variables. Leaving REDIS_URL
// empty disables Redis; see Config.Enabled.
package redis
