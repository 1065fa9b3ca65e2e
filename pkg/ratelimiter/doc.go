// Package ratelimiter provides token bucket rate limiting with in-memory and
// Redis stores, and HTTP middleware used to throttle sign-in attempts.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one token. Partial refill progress is kept
// between calls, so a steady trickle of requests is not penalised by the
// interval boundaries.
//
// # Basic Usage
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,               // burst size
//		RefillRate:     1,                // tokens per interval
//		RefillInterval: 30 * time.Second, // refill cadence
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := limiter.Allow(ctx, "tenant:7:ip:203.0.113.9")
//	if err != nil {
//		return err
//	}
//	if !result.Allowed() {
//		wait := result.RetryAfter(time.Now())
//		// reject, ask the caller to retry after wait
//	}
//
// A denied request does not drain the bucket. Its Result reports how many
// tokens were missing through a negative Remaining. Status inspects a bucket
// without consuming, and Reset forgets it, for example after a successful
// password change.
//
// # Stores
//
// MemoryStore keeps buckets in a map and drops idle ones in the background:
//
//	store := ratelimiter.NewMemoryStore(
//		ratelimiter.WithCleanupInterval(time.Minute),
//		ratelimiter.WithStaleAfter(10*time.Minute),
//	)
//
// RedisStore runs the same algorithm as a Lua script, so every instance
// behind a load balancer shares one budget per key:
//
//	store := ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix("tenantkit:login:"))
//
// # HTTP Middleware
//
//	r.With(ratelimiter.Middleware(limiter,
//		ratelimiter.Composite(ratelimiter.ByTenant(), ratelimiter.ByClientIP()),
//		log,
//	)).Post("/login", login)
//
// ByTenant reads the tenant resolved by the pipeline and ByClientIP the
// address recorded by clientip.Middleware. Composite joins them and hashes
// keys that grow too long. An empty key skips limiting.
//
// Responses carry these headers:
//   - X-RateLimit-Limit: bucket capacity
//   - X-RateLimit-Remaining: tokens left, never negative
//   - X-RateLimit-Reset: Unix time of the next refill
//   - Retry-After: seconds to wait, on 429 only
//
// A denied request gets 429 with the "too_many_requests" key. A store failure
// is logged and answered with 503, so a Redis outage does not silently lift
// the limit.
//
// # Configuration
//
// Config is loadable from the environment. The server loads the login bucket
// with the LOGIN_ prefix:
//
//	LOGIN_RATE_LIMIT_CAPACITY=5
//	LOGIN_RATE_LIMIT_REFILL_RATE=1
//	LOGIN_RATE_LIMIT_REFILL_INTERVAL=1m
package ratelimiter
