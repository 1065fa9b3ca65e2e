package tenant

import (
	"log/slog"
	"time"
)

type options struct {
	logger *slog.Logger
}

// Option configures a Resolver or the Middleware.
type Option func(*options)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type cacheOptions struct {
	ttl             time.Duration
	maxSize         int
	cleanupInterval time.Duration
	now             func() time.Time
}

// CacheOption configures NewCachedStore.
type CacheOption func(*cacheOptions)

// WithCacheTTL sets how long a tenant record stays cached. Default 5m.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(o *cacheOptions) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithCacheSize caps the number of cached slugs. Default DefaultCacheSize.
func WithCacheSize(n int) CacheOption {
	return func(o *cacheOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithCacheCleanupInterval sets the background purge period. Zero disables it.
func WithCacheCleanupInterval(d time.Duration) CacheOption {
	return func(o *cacheOptions) {
		if d >= 0 {
			o.cleanupInterval = d
		}
	}
}

// WithCacheClock overrides the time source.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(o *cacheOptions) {
		if now != nil {
			o.now = now
		}
	}
}
