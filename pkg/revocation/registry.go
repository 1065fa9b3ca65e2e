package revocation

import (
	"context"
	"time"
)

// Registry tracks revoked tokens until their natural expiry.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Revoke records the token. It reports true when the token is unexpired
	// and therefore tracked after the call, false when it had already expired.
	Revoke(ctx context.Context, token string) (bool, error)

	// IsRevoked reports whether the token was revoked and has not yet expired.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// Sweep drops entries whose expiry has passed and returns how many were dropped.
	Sweep(ctx context.Context) (int, error)

	// Close releases background resources.
	Close() error
}

// ExpiryDecoder reads a token's exp claim without verifying its signature.
type ExpiryDecoder interface {
	ExpiresAt(token string) (time.Time, error)
}

// ExpiryDecoderFunc adapts a function to ExpiryDecoder.
type ExpiryDecoderFunc func(token string) (time.Time, error)

// ExpiresAt calls f.
func (f ExpiryDecoderFunc) ExpiresAt(token string) (time.Time, error) { return f(token) }

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds registry settings loaded from the environment.
type Config struct {
	Backend         string        `env:"REVOCATION_BACKEND" envDefault:"memory"`       // Backend is "memory" or "redis".
	SweepInterval   time.Duration `env:"REVOCATION_SWEEP_INTERVAL" envDefault:"1m"`    // SweepInterval rate-limits the sweep triggered by Revoke.
	CleanupInterval time.Duration `env:"REVOCATION_CLEANUP_INTERVAL" envDefault:"10m"` // CleanupInterval is the period of the background sweep.
	KeyPrefix       string        `env:"REVOCATION_KEY_PREFIX" envDefault:"revoked:"`  // KeyPrefix namespaces Redis keys.
}
