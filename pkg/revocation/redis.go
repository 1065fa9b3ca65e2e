package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRegistry stores revocations as Redis keys that expire together with
// the token. Tokens are hashed before being used as keys.
type RedisRegistry struct {
	client  redis.UniversalClient
	decoder ExpiryDecoder
	prefix  string
	now     func() time.Time
}

// RedisOption configures a RedisRegistry.
type RedisOption func(*RedisRegistry)

// WithKeyPrefix sets the key namespace. Defaults to "revoked:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisRegistry) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithRedisClock overrides the time source used to skip expired tokens.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(r *RedisRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRedisRegistry creates a registry on top of an existing client.
// The caller owns the client; Close does not close it.
func NewRedisRegistry(client redis.UniversalClient, decoder ExpiryDecoder, opts ...RedisOption) *RedisRegistry {
	r := &RedisRegistry{
		client:  client,
		decoder: decoder,
		prefix:  "revoked:",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Revoke implements Registry.
func (r *RedisRegistry) Revoke(ctx context.Context, token string) (bool, error) {
	exp, err := r.decoder.ExpiresAt(token)
	if err != nil {
		return false, errors.Join(ErrUntrackable, err)
	}
	if !r.now().Before(exp) {
		return false, nil
	}

	if err := r.client.SetArgs(ctx, r.key(token), 1, redis.SetArgs{ExpireAt: exp}).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// IsRevoked implements Registry.
func (r *RedisRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Sweep is a no-op: Redis evicts keys at their EXPIREAT.
func (r *RedisRegistry) Sweep(context.Context) (int, error) {
	return 0, nil
}

// Close implements Registry.
func (r *RedisRegistry) Close() error {
	return nil
}

func (r *RedisRegistry) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return r.prefix + hex.EncodeToString(sum[:])
}
