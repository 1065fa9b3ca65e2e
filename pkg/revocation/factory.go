package revocation

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// New builds the registry selected by cfg.Backend. The redis backend requires
// a non-nil client.
func New(cfg Config, decoder ExpiryDecoder, client redis.UniversalClient, log *slog.Logger) (Registry, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryRegistry(decoder,
			WithSweepInterval(cfg.SweepInterval),
			WithCleanupInterval(cfg.CleanupInterval),
			WithLogger(log),
		), nil
	case BackendRedis:
		if client == nil {
			return nil, ErrMissingClient
		}
		return NewRedisRegistry(client, decoder, WithKeyPrefix(cfg.KeyPrefix)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
