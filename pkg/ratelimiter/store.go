package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. Implementations must be safe for concurrent use.
type Store interface {
	// ConsumeTokens refills the bucket for key, then takes tokens if enough are
	// available. Remaining is negative, and nothing is taken, when they are
	// not. A zero tokens value only reports the state.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)

	// Reset forgets key.
	Reset(ctx context.Context, key string) error
}
