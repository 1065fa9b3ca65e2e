package revocation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

// MemoryRegistry is an in-process Registry backed by a map.
type MemoryRegistry struct {
	decoder ExpiryDecoder
	now     func() time.Time
	logger  *slog.Logger

	sweepInterval time.Duration

	mu        sync.RWMutex
	entries   map[string]time.Time
	lastSweep time.Time
	closed    bool

	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

// MemoryOption configures a MemoryRegistry.
type MemoryOption func(*MemoryRegistry)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(r *MemoryRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSweepInterval sets the minimum gap between sweeps triggered by Revoke.
// Zero sweeps on every Revoke.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(r *MemoryRegistry) {
		if d >= 0 {
			r.sweepInterval = d
		}
	}
}

// WithCleanupInterval starts a background sweep every d. Zero disables it.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(r *MemoryRegistry) {
		if d > 0 {
			r.ticker = time.NewTicker(d)
		}
	}
}

// WithLogger sets the logger used for sweep reports.
func WithLogger(l *slog.Logger) MemoryOption {
	return func(r *MemoryRegistry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewMemoryRegistry creates a registry and starts its cleanup loop if configured.
func NewMemoryRegistry(decoder ExpiryDecoder, opts ...MemoryOption) *MemoryRegistry {
	r := &MemoryRegistry{
		decoder:       decoder,
		now:           time.Now,
		logger:        slog.New(slog.DiscardHandler),
		sweepInterval: time.Minute,
		entries:       make(map[string]time.Time),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.ticker != nil {
		go r.cleanupLoop()
	} else {
		close(r.done)
	}

	return r
}

// Revoke implements Registry.
func (r *MemoryRegistry) Revoke(ctx context.Context, token string) (bool, error) {
	exp, err := r.decoder.ExpiresAt(token)
	if err != nil {
		return false, errors.Join(ErrUntrackable, err)
	}

	now := r.now()
	if !now.Before(exp) {
		return false, nil
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false, ErrRegistryClosed
	}
	r.entries[token] = exp
	due := now.Sub(r.lastSweep) >= r.sweepInterval
	r.mu.Unlock()

	if due {
		r.sweep(ctx, now)
	}

	return true, nil
}

// IsRevoked implements Registry. An entry past its expiry counts as absent
// even before it is swept.
func (r *MemoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	exp, ok := r.entries[token]
	r.mu.RUnlock()

	return ok && r.now().Before(exp), nil
}

// Sweep implements Registry.
func (r *MemoryRegistry) Sweep(ctx context.Context) (int, error) {
	return r.sweep(ctx, r.now()), nil
}

// Len returns the number of tracked entries, expired ones included.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close stops the cleanup loop. It is safe to call more than once.
func (r *MemoryRegistry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	if r.ticker != nil {
		r.ticker.Stop()
		close(r.stop)
	}
	<-r.done
	return nil
}

func (r *MemoryRegistry) sweep(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	removed := 0
	for token, exp := range r.entries {
		if !now.Before(exp) {
			delete(r.entries, token)
			removed++
		}
	}
	r.lastSweep = now
	remaining := len(r.entries)
	r.mu.Unlock()

	if removed > 0 {
		r.logger.DebugContext(ctx, "swept expired revocations",
			logger.Component("revocation"),
			slog.Int("removed", removed),
			slog.Int("remaining", remaining),
		)
	}
	return removed
}

func (r *MemoryRegistry) cleanupLoop() {
	defer close(r.done)
	for {
		select {
		case <-r.ticker.C:
			r.sweep(context.Background(), r.now())
		case <-r.stop:
			return
		}
	}
}
