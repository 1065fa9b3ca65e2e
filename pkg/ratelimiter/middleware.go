package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/tenantkit/handler"
	"github.com/dmitrymomot/tenantkit/pkg/clientip"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

const maxKeyLength = 64

// ErrTooManyRequests is written when a bucket is empty.
var ErrTooManyRequests = handler.NewHTTPError(http.StatusTooManyRequests, "too_many_requests", "")

// KeyFunc derives a bucket key from the request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByClientIP keys on the address stored by clientip.Middleware.
func ByClientIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.FromContext(r.Context()); ip != "" {
			return "ip:" + ip
		}
		return ""
	}
}

// ByTenant keys on the resolved tenant, so one tenant cannot exhaust another's budget.
func ByTenant() KeyFunc {
	return func(r *http.Request) string {
		if id, ok := scope.TenantID(r.Context()); ok {
			return "t:" + strconv.FormatInt(id, 10)
		}
		return ""
	}
}

// Composite joins the non-empty keys of fns. Keys longer than 64 bytes are
// replaced by their FNV-1a hash.
func Composite(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		key := strings.Join(parts, ":")
		if len(key) > maxKeyLength {
			h := fnv.New64a()
			_, _ = h.Write([]byte(key))
			return strconv.FormatUint(h.Sum64(), 36)
		}
		return key
	}
}

// Middleware takes one token per request and answers 429 with Retry-After
// once the bucket is empty. Store failures are logged and answered with 503.
func Middleware(b *Bucket, keyFunc KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With(logger.Component("ratelimiter"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := b.Allow(r.Context(), key)
			if err != nil {
				log.ErrorContext(r.Context(), "rate limit check failed", logger.Path(r.URL.Path), logger.Error(err))
				handler.WriteError(w, handler.ErrServiceUnavailable)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				retry := int((result.RetryAfter(time.Now()) + time.Second - 1) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
				log.WarnContext(r.Context(), "rate limit exceeded", logger.Path(r.URL.Path), slog.String("key", key))
				handler.WriteError(w, ErrTooManyRequests.WithMessage("%s", "too many attempts, retry later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
