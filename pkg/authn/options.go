package authn

import (
	"log/slog"

	"github.com/dmitrymomot/tenantkit/pkg/jwt"
)

type options struct {
	logger    *slog.Logger
	extractor jwt.TokenExtractorFunc
}

// Option configures the pipeline stages.
type Option func(*options)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTokenExtractor replaces the bearer header extractor.
func WithTokenExtractor(fn jwt.TokenExtractorFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.extractor = fn
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:    slog.New(slog.DiscardHandler),
		extractor: jwt.BearerTokenExtractor,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
