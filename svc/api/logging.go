package api

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tenantkit/pkg/authn"
	"github.com/dmitrymomot/tenantkit/pkg/clientip"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// RequestIDLoggerExtractor adds the chi request id to log records.
func RequestIDLoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := middleware.GetReqID(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}

// LoggerExtractors returns every context extractor the router populates.
func LoggerExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		RequestIDLoggerExtractor(),
		clientip.LoggerExtractor(),
		scope.TenantLoggerExtractor(),
		scope.CompanyLoggerExtractor(),
		authn.UsernameLoggerExtractor(),
	}
}
