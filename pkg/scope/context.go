package scope

import (
	"context"
	"log/slog"
	"strconv"
)

type contextKey struct{}

// WithScope attaches the scope to the context.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the scope attached to the context, if any.
func FromContext(ctx context.Context) (*Scope, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(contextKey{}).(*Scope)
	return s, ok && s != nil
}

// TenantID returns the current tenant id. The second value is false when no
// scope is attached or the tenant cell is unset.
func TenantID(ctx context.Context) (int64, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return 0, false
	}
	return s.Tenant().Get()
}

// CompanyID returns the current company id.
func CompanyID(ctx context.Context) (int64, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return 0, false
	}
	return s.Company().Get()
}

// IsSuperAdmin reports whether the request runs with the super-admin sentinel.
func IsSuperAdmin(ctx context.Context) bool {
	s, ok := FromContext(ctx)
	return ok && s.IsSuperAdmin()
}

// TenantLoggerExtractor returns a logger ContextExtractor that adds tenant_id
// to log records when the tenant cell is set.
func TenantLoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := TenantID(ctx); ok {
			return slog.String("tenant_id", strconv.FormatInt(id, 10)), true
		}
		return slog.Attr{}, false
	}
}

// CompanyLoggerExtractor is the company_id counterpart of TenantLoggerExtractor.
func CompanyLoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := CompanyID(ctx); ok {
			return slog.String("company_id", strconv.FormatInt(id, 10)), true
		}
		return slog.Attr{}, false
	}
}
