package tenant

import (
	"net/http"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// Middleware is the first pipeline stage. It creates a fresh scope for the
// request, stores the resolved tenant in it and always calls next. Both cells
// are cleared when the request unwinds, panics included.
//
// A resolution error (missing default tenant) is logged and the request
// continues with the tenant cell unset.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)
	log := o.logger.With(logger.Component("tenant"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := scope.New()
			defer s.Clear()

			ctx := scope.WithScope(r.Context(), s)

			var override string
			if h := resolver.OverrideHeader(); h != "" {
				override = r.Header.Get(h)
			}

			id, err := resolver.Resolve(ctx, r.Host, override)
			if err != nil {
				log.ErrorContext(ctx, "tenant resolution failed",
					logger.Host(r.Host),
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
			} else {
				s.Tenant().Set(id)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
