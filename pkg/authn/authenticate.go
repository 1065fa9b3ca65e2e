package authn

import (
	"net/http"

	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// Authenticate is the second pipeline stage. It reads a bearer token and, if
// the token is neither revoked nor invalid, attaches the Principal, the raw
// token and its claims to the request context.
//
// Every failure proceeds unauthenticated: a missing or non-bearer header, a
// revoked token, or a token failing verification. Downstream guards decide
// whether the route needs a principal.
//
// On success the token tenant overwrites the tenant cell of the request
// scope, and the cell is cleared again when the request unwinds.
func Authenticate(codec *jwt.Codec, registry revocation.Registry, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)
	log := o.logger.With(logger.Component("authn"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := o.extractor(r)
			if err != nil || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			revoked, err := registry.IsRevoked(ctx, token)
			if err != nil {
				log.WarnContext(ctx, "revocation check failed, treating request as unauthenticated",
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if revoked {
				log.InfoContext(ctx, "revoked token presented",
					logger.Path(r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				log.WarnContext(ctx, "token rejected",
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if s, ok := scope.FromContext(ctx); ok {
				s.Tenant().Set(claims.TenantID)
				defer s.Tenant().Clear()
			}

			ctx = jwt.SetToken(ctx, token)
			ctx = jwt.SetClaims(ctx, claims)
			ctx = WithPrincipal(ctx, PrincipalFromClaims(claims))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
