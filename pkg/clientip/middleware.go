package clientip

import "net/http"

// Middleware resolves the client address once per request and stores it in
// the context. Pass no headers to trust only the TCP peer; pass
// DefaultHeaders... when running behind a proxy that sets them.
func Middleware(headers ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithIP(r.Context(), FromRequest(r, headers...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
