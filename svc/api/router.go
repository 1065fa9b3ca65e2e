package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tenantkit/pkg/authn"
	"github.com/dmitrymomot/tenantkit/pkg/clientip"
	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/ratelimiter"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	"github.com/dmitrymomot/tenantkit/svc/auth"
)

// ErrMissingService is returned by NewRouter without a session service.
var ErrMissingService = errors.New("api: session service is required")

// Deps are the collaborators of the HTTP surface.
type Deps struct {
	Logger   *slog.Logger
	Resolver *tenant.Resolver
	Codec    *jwt.Codec
	Registry revocation.Registry
	Auth     *auth.Service

	// LoginLimiter throttles POST /login per tenant and client address when set.
	LoginLimiter *ratelimiter.Bucket
	// TrustedIPHeaders are the forwarding headers honoured by clientip.
	TrustedIPHeaders []string

	// Checks back /health/ready. ReadinessTimeout bounds a single probe run.
	Checks           []httpserver.Check
	ReadinessTimeout time.Duration
}

// NewRouter wires the request pipeline in front of the session and company
// endpoints. Health endpoints sit outside the pipeline.
func NewRouter(d Deps) (http.Handler, error) {
	if d.Auth == nil {
		return nil, ErrMissingService
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}

	stages, err := authn.Pipeline(authn.PipelineConfig{
		Resolver: d.Resolver,
		Codec:    d.Codec,
		Registry: d.Registry,
		Logger:   d.Logger,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, clientip.Middleware(d.TrustedIPHeaders...))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(d.Logger, d.ReadinessTimeout, d.Checks...))

	r.Group(func(r chi.Router) {
		r.Use(stages...)

		companies := newCompanyHandlers(d.Logger)
		r.Route("/companies/{companyID}", func(r chi.Router) {
			r.Use(authn.RequireAuthenticated())
			r.Get("/scope", companies.Scope())
		})

		var login []func(http.Handler) http.Handler
		if d.LoginLimiter != nil {
			login = append(login, ratelimiter.Middleware(d.LoginLimiter,
				ratelimiter.Composite(ratelimiter.ByTenant(), ratelimiter.ByClientIP()), d.Logger))
		}
		r.Mount("/", auth.NewHandlers(d.Auth, d.Logger).Routes(login...))
	})

	return r, nil
}
