package authn

import (
	"errors"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// ErrIncompletePipeline is returned when a pipeline dependency is missing.
var ErrIncompletePipeline = errors.New("authn: pipeline requires a resolver, codec and revocation registry")

// PipelineConfig holds the collaborators of the three request stages.
type PipelineConfig struct {
	Resolver *tenant.Resolver
	Codec    *jwt.Codec
	Registry revocation.Registry
	Logger   *slog.Logger
}

// Pipeline returns the ordered request stages: tenant resolution, token
// authentication and company access. The order is fixed; each stage relies
// on the context established by the ones before it.
func Pipeline(cfg PipelineConfig) (chi.Middlewares, error) {
	if cfg.Resolver == nil || cfg.Codec == nil || cfg.Registry == nil {
		return nil, ErrIncompletePipeline
	}
	return chi.Chain(
		tenant.Middleware(cfg.Resolver, tenant.WithLogger(cfg.Logger)),
		Authenticate(cfg.Codec, cfg.Registry, WithLogger(cfg.Logger)),
		CompanyAccess(cfg.Codec, WithLogger(cfg.Logger)),
	), nil
}
