package tenant

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// AdminSubdomain is the label that always selects the super-admin scope.
const AdminSubdomain = "admin"

const localhost = "localhost"

// Config drives host-based tenant resolution.
type Config struct {
	BaseDomain         string   `env:"TENANT_BASE_DOMAIN" envDefault:"example.com"`
	DefaultSlug        string   `env:"TENANT_DEFAULT_SLUG" envDefault:"default"`
	ReservedSubdomains []string `env:"TENANT_RESERVED_SUBDOMAINS" envDefault:"www,api,static" envSeparator:","`
	OverrideHeader     string   `env:"TENANT_OVERRIDE_HEADER" envDefault:"X-Tenant-Subdomain"`

	// DevMode enables OverrideHeader. Set from the application environment.
	DevMode bool
}

// Resolver maps a request host (and in development an override value) to a
// tenant id or scope.SuperAdminTenantID.
type Resolver struct {
	store    Store
	base     string
	def      string
	reserved map[string]struct{}
	header   string
	devMode  bool
	logger   *slog.Logger
}

// NewResolver validates cfg and builds a resolver.
func NewResolver(store Store, cfg Config, opts ...Option) (*Resolver, error) {
	if store == nil {
		return nil, ErrMissingStore
	}
	def := NormalizeSlug(cfg.DefaultSlug)
	if def == "" {
		return nil, ErrMissingDefaultSlug
	}

	o := newOptions(opts)

	reserved := make(map[string]struct{}, len(cfg.ReservedSubdomains))
	for _, s := range cfg.ReservedSubdomains {
		if s = NormalizeSlug(s); s != "" {
			reserved[s] = struct{}{}
		}
	}

	return &Resolver{
		store:    store,
		base:     strings.TrimSuffix(NormalizeSlug(cfg.BaseDomain), "."),
		def:      def,
		reserved: reserved,
		header:   cfg.OverrideHeader,
		devMode:  cfg.DevMode,
		logger:   o.logger,
	}, nil
}

// OverrideHeader returns the development override header name.
func (r *Resolver) OverrideHeader() string { return r.header }

// Resolve returns the tenant id for host. The override is consulted only in
// development mode. Unknown, inactive or reserved subdomains resolve to the
// default tenant; the only error is ErrDefaultTenantMissing.
func (r *Resolver) Resolve(ctx context.Context, host, override string) (int64, error) {
	if r.devMode && override != "" {
		slug := NormalizeSlug(override)
		if slug == AdminSubdomain {
			return scope.SuperAdminTenantID, nil
		}
		t, err := r.store.FindActiveBySlug(ctx, slug)
		if err == nil {
			return t.ID, nil
		}
		r.logger.DebugContext(ctx, "override tenant not resolved",
			logger.TenantSlug(slug),
			logger.Error(err),
		)
	}

	h := hostname(host)
	if h == localhost || (r.base != "" && h == r.base) {
		return scope.SuperAdminTenantID, nil
	}

	candidate := r.subdomain(h)
	if candidate == AdminSubdomain {
		return scope.SuperAdminTenantID, nil
	}
	if _, reserved := r.reserved[candidate]; candidate == "" || reserved {
		return r.resolveDefault(ctx)
	}

	t, err := r.store.FindActiveBySlug(ctx, candidate)
	if err != nil {
		level := slog.LevelDebug
		if !errors.Is(err, ErrTenantNotFound) && !errors.Is(err, ErrInactiveTenant) {
			level = slog.LevelWarn
		}
		r.logger.Log(ctx, level, "subdomain fell back to default tenant",
			logger.TenantSlug(candidate),
			logger.Host(h),
			logger.Error(err),
		)
		return r.resolveDefault(ctx)
	}
	return t.ID, nil
}

// subdomain extracts the leftmost label of "label.localhost" or
// "label.<base-domain>". Any other host yields "".
func (r *Resolver) subdomain(h string) string {
	var rest string
	switch {
	case strings.HasSuffix(h, "."+localhost):
		rest = strings.TrimSuffix(h, "."+localhost)
	case r.base != "" && strings.HasSuffix(h, "."+r.base):
		rest = strings.TrimSuffix(h, "."+r.base)
	default:
		return ""
	}
	label, _, _ := strings.Cut(rest, ".")
	return label
}

func (r *Resolver) resolveDefault(ctx context.Context) (int64, error) {
	t, err := r.store.FindBySlug(ctx, r.def)
	if err != nil {
		return 0, errors.Join(ErrDefaultTenantMissing, err)
	}
	return t.ID, nil
}

// hostname strips the port and any trailing dot, and folds case.
func hostname(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	return strings.TrimSuffix(NormalizeSlug(host), ".")
}
