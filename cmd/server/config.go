package main

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/ratelimiter"
	"github.com/dmitrymomot/tenantkit/pkg/redis"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Config is the full process configuration.
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"production"`
	AppName string `env:"APP_NAME" envDefault:"tenantkit"`

	// SeedFile is a memstore YAML seed, used when PG_CONN_URL is empty.
	SeedFile   string `env:"SEED_FILE"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`

	TenantCacheTTL   time.Duration `env:"TENANT_CACHE_TTL" envDefault:"1m"`
	TenantCacheSize  int           `env:"TENANT_CACHE_SIZE" envDefault:"1024"`
	ReadinessTimeout time.Duration `env:"HEALTH_READINESS_TIMEOUT" envDefault:"2s"`

	// TrustedIPHeaders are honoured for the client address; empty trusts only the peer.
	TrustedIPHeaders []string           `env:"HTTP_TRUSTED_IP_HEADERS" envSeparator:","`
	LoginRateLimit   ratelimiter.Config `envPrefix:"LOGIN_"`

	Log        logger.Config
	HTTP       httpserver.Config
	JWT        jwt.Config
	Tenant     tenant.Config
	Revocation revocation.Config
	PG         pg.Config
	Redis      redis.Config
}

// Validate rejects combinations that cannot start.
func (c *Config) Validate() error {
	var errs []error
	if !c.PG.Enabled() && c.SeedFile == "" {
		errs = append(errs, errors.New("either PG_CONN_URL or SEED_FILE must be set"))
	}
	if c.Revocation.Backend == revocation.BackendRedis && !c.Redis.Enabled() {
		errs = append(errs, errors.New("REVOCATION_BACKEND=redis requires REDIS_URL"))
	}
	return errors.Join(errs...)
}

// DevMode reports whether development-only behaviour such as the tenant
// override header is enabled. Only an explicit development APP_ENV turns it
// on; an unset environment runs as production.
func (c *Config) DevMode() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == logger.EnvDevelopment || env == "dev"
}
