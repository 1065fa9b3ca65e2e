// Command server runs the tenant-aware authentication API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenantkit/pkg/config"
	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/ratelimiter"
	"github.com/dmitrymomot/tenantkit/pkg/redis"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	"github.com/dmitrymomot/tenantkit/svc/api"
	"github.com/dmitrymomot/tenantkit/svc/auth"
	"github.com/dmitrymomot/tenantkit/svc/memstore"
	"github.com/dmitrymomot/tenantkit/svc/repository"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(api.LoggerExtractors()...),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// store is what both backends provide.
type store interface {
	tenant.Store
	auth.Store
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	var (
		st     store
		checks []httpserver.Check
	)

	if cfg.PG.Enabled() {
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pg.Migrate(ctx, pool, repository.Migrations(), cfg.PG, log); err != nil {
			return err
		}
		st = repository.New(pool)
		checks = append(checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})
		log.InfoContext(ctx, "using postgres store")
	} else {
		mem, err := memstore.LoadFile(cfg.SeedFile, memstore.WithBcryptCost(cfg.BcryptCost))
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		st = mem
		log.InfoContext(ctx, "using in-memory store", slog.String("seed", cfg.SeedFile), slog.Int("tenants", len(mem.Tenants())))
	}

	var redisClient goredis.UniversalClient
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
	}

	codec, err := jwt.NewFromConfig(cfg.JWT)
	if err != nil {
		return err
	}

	registry, err := revocation.New(cfg.Revocation, codec, redisClient, log)
	if err != nil {
		return err
	}
	defer registry.Close()

	var tenants tenant.Store = st
	if cfg.TenantCacheTTL > 0 {
		cached := tenant.NewCachedStore(st,
			tenant.WithCacheTTL(cfg.TenantCacheTTL),
			tenant.WithCacheSize(cfg.TenantCacheSize),
		)
		defer cached.Close()
		tenants = cached
	}

	tenantCfg := cfg.Tenant
	tenantCfg.DevMode = cfg.DevMode()
	resolver, err := tenant.NewResolver(tenants, tenantCfg, tenant.WithLogger(log))
	if err != nil {
		return err
	}

	svc, err := auth.NewService(st, codec, registry,
		auth.WithLogger(log),
		auth.WithBcryptCost(cfg.BcryptCost),
	)
	if err != nil {
		return err
	}

	var limitStore ratelimiter.Store
	if redisClient != nil {
		limitStore = ratelimiter.NewRedisStore(redisClient, ratelimiter.WithKeyPrefix(cfg.AppName+":login:"))
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limitStore = mem
	}
	limiter, err := ratelimiter.NewBucket(limitStore, cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	router, err := api.NewRouter(api.Deps{
		Logger:           log,
		Resolver:         resolver,
		Codec:            codec,
		Registry:         registry,
		Auth:             svc,
		Checks:           checks,
		ReadinessTimeout: cfg.ReadinessTimeout,
		LoginLimiter:     limiter,
		TrustedIPHeaders: cfg.TrustedIPHeaders,
	})
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, router); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
