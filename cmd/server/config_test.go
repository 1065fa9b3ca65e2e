package main

import (
	"os"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/redis"
	"github.com/dmitrymomot/tenantkit/pkg/revocation"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "no store", cfg: Config{}, wantErr: true},
		{name: "seed file", cfg: Config{SeedFile: "seed.yaml"}},
		{name: "postgres", cfg: Config{PG: pg.Config{ConnectionString: "postgres://localhost/app"}}},
		{
			name:    "redis backend without url",
			cfg:     Config{SeedFile: "seed.yaml", Revocation: revocation.Config{Backend: revocation.BackendRedis}},
			wantErr: true,
		},
		{
			name: "redis backend",
			cfg: Config{
				SeedFile:   "seed.yaml",
				Revocation: revocation.Config{Backend: revocation.BackendRedis},
				Redis:      redis.Config{ConnectionURL: "redis://localhost:6379/0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_DevMode(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Config{AppEnv: "development"}).DevMode())
	assert.True(t, (&Config{AppEnv: " Dev "}).DevMode())
	assert.False(t, (&Config{}).DevMode(), "unset APP_ENV must not enable the override header")
	assert.False(t, (&Config{AppEnv: "production"}).DevMode())
	assert.False(t, (&Config{AppEnv: "staging"}).DevMode())
}

func TestConfig_AppEnvDefaultsToProduction(t *testing.T) {
	t.Setenv("PG_CONN_URL", "")
	t.Setenv("SEED_FILE", "seed.yaml")
	t.Setenv("JWT_SECRET", "c2VjcmV0")
	t.Setenv("APP_ENV", "")
	require.NoError(t, os.Unsetenv("APP_ENV"))

	var cfg Config
	require.NoError(t, env.Parse(&cfg))
	assert.Equal(t, logger.EnvProduction, cfg.AppEnv)
	assert.False(t, cfg.DevMode())
}
