package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/config"
)

type serverConfig struct {
	Name    string        `env:"TENANTKIT_TEST_NAME" envDefault:"tenantkit"`
	Port    int           `env:"TENANTKIT_TEST_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TENANTKIT_TEST_TIMEOUT" envDefault:"5s"`
	List    []string      `env:"TENANTKIT_TEST_LIST" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"TENANTKIT_TEST_SECRET,required"`
}

type validatedConfig struct {
	Port int `env:"TENANTKIT_TEST_VALIDATED_PORT" envDefault:"0"`
}

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

// Tests in this package mutate the process environment and the shared
// cache, so none of them run in parallel.

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Setenv("TENANTKIT_TEST_PORT", "9090")
	t.Setenv("TENANTKIT_TEST_TIMEOUT", "2s")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "tenantkit", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("TENANTKIT_TEST_PORT", "1")

		var again serverConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, 9090, again.Port)

		require.NoError(t, config.ForceReload(&again))
		assert.Equal(t, 1, again.Port)
	})
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()

	assert.ErrorIs(t, config.Load[serverConfig](nil), config.ErrNilPointer)

	var req requiredConfig
	assert.ErrorIs(t, config.Load(&req), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&req) })

	t.Setenv("TENANTKIT_TEST_SECRET", "s3cret")
	require.NoError(t, config.Load(&req), "failed parses are not cached")
	assert.Equal(t, "s3cret", req.Secret)
}

func TestLoad_Validate(t *testing.T) {
	config.ResetCache()

	var cfg validatedConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "port must be positive")

	t.Setenv("TENANTKIT_TEST_VALIDATED_PORT", "8443")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 8443, cfg.Port)
}

func TestLoadEnv(t *testing.T) {
	for _, k := range []string{"TENANTKIT_TEST_NAME", "TENANTKIT_TEST_PORT", "TENANTKIT_TEST_LIST"} {
		t.Setenv(k, "")
	}

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.List)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
}
