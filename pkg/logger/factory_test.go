package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json at info by default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))

		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("hello", slog.String("k", "v"))
		entry := decode(t, buf)
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "v", entry["k"])
	})

	t.Run("static attributes and extractors", func(t *testing.T) {
		t.Parallel()
		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithAttr(slog.String("svc", "test")),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(key{}).(string)
				return slog.String("request_id", v), ok
			}),
		)

		log.InfoContext(context.WithValue(context.Background(), key{}, "req-1"), "hello")
		entry := decode(t, buf)
		assert.Equal(t, "test", entry["svc"])
		assert.Equal(t, "req-1", entry["request_id"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantEnv   string
		debugSeen bool
	}{
		{env: logger.EnvDevelopment, wantEnv: "development", debugSeen: true},
		{env: "dev", wantEnv: "development", debugSeen: true},
		{env: "qa", wantEnv: "development", debugSeen: true},
		{env: "Stage", wantEnv: "staging"},
		{env: "prod", wantEnv: "production"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			log := logger.New(
				logger.WithEnvironment(tt.env, "tenantkit"),
				logger.WithFormat(logger.FormatJSON),
				logger.WithOutput(buf),
			)

			log.Debug("probe")
			if !tt.debugSeen {
				assert.Empty(t, buf.String())
				log.Info("probe")
			}
			entry := decode(t, buf)
			assert.Equal(t, "tenantkit", entry["service"])
			assert.Equal(t, tt.wantEnv, entry["env"])
		})
	}
}

func TestWithConfig(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithEnvironment(logger.EnvProduction, "tenantkit"),
		logger.WithConfig(logger.Config{Level: "DEBUG", Format: "text"}),
		logger.WithOutput(buf),
	)
	log.Debug("probe")
	assert.Contains(t, buf.String(), "level=DEBUG")

	assert.Panics(t, func() { logger.New(logger.WithConfig(logger.Config{Level: "loud"})) })
	assert.Panics(t, func() { logger.New(logger.WithConfig(logger.Config{Format: "xml"})) })
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	} {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSetAsDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("via default")
	assert.Contains(t, buf.String(), "via default")
}
