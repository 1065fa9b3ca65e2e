package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body httpserver.HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "alive", body.Status)
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	ok := httpserver.Check{Name: "postgres", Probe: func(context.Context) error { return nil }}
	failing := httpserver.Check{Name: "redis", Probe: func(context.Context) error { return errors.New("down") }}
	deadline := httpserver.Check{Name: "slow", Probe: func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("no deadline")
		}
		return nil
	}}

	tests := []struct {
		name   string
		checks []httpserver.Check
		status int
		want   httpserver.HealthStatus
	}{
		{"no checks", nil, http.StatusOK, httpserver.HealthStatus{Status: "ready"}},
		{"all ok", []httpserver.Check{ok, deadline}, http.StatusOK, httpserver.HealthStatus{
			Status: "ready",
			Checks: map[string]string{"postgres": "ok", "slow": "ok"},
		}},
		{"one failing", []httpserver.Check{ok, failing}, http.StatusServiceUnavailable, httpserver.HealthStatus{
			Status: "not_ready",
			Checks: map[string]string{"postgres": "ok", "redis": "failed"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			httpserver.ReadinessHandler(nil, time.Second, tt.checks...)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.status, rec.Code)
			var body httpserver.HealthStatus
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body)
		})
	}
}
