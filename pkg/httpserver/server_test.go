package httpserver_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return l
}

// start runs srv in the background and returns a channel with Run's result.
func start(t *testing.T, ctx context.Context, srv *httpserver.Server, h http.Handler) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()
	require.Eventually(t, func() bool { return srv.Addr() != nil }, time.Second, 5*time.Millisecond)
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		require.FailNow(t, "Run did not return")
		return nil
	}
}

func TestServer_RunAndCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.New(httpserver.WithListener(listen(t)))
	done := start(t, ctx, srv, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))

	resp, err := http.Get("http://" + srv.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "pong", string(body))

	cancel()
	require.NoError(t, wait(t, done))
	assert.NoError(t, srv.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestServer_DrainsInFlightRequests(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var started, finished atomic.Bool
	srv := httpserver.New(httpserver.WithListener(listen(t)), httpserver.WithShutdownTimeout(time.Second))
	done := start(t, ctx, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started.Store(true)
		time.Sleep(100 * time.Millisecond)
		assert.NoError(t, r.Context().Err(), "request context survives shutdown")
		finished.Store(true)
		w.WriteHeader(http.StatusNoContent)
	}))

	respCh := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + srv.Addr().String())
		if err != nil {
			respCh <- 0
			return
		}
		_ = resp.Body.Close()
		respCh <- resp.StatusCode
	}()

	require.Eventually(t, started.Load, time.Second, time.Millisecond)
	cancel()

	require.NoError(t, wait(t, done))
	assert.True(t, finished.Load())
	assert.Equal(t, http.StatusNoContent, <-respCh)
}

func TestServer_RunTwice(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.New(httpserver.WithListener(listen(t)))
	done := start(t, ctx, srv, nil)

	err := srv.Run(ctx, nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)

	cancel()
	require.NoError(t, wait(t, done))
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	l := listen(t)
	defer l.Close()

	srv := httpserver.New(httpserver.WithAddr(l.Addr().String()))
	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestServer_ShutdownBeforeRun(t *testing.T) {
	t.Parallel()

	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	done := start(t, ctx, srv, nil)

	resp, err := http.Get("http://" + srv.Addr().String() + "/missing")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	require.NoError(t, wait(t, done))
}
