// Package httpserver runs an http.Server with graceful shutdown on context
// cancellation, SIGINT or SIGTERM, and provides JSON liveness and readiness
// handlers.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown.
package httpserver
