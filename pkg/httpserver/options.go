package httpserver

import (
	"log/slog"
	"net"
	"time"
)

// Option configures a Server. Zero or negative values are ignored.
type Option func(*config)

func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { setPositive(&c.readTimeout, d) }
}

// WithReadHeaderTimeout bounds how long a client may take to send headers.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(c *config) { setPositive(&c.readHeaderTimeout, d) }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { setPositive(&c.writeTimeout, d) }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) { setPositive(&c.idleTimeout, d) }
}

// WithShutdownTimeout bounds how long in-flight requests may run after
// shutdown starts.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) { setPositive(&c.shutdownTimeout, d) }
}

func WithMaxHeaderBytes(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxHeaderBytes = n
		}
	}
}

// WithListener serves on l instead of listening on the configured address.
func WithListener(l net.Listener) Option {
	return func(c *config) { c.listener = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func setPositive(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}
