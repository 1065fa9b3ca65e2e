package httpserver

import "time"

// Config holds listener and timeout settings loaded from the environment.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxHeaderBytes    int           `env:"HTTP_MAX_HEADER_BYTES" envDefault:"65536"`
}

// Options converts cfg into options. Zero fields keep the defaults of New.
func (c Config) Options() []Option {
	return []Option{
		WithAddr(c.Addr),
		WithReadTimeout(c.ReadTimeout),
		WithReadHeaderTimeout(c.ReadHeaderTimeout),
		WithWriteTimeout(c.WriteTimeout),
		WithIdleTimeout(c.IdleTimeout),
		WithShutdownTimeout(c.ShutdownTimeout),
		WithMaxHeaderBytes(c.MaxHeaderBytes),
	}
}

// NewFromConfig creates a server from cfg; opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append(cfg.Options(), opts...)...)
}
