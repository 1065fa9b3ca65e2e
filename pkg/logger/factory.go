package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment names recognised by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Format is the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config overrides the environment preset from the process environment.
// Empty fields keep the preset.
type Config struct {
	Level  string `env:"LOG_LEVEL"`  // debug, info, warn or error
	Format string `env:"LOG_FORMAT"` // json or text
}

type preset struct {
	level  slog.Level
	format Format
}

var presets = map[string]preset{
	EnvDevelopment: {level: slog.LevelDebug, format: FormatText},
	EnvStaging:     {level: slog.LevelInfo, format: FormatJSON},
	EnvProduction:  {level: slog.LevelInfo, format: FormatJSON},
}

var envAliases = map[string]string{
	"dev":   EnvDevelopment,
	"stage": EnvStaging,
	"prod":  EnvProduction,
}

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option configures New.
type Option func(*config)

// WithEnvironment applies the level and format preset of env and tags every
// record with service and env. Unknown names use the development preset.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		name := strings.ToLower(strings.TrimSpace(env))
		if alias, ok := envAliases[name]; ok {
			name = alias
		}
		p, ok := presets[name]
		if !ok {
			name, p = EnvDevelopment, presets[EnvDevelopment]
		}
		c.level, c.format = p.level, p.format
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
		c.attrs = append(c.attrs, slog.String("env", name))
	}
}

// WithConfig applies explicit level and format overrides. It panics on values
// ParseLevel or ParseFormat reject, so a bad LOG_LEVEL fails at start-up.
func WithConfig(cfg Config) Option {
	return func(c *config) {
		if cfg.Level != "" {
			lvl, err := ParseLevel(cfg.Level)
			if err != nil {
				panic(err)
			}
			c.level = lvl
		}
		if cfg.Format != "" {
			f, err := ParseFormat(cfg.Format)
			if err != nil {
				panic(err)
			}
			c.format = f
		}
	}
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the encoding. It panics on unknown formats.
func WithFormat(f Format) Option {
	return func(c *config) {
		parsed, err := ParseFormat(string(f))
		if err != nil {
			panic(err)
		}
		c.format = parsed
	}
}

// WithOutput sets the destination. Nil is ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithContextExtractors registers extractors run on every record. Nil
// extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.EqualFold(strings.TrimSpace(s), "warning") {
		return slog.LevelWarn, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("logger: invalid level %q", s)
	}
	return lvl, nil
}

// ParseFormat accepts json and text in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("logger: invalid format %q, want %q or %q", s, FormatJSON, FormatText)
	}
}

// SetAsDefault installs l as the slog default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New builds a logger. Without options it writes JSON at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{level: slog.LevelInfo, format: FormatJSON}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.output == nil {
		cfg.output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var h slog.Handler
	if cfg.format == FormatText {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(h, cfg.extractors...))
}
