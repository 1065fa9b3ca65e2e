// Package config loads typed configuration from the environment using
// github.com/caarlos0/env/v11, with optional .env files read through
// github.com/joho/godotenv.
//
// # Architecture
//
// Each package owns a Config struct that declares its variables with field
// tags, so settings live next to the code that uses them:
//
//	type Config struct {
//		Secret   string        `env:"JWT_SECRET,required"`
//		Lifetime time.Duration `env:"JWT_LIFETIME" envDefault:"24h"`
//	}
//
// The application composes them into one struct. Nested structs are parsed
// recursively; envPrefix namespaces a reused type:
//
//	type Config struct {
//		AppEnv         string             `env:"APP_ENV" envDefault:"production"`
//		LoginRateLimit ratelimiter.Config `envPrefix:"LOGIN_"`
//		JWT            jwt.Config
//		PG             pg.Config
//	}
//
// Parsed values are cached per type, so several packages can call Load for
// the same struct without parsing the environment again.
//
// # Usage
//
//	var cfg jwt.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// MustLoad panics instead, which suits main:
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// # Validation
//
// A struct whose pointer implements Validator is checked after parsing:
//
//	func (c *Config) Validate() error {
//		if !c.PG.Enabled() && c.SeedFile == "" {
//			return errors.New("either PG_CONN_URL or SEED_FILE must be set")
//		}
//		return nil
//	}
//
// # Error Handling
//
//   - ErrNilPointer: Load was given a nil pointer
//   - ErrParsingConfig: a variable is missing or does not parse
//   - ErrInvalidConfig: Validate rejected the value, which is not cached
//   - ErrLoadingEnvFile: LoadEnv could not read a file
//
// Parsing, validation and file errors wrap the underlying error, so errors.Is
// and errors.As reach it.
//
// # .env Files
//
// LoadEnv reads the given files (".env" when none are given) into the process
// environment, then resets the cache. Later files override earlier ones, and
// file values override variables already set in the process:
//
//	config.MustLoadEnv(".env", ".env.local")
//
// # Testing Helpers
//
// ResetCache drops every cached value and ForceReload re-parses one type.
// Tests that use t.Setenv call one of them before loading.
package config
