package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that check their own invariants.
// Load calls Validate after parsing and refuses to cache an invalid value.
type Validator interface {
	Validate() error
}

type configCache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	cache = &configCache{values: make(map[reflect.Type]any)}

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v. The default .env file is read
// once per process if present. Each config type is parsed once and served
// from a cache afterwards.
//
//	type Config struct {
//		Secret   string        `env:"JWT_SECRET,required"`
//		Lifetime time.Duration `env:"JWT_LIFETIME" envDefault:"24h"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// .env is optional
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := parse(&parsed); err != nil {
		return err
	}
	cache.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ForceReload parses v again, bypassing and replacing the cached value.
func ForceReload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	var parsed T
	if err := parse(&parsed); err != nil {
		return err
	}

	cache.mu.Lock()
	cache.values[reflect.TypeFor[T]()] = parsed
	cache.mu.Unlock()

	*v = parsed
	return nil
}

// ResetCache drops every cached config.
func ResetCache() {
	cache.mu.Lock()
	clear(cache.values)
	cache.mu.Unlock()
}

// LoadEnv reads the given .env files (or ".env" when none are given) into the
// process environment. Later files override earlier ones and the existing
// environment. The config cache is reset.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	ResetCache()
	return nil
}

// MustLoadEnv is LoadEnv that panics on error.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

func parse[T any](v *T) error {
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if val, ok := any(v).(Validator); ok {
		if err := val.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	return nil
}
