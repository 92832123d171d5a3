package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// lambdaFunctionEnv is set by the Lambda runtime in every function container.
const lambdaFunctionEnv = "AWS_LAMBDA_FUNCTION_NAME"

// cache stores one parsed copy per configuration type and prefix.
type cache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	globalCache = &cache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// Option configures a Load call.
type Option func(*options)

type options struct {
	prefix   string
	envFiles []string
	noCache  bool
}

// WithPrefix parses variables as PREFIX + name, so one struct type can be loaded for
// several components.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given .env files before parsing. Unlike the default .env they
// must exist. Variables already present in the environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, files...)
	}
}

// WithoutCache parses the environment again and does not store the result.
func WithoutCache() Option {
	return func(o *options) {
		o.noCache = true
	}
}

// InLambda reports whether the process runs inside an AWS Lambda container.
func InLambda() bool {
	return os.Getenv(lambdaFunctionEnv) != ""
}

// Load parses environment variables into v using `env` struct tags.
//
// Outside Lambda the .env file in the working directory is read once per process if it
// exists. Each configuration type (and prefix) is parsed once; later calls copy the cached
// value into v.
//
// Example:
//
//	type StorageConfig struct {
//		Bucket string `env:"S3_BUCKET" envDefault:"deck-backend-demo"`
//		Region string `env:"AWS_REGION" envDefault:"us-east-1"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	defaultEnvLoaded.Do(func() {
		if !InLambda() {
			// The default .env file is optional.
			_ = godotenv.Load()
		}
	})
	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	key := o.prefix + typeName[T]()

	if o.noCache {
		return parse(v, o.prefix)
	}

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := parse(v, o.prefix); err != nil {
		return err
	}
	globalCache.values[key] = *v // Store a copy to avoid external modifications
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.mu.Unlock()
}

func parse[T any](v *T, prefix string) error {
	if err := env.ParseWithOptions(v, env.Options{Prefix: prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
