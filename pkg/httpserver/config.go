package httpserver

import (
	"log/slog"
	"time"
)

// Config is the environment-driven server configuration used for local runs.
// Zero or negative durations fall back to the defaults below.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"60s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

const (
	defaultAddr              = ":8080"
	defaultReadTimeout       = 60 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	c.ReadTimeout = positiveOr(c.ReadTimeout, defaultReadTimeout)
	c.ReadHeaderTimeout = positiveOr(c.ReadHeaderTimeout, defaultReadHeaderTimeout)
	c.WriteTimeout = positiveOr(c.WriteTimeout, defaultWriteTimeout)
	c.IdleTimeout = positiveOr(c.IdleTimeout, defaultIdleTimeout)
	c.ShutdownTimeout = positiveOr(c.ShutdownTimeout, defaultShutdownTimeout)
	return c
}

func positiveOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

// Option overrides part of the Config a Server is built from.
type Option func(*Server)

// WithAddr sets the listen address. An empty address is ignored.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.cfg.Addr = addr
		}
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight uploads.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.cfg.ShutdownTimeout = d
		}
	}
}

// WithLogger supplies the logger for lifecycle events. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}
