package server

import (
	"errors"
	"log/slog"
	"os"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/instrumentation"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithBroker sets the operation broker for the ServerContext.
func WithBroker(b *broker.Broker) Option {
	return func(sc *ServerContext) error {
		if b == nil {
			return ErrMissingBroker
		}
		sc.broker = b
		return nil
	}
}

// WithProvisioner sets the credential provisioner for the ServerContext.
// The provisioner is closed during Shutdown and its cache statistics are
// surfaced by the detailed health endpoint.
func WithProvisioner(provisioner *credential.Provisioner) Option {
	return func(sc *ServerContext) error {
		sc.provisioner = provisioner
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithTransport records the serving mode in the configuration.
func WithTransport(transport string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.Transport = transport
		return nil
	}
}

// WithDefaultRegion sets the AWS region used when a request names none.
func WithDefaultRegion(region string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.DefaultRegion = region
		return nil
	}
}

// WithAPIKey sets the static key guarding the HTTP query endpoint.
// An empty key leaves the endpoint open.
func WithAPIKey(key string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.APIKey = key
		return nil
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.LogLevel = level
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry instrumentation provider.
// This enables production-grade observability including metrics and tracing.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingBroker  = errors.New("operation broker is required")
	ErrMissingLogger  = errors.New("logger is required")
	ErrMissingConfig  = errors.New("configuration is required")
	ErrServerShutdown = errors.New("server context has been shutdown")
)

// NewDefaultLogger creates a text logger on standard error at info level.
func NewDefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
