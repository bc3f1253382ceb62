package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/instrumentation"
)

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle
// management.
type ServerContext struct {
	// Core dependencies
	broker      *broker.Broker
	provisioner *credential.Provisioner
	logger      *slog.Logger
	config      *Config

	// Observability. Optional; accessors fall back to no-op implementations
	// when no provider was configured.
	instrumentationProvider *instrumentation.Provider

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	// Create a cancellable context
	serverCtx, cancel := context.WithCancel(ctx)

	// Initialize with defaults
	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: NewDefaultLogger(),
	}

	// Apply functional options
	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	// Validate required dependencies
	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Broker returns the operation broker.
func (sc *ServerContext) Broker() *broker.Broker {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.broker
}

// Provisioner returns the credential provisioner, or nil when the server
// was built without one.
func (sc *ServerContext) Provisioner() *credential.Provisioner {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.provisioner
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// InstrumentationProvider returns the instrumentation provider, or nil when
// instrumentation was not configured.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// Metrics returns the operation metrics recorder. It never returns nil;
// without an instrumentation provider every recording call is a no-op.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	provider := sc.instrumentationProvider
	sc.mu.RUnlock()

	if provider == nil {
		return &instrumentation.Metrics{}
	}
	return provider.Metrics()
}

// AuditLogger returns the audit logger. It never returns nil; without an
// instrumentation provider audit records go to the server logger.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	provider := sc.instrumentationProvider
	logger := sc.logger
	sc.mu.RUnlock()

	if provider == nil {
		return instrumentation.NewAuditLogger(logger)
	}
	return provider.AuditLogger()
}

// Shutdown gracefully shuts down the server context.
// This cancels the context and closes the credential provisioner, stopping
// its cache sweeper. Instrumentation shutdown is left to the caller because
// exporter flushing needs a deadline context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	if sc.shutdown {
		sc.mu.Unlock()
		return nil
	}
	sc.shutdown = true
	provisioner := sc.provisioner
	logger := sc.logger
	sc.mu.Unlock()

	logger.Info("Shutting down server context")

	// Cancel the context
	if sc.cancel != nil {
		sc.cancel()
	}

	var errs []error
	if provisioner != nil {
		if err := provisioner.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	logger.Info("Server context shutdown complete")
	return errors.Join(errs...)
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.broker == nil {
		return ErrMissingBroker
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// Transport is the serving mode: stdio, sse, or streamable-http.
	Transport string `json:"transport"`

	// AWS settings
	DefaultRegion string `json:"defaultRegion"`

	// APIKey guards the HTTP query endpoint when non-empty. Requests must
	// present it in the X-API-Key header.
	APIKey string `json:"-"`

	// Logging settings
	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:    "mcp-eks",
		Version:       "0.1.0",
		Transport:     "stdio",
		DefaultRegion: "us-east-1",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	return &clone
}
