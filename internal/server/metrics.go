package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giantswarm/mcp-eks/internal/instrumentation"
)

// DefaultMetricsAddr is the default listen address for the metrics server.
const DefaultMetricsAddr = ":9090"

// MetricsServerConfig holds configuration for the metrics server.
type MetricsServerConfig struct {
	// Addr is the listen address. Defaults to DefaultMetricsAddr when empty.
	Addr string

	// InstrumentationProvider supplies the Prometheus handler.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer serves Prometheus metrics on a dedicated listener, separate
// from the MCP transport. It also exposes a minimal /healthz endpoint so the
// listener can be probed independently.
type MetricsServer struct {
	addr       string
	provider   *instrumentation.Provider
	httpServer *http.Server
}

// NewMetricsServer creates a metrics server from the given configuration.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.InstrumentationProvider == nil {
		return nil, errors.New("instrumentation provider is required")
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}

	s := &MetricsServer{
		addr:     addr,
		provider: config.InstrumentationProvider,
	}

	mux := http.NewServeMux()

	// The Prometheus handler is nil when the provider is disabled or uses a
	// non-Prometheus exporter. The health endpoint stays available either way.
	if handler := s.provider.PrometheusHandler(); handler != nil {
		mux.Handle(s.provider.PrometheusEndpoint(), handler)
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	return s, nil
}

// Addr returns the listen address.
func (s *MetricsServer) Addr() string {
	return s.addr
}

// Start starts the metrics server. It blocks until the server stops and
// returns http.ErrServerClosed after a graceful shutdown.
func (s *MetricsServer) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server. Calling it before Start
// is a no-op.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
