package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-eks/internal/instrumentation"
	"github.com/giantswarm/mcp-eks/internal/server"
	"github.com/giantswarm/mcp-eks/internal/server/middleware"
)

// runStreamableHTTPServer runs the server with Streamable HTTP transport.
// Alongside the MCP endpoint it mounts the REST query endpoint and the
// health endpoints; metrics are served on a separate listener.
func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext, provider *instrumentation.Provider) error {
	mux := http.NewServeMux()

	// Create Streamable HTTP handler
	mcpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(config.HTTPEndpoint),
	)

	// Add MCP endpoint
	mux.Handle(config.HTTPEndpoint, mcpHandler)

	// Add the REST query endpoint (API key enforced inside the handler)
	queryAPI := server.NewQueryAPI(sc)
	mux.Handle(server.QueryEndpointPath, queryAPI.Handler())

	// Add health check endpoints
	healthChecker := server.NewHealthChecker(sc)
	healthChecker.RegisterHealthEndpoints(mux)

	slog.Info("streamable HTTP server starting",
		"addr", config.HTTPAddr,
		"endpoint", config.HTTPEndpoint,
		"query_endpoint", server.QueryEndpointPath,
		"health_endpoints", []string{"/healthz", "/readyz"})

	// Apply middleware: request metrics, size cap, and security headers
	var handler http.Handler = mux
	handler = middleware.MaxRequestSize(middleware.DefaultMaxRequestBytes)(handler)
	handler = middleware.SecurityHeaders(os.Getenv("ENABLE_HSTS") == envValueTrue)(handler)
	if origins, err := middleware.ValidateAllowedOrigins(os.Getenv("ALLOWED_ORIGINS")); err != nil {
		return fmt.Errorf("invalid ALLOWED_ORIGINS: %w", err)
	} else if len(origins) > 0 {
		handler = middleware.CORS(origins)(handler)
	}
	handler = middleware.HTTPMetrics(provider)(handler)

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if config.Metrics.Enabled && provider != nil && provider.Enabled() {
		var err error
		metricsServer, err = startMetricsServer(config.Metrics, provider)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	// Create HTTP server with security timeouts
	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: server.DefaultReadHeaderTimeout,
		WriteTimeout:      server.DefaultWriteTimeout,
		IdleTimeout:       server.DefaultIdleTimeout,
	}

	healthChecker.SetReady(true)

	// Start server in goroutine
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	// Wait for either shutdown signal or server completion
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping HTTP server")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := shutdownTimeout()
		defer cancel()

		// Shutdown metrics server first
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error shutting down metrics server", "error", err)
			}
		}

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		slog.Info("HTTP server stopped normally")
	}

	slog.Info("HTTP server gracefully stopped")
	return nil
}
