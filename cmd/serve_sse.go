package cmd

import (
	"context"
	"fmt"
	"log"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-eks/internal/instrumentation"
	"github.com/giantswarm/mcp-eks/internal/server"
)

// runSSEServer runs the server with SSE transport
func runSSEServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext, provider *instrumentation.Provider) error {
	if config.DebugMode {
		log.Printf("[DEBUG] Initializing SSE server with configuration:")
		log.Printf("[DEBUG]   Address: %s", config.HTTPAddr)
		log.Printf("[DEBUG]   SSE Endpoint: %s", config.SSEEndpoint)
		log.Printf("[DEBUG]   Message Endpoint: %s", config.MessageEndpoint)
	}

	// Create SSE server with custom endpoints
	sseServer := mcpserver.NewSSEServer(mcpSrv,
		mcpserver.WithSSEEndpoint(config.SSEEndpoint),
		mcpserver.WithMessageEndpoint(config.MessageEndpoint),
	)

	fmt.Printf("SSE server starting on %s\n", config.HTTPAddr)
	fmt.Printf("  SSE endpoint: %s\n", config.SSEEndpoint)
	fmt.Printf("  Message endpoint: %s\n", config.MessageEndpoint)

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if config.Metrics.Enabled && provider != nil && provider.Enabled() {
		var err error
		metricsServer, err = startMetricsServer(config.Metrics, provider)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	// Start server in goroutine
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if config.DebugMode {
			log.Printf("[DEBUG] Starting SSE server listener on %s", config.HTTPAddr)
		}
		if err := sseServer.Start(config.HTTPAddr); err != nil {
			serverDone <- err
		}
	}()

	// Wait for either shutdown signal or server completion
	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping SSE server...")
		shutdownCtx, cancel := shutdownTimeout()
		defer cancel()
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down metrics server: %v", err)
			}
		}
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down SSE server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("SSE server stopped with error: %w", err)
		}
		fmt.Println("SSE server stopped normally")
	}

	fmt.Println("SSE server gracefully stopped")
	return nil
}
