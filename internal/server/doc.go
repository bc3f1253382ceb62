// Package server provides the ServerContext pattern and related infrastructure
// for the MCP EKS server.
//
// This package implements the core server architecture patterns including:
//
//   - ServerContext: Encapsulates all server dependencies and lifecycle management
//   - Functional Options: Clean dependency injection and configuration
//   - HealthChecker: Liveness, readiness, and detailed health endpoints
//   - MetricsServer: Dedicated Prometheus listener
//   - QueryAPI: REST access to the operation catalog
//
// The ServerContext Pattern:
//
// The ServerContext struct follows the context pattern commonly used in Go
// applications to encapsulate dependencies and provide clean separation of
// concerns. It includes:
//
//   - Operation broker (the EKS and Kubernetes access layer)
//   - Credential provisioner (closed on shutdown)
//   - Structured logger
//   - Optional instrumentation provider
//   - Context for cancellation and timeouts
//   - Lifecycle management (shutdown, cleanup)
//
// All dependencies are injected using functional options, making the code
// highly testable and modular.
//
// Example usage:
//
//	// Create a server context with custom configuration
//	ctx := context.Background()
//	serverCtx, err := NewServerContext(ctx,
//		WithBroker(b),
//		WithProvisioner(provisioner),
//		WithLogger(logger),
//		WithDefaultRegion("eu-west-1"),
//		WithInstrumentationProvider(provider),
//	)
//	if err != nil {
//		return err
//	}
//	defer serverCtx.Shutdown()
//
//	// Use the context in MCP tools
//	b := serverCtx.Broker()
//	logger := serverCtx.Logger()
//	config := serverCtx.Config()
//
//	// Check if server is shutting down
//	if serverCtx.IsShutdown() {
//		return ErrServerShutdown
//	}
//
// HTTP Surfaces:
//
// On HTTP transports the server mounts, next to the MCP endpoint:
//
//   - POST /mcp/v1/query: the REST query endpoint, accepting
//     {"operation": ..., "parameters": {...}} and returning the standard
//     envelope. Guarded by the X-API-Key header when an API key is set.
//   - /healthz, /readyz, /healthz/detailed: health endpoints for probes.
//
// The MetricsServer runs on its own listener (default :9090) so Prometheus
// scraping works on every transport, including stdio.
package server
