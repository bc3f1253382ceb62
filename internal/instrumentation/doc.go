// Package instrumentation provides OpenTelemetry instrumentation for the
// mcp-eks server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, EKS operations, and sessions
//   - Distributed tracing for tool invocations and access strategy attempts
//   - Prometheus metrics export via a provider-owned /metrics endpoint
//   - OTLP export support for modern observability platforms
//   - Structured audit logging of every tool invocation
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_mcp_sessions: Gauge of active MCP sessions
//
// Operation Metrics:
//   - mcp_eks_operations_total: Counter of broker operations by operation, status, region, cluster_type
//   - mcp_eks_operation_duration_seconds: Histogram of broker operation durations
//
// Credential Cache Metrics:
//   - mcp_eks_credential_cache_hits_total: Counter of credential cache hits
//   - mcp_eks_credential_cache_misses_total: Counter of credential cache misses
//   - mcp_eks_credential_cache_evictions_total: Counter of evictions by reason
//   - mcp_eks_credential_cache_entries: Gauge of live cache entries
//
// # Cardinality Considerations
//
// Operation and cache metrics label by cluster_type (a coarse classification
// derived from the cluster name) rather than by raw cluster name. A fleet of
// hundreds of EKS clusters therefore produces a handful of label values, not
// hundreds. Per-cluster and per-namespace labels are only added when
// METRICS_DETAILED_LABELS is set, which is intended for small fleets:
//   - Each distinct label combination becomes a separate time series
//   - High cardinality increases memory usage and storage in metrics backends
//   - Use tracing or audit logs for per-resource debugging instead
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - MCP tool invocations (one span per tool call)
//   - Access strategy attempts (one child span per strategy tried)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-eks)
//   - METRICS_DETAILED_LABELS: Add per-cluster and per-namespace labels (default: false)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:     "mcp-eks",
//		ServiceVersion:  "0.1.0",
//		Enabled:         true,
//		MetricsExporter: instrumentation.ExporterPrometheus,
//		TracingExporter: instrumentation.ExporterNone,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record an HTTP request
//	recorder.RecordHTTPRequest(ctx, "POST", "/mcp", 200, time.Since(start))
//
//	// Record a broker operation
//	recorder.RecordOperation(ctx, "list_pods", "prod-payments", "us-east-1", "default", "success", time.Since(start))
package instrumentation
