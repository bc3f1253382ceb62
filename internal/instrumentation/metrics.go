package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrMethod      = "method"
	attrPath        = "path"
	attrStatus      = "status"
	attrOperation   = "operation"
	attrRegion      = "region"
	attrCluster     = "cluster"
	attrClusterType = "cluster_type"
	attrNamespace   = "namespace"
	attrReason      = "reason"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// Broker operation metrics
	operationsTotal   metric.Int64Counter
	operationDuration metric.Float64Histogram

	// Credential cache metrics
	cacheHitsTotal      metric.Int64Counter
	cacheMissesTotal    metric.Int64Counter
	cacheEvictionsTotal metric.Int64Counter
	cacheEntries        metric.Int64Gauge

	// Configuration
	// detailedLabels controls whether high-cardinality labels (raw cluster
	// name, namespace) are included in operation metrics
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_mcp_sessions",
		metric.WithDescription("Number of active MCP client sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_mcp_sessions gauge: %w", err)
	}

	// Broker Operation Metrics
	m.operationsTotal, err = meter.Int64Counter(
		"mcp_eks_operations_total",
		metric.WithDescription("Total number of broker operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_eks_operations_total counter: %w", err)
	}

	m.operationDuration, err = meter.Float64Histogram(
		"mcp_eks_operation_duration_seconds",
		metric.WithDescription("Broker operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_eks_operation_duration_seconds histogram: %w", err)
	}

	// Credential Cache Metrics
	m.cacheHitsTotal, err = meter.Int64Counter(
		"mcp_eks_credential_cache_hits_total",
		metric.WithDescription("Total number of credential cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_eks_credential_cache_hits_total counter: %w", err)
	}

	m.cacheMissesTotal, err = meter.Int64Counter(
		"mcp_eks_credential_cache_misses_total",
		metric.WithDescription("Total number of credential cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_eks_credential_cache_misses_total counter: %w", err)
	}

	m.cacheEvictionsTotal, err = meter.Int64Counter(
		"mcp_eks_credential_cache_evictions_total",
		metric.WithDescription("Total number of credential cache evictions by reason"),
		metric.WithUnit("{eviction}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_eks_credential_cache_evictions_total counter: %w", err)
	}

	m.cacheEntries, err = meter.Int64Gauge(
		"mcp_eks_credential_cache_entries",
		metric.WithDescription("Current number of entries in the credential cache"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_eks_credential_cache_entries gauge: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOperation records a broker operation with the catalog operation name,
// the target cluster, the AWS region, the namespace (empty for cluster- or
// region-scoped operations), the outcome status, and the duration.
//
// CARDINALITY NOTE: When detailedLabels is false (default), the cluster is
// recorded only as its classified type and the namespace is omitted. When
// detailedLabels is true, the raw cluster name and namespace are also
// included. For accounts with many clusters, keep detailedLabels disabled
// and use traces for per-cluster debugging instead.
func (m *Metrics) RecordOperation(ctx context.Context, operation, clusterName, region, namespace, status string, duration time.Duration) {
	if m.operationsTotal == nil || m.operationDuration == nil {
		return // Instrumentation not initialized
	}

	// Always include the low-cardinality labels
	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
		attribute.String(attrRegion, region),
		attribute.String(attrClusterType, ClassifyClusterName(clusterName)),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels {
		attrs = append(attrs,
			attribute.String(attrCluster, clusterName),
			attribute.String(attrNamespace, namespace),
		)
	}

	m.operationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCacheHit records a credential cache hit for the given cluster.
// The cluster name is classified before use to keep cardinality bounded.
func (m *Metrics) RecordCacheHit(ctx context.Context, clusterName string) {
	if m.cacheHitsTotal == nil {
		return // Instrumentation not initialized
	}

	m.cacheHitsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrClusterType, ClassifyClusterName(clusterName)),
	))
}

// RecordCacheMiss records a credential cache miss for the given cluster.
// The cluster name is classified before use to keep cardinality bounded.
func (m *Metrics) RecordCacheMiss(ctx context.Context, clusterName string) {
	if m.cacheMissesTotal == nil {
		return // Instrumentation not initialized
	}

	m.cacheMissesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrClusterType, ClassifyClusterName(clusterName)),
	))
}

// RecordCacheEviction records a credential cache eviction.
// Reason should be one of: "expired", "lru", "manual"
func (m *Metrics) RecordCacheEviction(ctx context.Context, reason string) {
	if m.cacheEvictionsTotal == nil {
		return // Instrumentation not initialized
	}

	m.cacheEvictionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrReason, reason),
	))
}

// SetCacheSize records the current number of credential cache entries.
func (m *Metrics) SetCacheSize(ctx context.Context, size int) {
	if m.cacheEntries == nil {
		return // Instrumentation not initialized
	}

	m.cacheEntries.Record(ctx, int64(size))
}

// IncrementActiveSessions increments the active MCP sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active MCP sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, -1)
}
