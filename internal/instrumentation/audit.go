package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ToolInvocation captures a single MCP tool invocation for audit logging.
// It records what was invoked against which cluster and resource, how long
// it took, and whether it succeeded, together with the trace context for
// correlation with distributed traces.
//
// The broker authenticates as its own AWS principal, so invocations carry
// no caller identity.
type ToolInvocation struct {
	// Tool is the MCP tool name (matches the catalog operation name).
	Tool string

	// ClusterName is the target EKS cluster, empty for region-scoped operations.
	ClusterName string

	// Region is the AWS region the operation ran against.
	Region string

	// Namespace, ResourceType, and ResourceName identify the Kubernetes
	// resource the operation touched, where applicable.
	Namespace    string
	ResourceType string
	ResourceName string

	// StartTime is when the invocation began.
	StartTime time.Time

	// Duration is how long the invocation took, set by Complete.
	Duration time.Duration

	// Success indicates whether the invocation succeeded.
	Success bool

	// Error holds the error message for failed invocations.
	Error string

	// TraceID and SpanID link the record to the active trace, if any.
	TraceID string
	SpanID  string
}

// NewToolInvocation creates a ToolInvocation for the given tool with the
// start time set to now.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithCluster sets the target cluster name.
func (ti *ToolInvocation) WithCluster(clusterName string) *ToolInvocation {
	ti.ClusterName = clusterName
	return ti
}

// WithRegion sets the AWS region.
func (ti *ToolInvocation) WithRegion(region string) *ToolInvocation {
	ti.Region = region
	return ti
}

// WithResource sets the namespace and resource the invocation touched.
func (ti *ToolInvocation) WithResource(namespace, resourceType, resourceName string) *ToolInvocation {
	ti.Namespace = namespace
	ti.ResourceType = resourceType
	ti.ResourceName = resourceName
	return ti
}

// WithSpanContext captures the trace and span IDs from the context, if a
// valid span is present.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = GetTraceID(ctx)
	ti.SpanID = GetSpanID(ctx)
	return ti
}

// Complete marks the invocation as finished, recording the duration and
// the outcome. A nil err leaves the Error field empty.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess marks the invocation as finished successfully.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError marks the invocation as finished with the given error.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// ClusterType returns the cardinality-controlled classification of the
// target cluster name.
func (ti *ToolInvocation) ClusterType() string {
	return ClassifyClusterName(ti.ClusterName)
}

// Status returns the invocation outcome as a metric label value.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns cardinality-controlled slog attributes for the
// invocation, safe to attach to regular operational log lines. Raw cluster
// and resource names are excluded; only the classified cluster type and the
// region appear.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("region", ti.Region),
		slog.String("cluster_type", ti.ClusterType()),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	return attrs
}

// LogAuditAttrs returns the full slog attributes for the invocation,
// including raw cluster and resource names. Intended for the audit log,
// where completeness matters more than label cardinality.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("cluster", ti.ClusterName),
		slog.String("region", ti.Region),
		slog.String("namespace", ti.Namespace),
		slog.String("resource_type", ti.ResourceType),
		slog.String("resource_name", ti.ResourceName),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	return attrs
}

// AuditLogger writes tool invocation records to a structured logger.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an AuditLogger. A nil logger falls back to
// slog.Default().
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogToolInvocation writes the full audit record for a completed invocation.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "Tool invocation", ti.LogAuditAttrs()...)
}

// TraceIDFromContext returns the trace ID of the span in ctx, or an empty
// string when no valid span is present.
func TraceIDFromContext(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
