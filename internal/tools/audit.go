package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-eks/internal/instrumentation"
	"github.com/giantswarm/mcp-eks/internal/server"
)

// WrapWithObservability wraps a tool handler with the full observability
// treatment: an OpenTelemetry tool span, an operation metric, and an audit
// record. The wrapper captures:
//   - Tool invocation timing
//   - Cluster, region, and resource information from request arguments
//   - Success/error status from the handler result
//   - OpenTelemetry trace context for correlation
//
// Handlers never record any of this themselves; registering through this
// wrapper is what keeps tool calls and REST query calls observably identical.
func WrapWithObservability(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		args := request.GetArguments()

		region := stringArg(args, ParamRegion)
		if region == "" {
			region = sc.Config().DefaultRegion
		}
		cluster := stringArg(args, ParamClusterName)
		namespace := stringArg(args, ParamNamespace)

		invocation := instrumentation.NewToolInvocation(toolName).
			WithCluster(cluster).
			WithRegion(region).
			WithSpanContext(ctx)
		extractAuditInfoFromArgs(invocation, args)

		// Execute the actual handler
		result, err := handler(ctx, request, sc)

		// Determine success/error status
		if err != nil {
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		} else if result != nil && result.IsError {
			// MCP tool errors are returned in the result, not as Go errors
			invocation.Complete(false, nil)
			if message := firstTextContent(result); message != "" {
				invocation.Error = message
				instrumentation.SetSpanError(span, errors.New(message))
			}
		} else {
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		sc.Metrics().RecordOperation(ctx, toolName, cluster, region, namespace,
			invocation.Status(), invocation.Duration)
		sc.AuditLogger().LogToolInvocation(invocation)

		return result, err
	}
}

// extractAuditInfoFromArgs extracts namespace and resource information from
// tool request arguments for audit logging.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]interface{}) {
	namespace := stringArg(args, ParamNamespace)
	resourceType, resourceName := extractResource(args)

	if namespace != "" || resourceType != "" || resourceName != "" {
		invocation.WithResource(namespace, resourceType, resourceName)
	}
}

// extractResource derives the audit resource type and name from the request
// arguments. Different tools name their subject parameter differently.
func extractResource(args map[string]interface{}) (resourceType, resourceName string) {
	for key, rt := range map[string]string{
		ParamPodName:        "pod",
		ParamDeploymentName: "deployment",
		ParamNodegroupName:  "nodegroup",
	} {
		if name := stringArg(args, key); name != "" {
			return rt, name
		}
	}
	return "", ""
}

// firstTextContent returns the first text block of a tool result, or "".
func firstTextContent(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

// stringArg reads a string argument from the raw argument bag.
func stringArg(args map[string]interface{}, key string) string {
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}
