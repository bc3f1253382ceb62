package workload

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/server"
	"github.com/giantswarm/mcp-eks/internal/tools"
)

// The handlers are thin on purpose: parameter validation, credential
// handling, strategy fallback, and error mapping all live in the broker.

func handleListNamespaces(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpListNamespaces)
}

func handleListPods(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpListPods)
}

func handleDescribePod(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpDescribePod)
}

func handleGetDeployments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpGetDeployments)
}

func handleDescribeDeployment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpDescribeDeployment)
}

func handleGetServices(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpGetServices)
}

func handleGetPodLogs(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpGetPodLogs)
}
