package cluster

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/server"
	"github.com/giantswarm/mcp-eks/internal/tools"
)

// The handlers are thin on purpose: parameter validation, credential
// handling, and error mapping all live in the broker, so MCP callers and
// REST callers get identical behavior.

func handleListClusters(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpListClusters)
}

func handleDescribeCluster(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpDescribeCluster)
}

func handleListNodegroups(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpListNodegroups)
}

func handleDescribeNodegroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return tools.DispatchOperation(ctx, request, sc, broker.OpDescribeNodegroup)
}
