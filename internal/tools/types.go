// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// DispatchOperation runs one broker operation from an MCP tool call and
// renders the response envelope as the tool result. Every tool in the
// catalog funnels through here, so the envelope a tool caller sees is
// byte-identical to what the REST query endpoint returns.
//
// Broker failures come back as MCP tool errors carrying the full envelope
// JSON, so callers still see the error_code taxonomy.
func DispatchOperation(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, operation string) (*mcp.CallToolResult, error) {
	params := broker.Params(request.GetArguments())

	envelope := sc.Broker().Dispatch(ctx, operation, params)

	payload, err := envelope.JSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
	}

	if envelope.IsError() {
		return mcp.NewToolResultError(payload), nil
	}
	return mcp.NewToolResultText(payload), nil
}
