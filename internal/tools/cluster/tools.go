// Package cluster registers the EKS control-plane tools: cluster and
// nodegroup listing and inspection. These operations talk to the AWS API
// only and never touch a cluster's Kubernetes data plane.
package cluster

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/server"
	"github.com/giantswarm/mcp-eks/internal/tools"
)

// RegisterClusterTools registers all EKS control-plane tools with the MCP server
func RegisterClusterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// list_clusters tool
	listClustersTool := mcp.NewTool(broker.OpListClusters,
		mcp.WithDescription("List all EKS clusters in a region"),
		tools.RegionParam(),
	)
	s.AddTool(listClustersTool, tools.WrapWithObservability(broker.OpListClusters, handleListClusters, sc))

	// describe_cluster tool
	describeClusterTool := mcp.NewTool(broker.OpDescribeCluster,
		mcp.WithDescription("Describe one EKS cluster: status, version, endpoint, networking, and tags"),
		tools.ClusterNameParam(),
		tools.RegionParam(),
	)
	s.AddTool(describeClusterTool, tools.WrapWithObservability(broker.OpDescribeCluster, handleDescribeCluster, sc))

	// list_nodegroups tool
	listNodegroupsTool := mcp.NewTool(broker.OpListNodegroups,
		mcp.WithDescription("List the managed nodegroups of an EKS cluster"),
		tools.ClusterNameParam(),
		tools.RegionParam(),
	)
	s.AddTool(listNodegroupsTool, tools.WrapWithObservability(broker.OpListNodegroups, handleListNodegroups, sc))

	// describe_nodegroup tool
	describeNodegroupTool := mcp.NewTool(broker.OpDescribeNodegroup,
		mcp.WithDescription("Describe one managed nodegroup: scaling, instance types, AMI, and labels"),
		tools.ClusterNameParam(),
		mcp.WithString(tools.ParamNodegroupName,
			mcp.Required(),
			mcp.Description("Name of the nodegroup"),
		),
		tools.RegionParam(),
	)
	s.AddTool(describeNodegroupTool, tools.WrapWithObservability(broker.OpDescribeNodegroup, handleDescribeNodegroup, sc))

	return nil
}
