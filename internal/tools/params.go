package tools

import (
	mcp "github.com/mark3labs/mcp-go/mcp"
)

// Parameter names shared by the tool definitions. They match the broker
// catalog exactly; the MCP schema and the REST query endpoint accept the
// same argument bags.
const (
	ParamClusterName    = "cluster_name"
	ParamRegion         = "region"
	ParamNodegroupName  = "nodegroup_name"
	ParamNamespace      = "namespace"
	ParamPodName        = "pod_name"
	ParamDeploymentName = "deployment_name"
	ParamContainer      = "container"
	ParamTail           = "tail"
)

// RegionParam returns the optional region parameter every tool carries.
func RegionParam() mcp.ToolOption {
	return mcp.WithString(ParamRegion,
		mcp.Description("AWS region of the cluster (optional, defaults to the server's configured region)"),
	)
}

// ClusterNameParam returns the required cluster_name parameter.
func ClusterNameParam() mcp.ToolOption {
	return mcp.WithString(ParamClusterName,
		mcp.Required(),
		mcp.Description("Name of the EKS cluster"),
	)
}

// NamespaceParam returns the required namespace parameter used by the
// workload tools.
func NamespaceParam() mcp.ToolOption {
	return mcp.WithString(ParamNamespace,
		mcp.Required(),
		mcp.Description("Kubernetes namespace to operate in"),
	)
}
