// Package workload registers the Kubernetes data-plane tools: namespaces,
// pods, deployments, services, and pod logs. Each operation provisions
// short-lived cluster credentials and runs through the broker's fallback
// chain of access strategies.
package workload

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/server"
	"github.com/giantswarm/mcp-eks/internal/tools"
)

// RegisterWorkloadTools registers all Kubernetes data-plane tools with the MCP server
func RegisterWorkloadTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// list_namespaces tool
	listNamespacesTool := mcp.NewTool(broker.OpListNamespaces,
		mcp.WithDescription("List the namespaces of an EKS cluster"),
		tools.ClusterNameParam(),
		tools.RegionParam(),
	)
	s.AddTool(listNamespacesTool, tools.WrapWithObservability(broker.OpListNamespaces, handleListNamespaces, sc))

	// list_pods tool
	listPodsTool := mcp.NewTool(broker.OpListPods,
		mcp.WithDescription("List the pods in a namespace with status, node, IP, and container count"),
		tools.ClusterNameParam(),
		tools.NamespaceParam(),
		tools.RegionParam(),
	)
	s.AddTool(listPodsTool, tools.WrapWithObservability(broker.OpListPods, handleListPods, sc))

	// describe_pod tool
	describePodTool := mcp.NewTool(broker.OpDescribePod,
		mcp.WithDescription("Describe one pod: phase, node placement, labels, and containers"),
		tools.ClusterNameParam(),
		tools.NamespaceParam(),
		mcp.WithString(tools.ParamPodName,
			mcp.Required(),
			mcp.Description("Name of the pod"),
		),
		tools.RegionParam(),
	)
	s.AddTool(describePodTool, tools.WrapWithObservability(broker.OpDescribePod, handleDescribePod, sc))

	// get_deployments tool
	getDeploymentsTool := mcp.NewTool(broker.OpGetDeployments,
		mcp.WithDescription("List the deployments in a namespace with replica counts"),
		tools.ClusterNameParam(),
		tools.NamespaceParam(),
		tools.RegionParam(),
	)
	s.AddTool(getDeploymentsTool, tools.WrapWithObservability(broker.OpGetDeployments, handleGetDeployments, sc))

	// describe_deployment tool
	describeDeploymentTool := mcp.NewTool(broker.OpDescribeDeployment,
		mcp.WithDescription("Describe one deployment: replicas, selector, strategy, and containers"),
		tools.ClusterNameParam(),
		tools.NamespaceParam(),
		mcp.WithString(tools.ParamDeploymentName,
			mcp.Required(),
			mcp.Description("Name of the deployment"),
		),
		tools.RegionParam(),
	)
	s.AddTool(describeDeploymentTool, tools.WrapWithObservability(broker.OpDescribeDeployment, handleDescribeDeployment, sc))

	// get_services tool
	getServicesTool := mcp.NewTool(broker.OpGetServices,
		mcp.WithDescription("List the services in a namespace with type, cluster IP, and ports"),
		tools.ClusterNameParam(),
		tools.NamespaceParam(),
		tools.RegionParam(),
	)
	s.AddTool(getServicesTool, tools.WrapWithObservability(broker.OpGetServices, handleGetServices, sc))

	// get_pod_logs tool
	getPodLogsTool := mcp.NewTool(broker.OpGetPodLogs,
		mcp.WithDescription("Get recent logs from a pod container"),
		tools.ClusterNameParam(),
		tools.NamespaceParam(),
		mcp.WithString(tools.ParamPodName,
			mcp.Required(),
			mcp.Description("Name of the pod to get logs from"),
		),
		mcp.WithString(tools.ParamContainer,
			mcp.Description("Name of the container (optional for single-container pods)"),
		),
		mcp.WithNumber(tools.ParamTail,
			mcp.Description("Number of lines from the end of the logs to return (default: 100)"),
		),
		tools.RegionParam(),
	)
	s.AddTool(getPodLogsTool, tools.WrapWithObservability(broker.OpGetPodLogs, handleGetPodLogs, sc))

	return nil
}
