package broker

import "sort"

// Operation names. The catalog below is the full set; Dispatch rejects
// everything else.
const (
	OpListClusters       = "list_clusters"
	OpDescribeCluster    = "describe_cluster"
	OpListNodegroups     = "list_nodegroups"
	OpDescribeNodegroup  = "describe_nodegroup"
	OpListNamespaces     = "list_namespaces"
	OpListPods           = "list_pods"
	OpDescribePod        = "describe_pod"
	OpGetDeployments     = "get_deployments"
	OpDescribeDeployment = "describe_deployment"
	OpGetServices        = "get_services"
	OpGetPodLogs         = "get_pod_logs"
)

// Parameter names shared across the catalog. region is optional on every
// operation; container and tail only apply to get_pod_logs.
const (
	paramClusterName    = "cluster_name"
	paramRegion         = "region"
	paramNodegroupName  = "nodegroup_name"
	paramNamespace      = "namespace"
	paramPodName        = "pod_name"
	paramDeploymentName = "deployment_name"
	paramContainer      = "container"
	paramTail           = "tail"
)

// defaultTailLines is how many log lines get_pod_logs returns when the
// caller does not say.
const defaultTailLines = 100

type operationSpec struct {
	required []string
}

var catalog = map[string]operationSpec{
	OpListClusters:       {},
	OpDescribeCluster:    {required: []string{paramClusterName}},
	OpListNodegroups:     {required: []string{paramClusterName}},
	OpDescribeNodegroup:  {required: []string{paramClusterName, paramNodegroupName}},
	OpListNamespaces:     {required: []string{paramClusterName}},
	OpListPods:           {required: []string{paramClusterName, paramNamespace}},
	OpDescribePod:        {required: []string{paramClusterName, paramNamespace, paramPodName}},
	OpGetDeployments:     {required: []string{paramClusterName, paramNamespace}},
	OpDescribeDeployment: {required: []string{paramClusterName, paramNamespace, paramDeploymentName}},
	OpGetServices:        {required: []string{paramClusterName, paramNamespace}},
	OpGetPodLogs:         {required: []string{paramClusterName, paramNamespace, paramPodName}},
}

// validate rejects the request if a required parameter is absent or
// blank. It runs before any backend call.
func (o operationSpec) validate(params Params) *Envelope {
	for _, name := range o.required {
		if params.stringValue(name) == "" {
			return Failuref(CodeMissingParameter, "missing required parameter: %s", name)
		}
	}
	return nil
}

// Operations returns the catalog's operation names, sorted.
func Operations() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
