package eks

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks/types"
)

// statusUnknown fills summary fields when the per-item describe call fails
// during a listing.
const statusUnknown = "UNKNOWN"

// ClusterSummary is the listing shape for a cluster.
type ClusterSummary struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Version  string `json:"version"`
	Endpoint string `json:"endpoint"`
	Created  string `json:"created,omitempty"`
}

// ClusterDetail extends ClusterSummary with the fields callers need to
// reason about a cluster's identity and network placement.
type ClusterDetail struct {
	ClusterSummary
	Arn              string            `json:"arn,omitempty"`
	RoleArn          string            `json:"roleArn,omitempty"`
	VpcID            string            `json:"vpcId,omitempty"`
	SubnetIDs        []string          `json:"subnetIds,omitempty"`
	SecurityGroupIDs []string          `json:"securityGroupIds,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

// NodegroupSummary is the listing shape for a managed nodegroup. The scaling
// sizes stay pointers so an unreported size serializes as null rather than a
// misleading zero.
type NodegroupSummary struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	InstanceType string `json:"instanceType"`
	DesiredSize  *int32 `json:"desiredSize"`
	MinSize      *int32 `json:"minSize"`
	MaxSize      *int32 `json:"maxSize"`
	Created      string `json:"created,omitempty"`
}

// NodegroupDetail extends NodegroupSummary with provisioning attributes.
type NodegroupDetail struct {
	NodegroupSummary
	CapacityType   string            `json:"capacityType,omitempty"`
	AmiType        string            `json:"amiType,omitempty"`
	DiskSize       *int32            `json:"diskSize,omitempty"`
	Labels         map[string]string `json:"labels,omitempty"`
	Subnets        []string          `json:"subnets,omitempty"`
	Version        string            `json:"version,omitempty"`
	ReleaseVersion string            `json:"releaseVersion,omitempty"`
}

// ClusterEndpoint carries the two DescribeCluster fields credential
// provisioning needs.
type ClusterEndpoint struct {
	Endpoint             string
	CertificateAuthority string
}

func newClusterSummary(cluster *types.Cluster) ClusterSummary {
	if cluster == nil {
		return degradedClusterSummary("")
	}
	return ClusterSummary{
		Name:     aws.ToString(cluster.Name),
		Status:   string(cluster.Status),
		Version:  aws.ToString(cluster.Version),
		Endpoint: aws.ToString(cluster.Endpoint),
		Created:  formatTime(cluster.CreatedAt),
	}
}

func degradedClusterSummary(name string) ClusterSummary {
	return ClusterSummary{
		Name:     name,
		Status:   statusUnknown,
		Version:  statusUnknown,
		Endpoint: statusUnknown,
	}
}

func newClusterDetail(cluster *types.Cluster) ClusterDetail {
	detail := ClusterDetail{ClusterSummary: newClusterSummary(cluster)}
	if cluster == nil {
		return detail
	}
	detail.Arn = aws.ToString(cluster.Arn)
	detail.RoleArn = aws.ToString(cluster.RoleArn)
	if vpc := cluster.ResourcesVpcConfig; vpc != nil {
		detail.VpcID = aws.ToString(vpc.VpcId)
		detail.SubnetIDs = vpc.SubnetIds
		detail.SecurityGroupIDs = vpc.SecurityGroupIds
	}
	detail.Tags = cluster.Tags
	return detail
}

func newNodegroupSummary(nodegroup *types.Nodegroup) NodegroupSummary {
	if nodegroup == nil {
		return degradedNodegroupSummary("")
	}
	summary := NodegroupSummary{
		Name:         aws.ToString(nodegroup.NodegroupName),
		Status:       string(nodegroup.Status),
		InstanceType: firstInstanceType(nodegroup.InstanceTypes),
		Created:      formatTime(nodegroup.CreatedAt),
	}
	if scaling := nodegroup.ScalingConfig; scaling != nil {
		summary.DesiredSize = scaling.DesiredSize
		summary.MinSize = scaling.MinSize
		summary.MaxSize = scaling.MaxSize
	}
	return summary
}

func degradedNodegroupSummary(name string) NodegroupSummary {
	return NodegroupSummary{
		Name:         name,
		Status:       statusUnknown,
		InstanceType: statusUnknown,
	}
}

func newNodegroupDetail(nodegroup *types.Nodegroup) NodegroupDetail {
	detail := NodegroupDetail{NodegroupSummary: newNodegroupSummary(nodegroup)}
	if nodegroup == nil {
		return detail
	}
	detail.CapacityType = string(nodegroup.CapacityType)
	detail.AmiType = string(nodegroup.AmiType)
	detail.DiskSize = nodegroup.DiskSize
	detail.Labels = nodegroup.Labels
	detail.Subnets = nodegroup.Subnets
	detail.Version = aws.ToString(nodegroup.Version)
	detail.ReleaseVersion = aws.ToString(nodegroup.ReleaseVersion)
	return detail
}

// firstInstanceType mirrors the instanceType listing field: nodegroups can
// declare several instance types but the summary reports the first.
func firstInstanceType(instanceTypes []string) string {
	if len(instanceTypes) == 0 {
		return "unknown"
	}
	return instanceTypes[0]
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
