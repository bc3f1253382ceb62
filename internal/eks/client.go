package eks

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/giantswarm/mcp-eks/internal/logging"
)

// ControlPlaneAPI is the subset of EKS API operations used by the broker.
// Using a narrow interface instead of the full SDK client makes unit testing
// trivial: create a struct that satisfies the interface and return canned data.
type ControlPlaneAPI interface {
	ListClusters(
		ctx context.Context,
		params *awseks.ListClustersInput,
		optFns ...func(*awseks.Options),
	) (*awseks.ListClustersOutput, error)

	DescribeCluster(
		ctx context.Context,
		params *awseks.DescribeClusterInput,
		optFns ...func(*awseks.Options),
	) (*awseks.DescribeClusterOutput, error)

	ListNodegroups(
		ctx context.Context,
		params *awseks.ListNodegroupsInput,
		optFns ...func(*awseks.Options),
	) (*awseks.ListNodegroupsOutput, error)

	DescribeNodegroup(
		ctx context.Context,
		params *awseks.DescribeNodegroupInput,
		optFns ...func(*awseks.Options),
	) (*awseks.DescribeNodegroupOutput, error)
}

// Client provides control-plane operations and bearer token minting for one
// AWS region.
type Client struct {
	region    string
	api       ControlPlaneAPI
	presigner CredentialPresigner
	logger    *slog.Logger
	now       func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPI replaces the EKS control-plane client, typically with a fake.
func WithAPI(api ControlPlaneAPI) ClientOption {
	return func(c *Client) {
		c.api = api
	}
}

// WithPresigner replaces the STS presign client, typically with a fake.
func WithPresigner(presigner CredentialPresigner) ClientOption {
	return func(c *Client) {
		c.presigner = presigner
	}
}

// WithClientLogger sets the logger for the client.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withClientClock overrides the time source for tests.
func withClientClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient builds a Client for the given region. Unless fakes were injected
// through options, the AWS configuration is resolved through the standard
// credential chain (environment, shared config, IMDS).
func NewClient(ctx context.Context, region string, opts ...ClientOption) (*Client, error) {
	if region == "" {
		return nil, ErrEmptyRegion
	}

	c := &Client{
		region: region,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil || c.presigner == nil {
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
		if err != nil {
			return nil, fmt.Errorf("loading AWS config for region %s: %w", region, err)
		}
		if c.api == nil {
			c.api = awseks.NewFromConfig(cfg)
		}
		if c.presigner == nil {
			c.presigner = sts.NewPresignClient(sts.NewFromConfig(cfg))
		}
	}

	return c, nil
}

// Region returns the AWS region this client is bound to.
func (c *Client) Region() string {
	return c.region
}

// ListClusters returns a summary for every cluster in the region, sorted by
// name. Clusters whose describe call fails are kept with UNKNOWN placeholder
// fields rather than dropped, so one unqueryable cluster cannot hide the rest.
func (c *Client) ListClusters(ctx context.Context) ([]ClusterSummary, error) {
	var names []string
	pager := awseks.NewListClustersPaginator(c.api, &awseks.ListClustersInput{})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing clusters in %s: %w", c.region, err)
		}
		names = append(names, page.Clusters...)
	}

	summaries := make([]ClusterSummary, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := c.api.DescribeCluster(ctx, &awseks.DescribeClusterInput{Name: aws.String(name)})
		if err != nil {
			c.logger.Warn("describe cluster failed during listing",
				logging.Cluster(name),
				logging.Region(c.region),
				logging.SanitizedErr(err))
			summaries = append(summaries, degradedClusterSummary(name))
			continue
		}
		summaries = append(summaries, newClusterSummary(out.Cluster))
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

// DescribeCluster returns detailed information about one cluster.
func (c *Client) DescribeCluster(ctx context.Context, name string) (*ClusterDetail, error) {
	out, err := c.api.DescribeCluster(ctx, &awseks.DescribeClusterInput{Name: aws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("describing cluster %s: %w", name, err)
	}
	detail := newClusterDetail(out.Cluster)
	return &detail, nil
}

// ListNodegroups returns a summary for every managed nodegroup of a cluster,
// sorted by name, with the same degrade-instead-of-drop behavior as
// ListClusters.
func (c *Client) ListNodegroups(ctx context.Context, clusterName string) ([]NodegroupSummary, error) {
	var names []string
	pager := awseks.NewListNodegroupsPaginator(c.api, &awseks.ListNodegroupsInput{
		ClusterName: aws.String(clusterName),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing nodegroups for cluster %s: %w", clusterName, err)
		}
		names = append(names, page.Nodegroups...)
	}

	summaries := make([]NodegroupSummary, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := c.api.DescribeNodegroup(ctx, &awseks.DescribeNodegroupInput{
			ClusterName:   aws.String(clusterName),
			NodegroupName: aws.String(name),
		})
		if err != nil {
			c.logger.Warn("describe nodegroup failed during listing",
				logging.Cluster(clusterName),
				logging.ResourceName(name),
				logging.SanitizedErr(err))
			summaries = append(summaries, degradedNodegroupSummary(name))
			continue
		}
		summaries = append(summaries, newNodegroupSummary(out.Nodegroup))
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

// DescribeNodegroup returns detailed information about one managed nodegroup.
func (c *Client) DescribeNodegroup(ctx context.Context, clusterName, nodegroupName string) (*NodegroupDetail, error) {
	out, err := c.api.DescribeNodegroup(ctx, &awseks.DescribeNodegroupInput{
		ClusterName:   aws.String(clusterName),
		NodegroupName: aws.String(nodegroupName),
	})
	if err != nil {
		return nil, fmt.Errorf("describing nodegroup %s in cluster %s: %w", nodegroupName, clusterName, err)
	}
	detail := newNodegroupDetail(out.Nodegroup)
	return &detail, nil
}

// ClusterEndpoint returns the API server endpoint and base64-encoded
// certificate authority bundle for a cluster. Clusters still being created
// report neither, which surfaces as ErrIncompleteCluster.
func (c *Client) ClusterEndpoint(ctx context.Context, name string) (*ClusterEndpoint, error) {
	out, err := c.api.DescribeCluster(ctx, &awseks.DescribeClusterInput{Name: aws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("describing cluster %s: %w", name, err)
	}

	cluster := out.Cluster
	if cluster == nil || cluster.Endpoint == nil ||
		cluster.CertificateAuthority == nil || cluster.CertificateAuthority.Data == nil {
		return nil, fmt.Errorf("cluster %s: %w", name, ErrIncompleteCluster)
	}

	return &ClusterEndpoint{
		Endpoint:             aws.ToString(cluster.Endpoint),
		CertificateAuthority: aws.ToString(cluster.CertificateAuthority.Data),
	}, nil
}
