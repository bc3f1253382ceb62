package kube

import (
	"context"

	"github.com/giantswarm/mcp-eks/internal/credential"
)

// LogOptions configures pod log retrieval.
type LogOptions struct {
	// Container selects a container in multi-container pods. Empty means
	// the pod's single (or default) container.
	Container string

	// TailLines limits output to the last N lines.
	TailLines int64
}

// Strategy executes the closed set of data-plane capabilities against one
// cluster. Implementations are stateless between calls: every method
// receives the credentials to use, so a single Strategy value serves all
// clusters concurrently.
//
// A capability an implementation cannot serve at all returns an error
// wrapping ErrNotSupported; the Executor skips it and moves on.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string

	ListNamespaces(ctx context.Context, creds *credential.ClusterCredentials) ([]NamespaceSummary, error)
	ListPods(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]PodSummary, error)
	DescribePod(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string) (*PodDetail, error)
	ListDeployments(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]DeploymentSummary, error)
	DescribeDeployment(ctx context.Context, creds *credential.ClusterCredentials, namespace, deploymentName string) (*DeploymentDetail, error)
	ListServices(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]ServiceSummary, error)
	PodLogs(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string, opts LogOptions) (string, error)
}
