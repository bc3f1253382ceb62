package broker

import (
	"context"
	"log/slog"

	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/eks"
	"github.com/giantswarm/mcp-eks/internal/kube"
	"github.com/giantswarm/mcp-eks/internal/logging"
)

// DefaultRegion is used when a request does not name one.
const DefaultRegion = "us-east-1"

// Broker dispatches catalog operations. It is safe for concurrent use;
// all state lives in the backends it wraps.
type Broker struct {
	clients       *eks.ClientFactory
	provisioner   *credential.Provisioner
	executor      *kube.Executor
	defaultRegion string
	logger        *slog.Logger
}

// Option configures a Broker.
type Option func(*Broker)

// WithDefaultRegion overrides the region used when requests omit one.
func WithDefaultRegion(region string) Option {
	return func(b *Broker) {
		if region != "" {
			b.defaultRegion = region
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Broker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBroker wires the dispatcher over its backends: the EKS control
// plane for cluster and nodegroup operations, and the credential
// provisioner plus strategy executor for everything inside a cluster.
func NewBroker(clients *eks.ClientFactory, provisioner *credential.Provisioner, executor *kube.Executor, opts ...Option) (*Broker, error) {
	if clients == nil {
		return nil, ErrNilClientFactory
	}
	if provisioner == nil {
		return nil, ErrNilProvisioner
	}
	if executor == nil {
		return nil, ErrNilExecutor
	}

	b := &Broker{
		clients:       clients,
		provisioner:   provisioner,
		executor:      executor,
		defaultRegion: DefaultRegion,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Dispatch validates one request and runs it. It always returns an
// envelope; failures are carried in-band, never as a Go error.
func (b *Broker) Dispatch(ctx context.Context, operation string, params Params) *Envelope {
	spec, ok := catalog[operation]
	if !ok {
		b.logger.Warn("Rejected unknown operation", logging.Operation(operation))
		return Failuref(CodeUnsupportedOperation, "unknown operation: %s", operation)
	}

	if failure := spec.validate(params); failure != nil {
		b.logger.Warn("Rejected invalid request",
			logging.Operation(operation),
			slog.String("reason", failure.Error))
		return failure
	}

	region := params.stringValue(paramRegion)
	if region == "" {
		region = b.defaultRegion
	}

	b.logger.Debug("Dispatching operation",
		logging.Operation(operation),
		logging.Region(region))

	switch operation {
	case OpListClusters:
		return b.listClusters(ctx, region)
	case OpDescribeCluster:
		return b.describeCluster(ctx, region, params.stringValue(paramClusterName))
	case OpListNodegroups:
		return b.listNodegroups(ctx, region, params.stringValue(paramClusterName))
	case OpDescribeNodegroup:
		return b.describeNodegroup(ctx, region, params.stringValue(paramClusterName), params.stringValue(paramNodegroupName))
	case OpListNamespaces:
		return b.listNamespaces(ctx, region, params)
	case OpListPods:
		return b.listPods(ctx, region, params)
	case OpDescribePod:
		return b.describePod(ctx, region, params)
	case OpGetDeployments:
		return b.getDeployments(ctx, region, params)
	case OpDescribeDeployment:
		return b.describeDeployment(ctx, region, params)
	case OpGetServices:
		return b.getServices(ctx, region, params)
	case OpGetPodLogs:
		return b.getPodLogs(ctx, region, params)
	}

	// catalog and the switch above cover the same set
	return Failuref(CodeUnsupportedOperation, "unknown operation: %s", operation)
}

func (b *Broker) listClusters(ctx context.Context, region string) *Envelope {
	client, err := b.clients.ForRegion(ctx, region)
	if err != nil {
		return controlPlaneFailure(err)
	}
	clusters, err := client.ListClusters(ctx)
	if err != nil {
		return controlPlaneFailure(err)
	}
	return Success(map[string]any{"clusters": clusters})
}

func (b *Broker) describeCluster(ctx context.Context, region, clusterName string) *Envelope {
	client, err := b.clients.ForRegion(ctx, region)
	if err != nil {
		return controlPlaneFailure(err)
	}
	detail, err := client.DescribeCluster(ctx, clusterName)
	if err != nil {
		return controlPlaneFailure(err)
	}
	return Success(detail)
}

func (b *Broker) listNodegroups(ctx context.Context, region, clusterName string) *Envelope {
	client, err := b.clients.ForRegion(ctx, region)
	if err != nil {
		return controlPlaneFailure(err)
	}
	nodegroups, err := client.ListNodegroups(ctx, clusterName)
	if err != nil {
		return controlPlaneFailure(err)
	}
	return Success(map[string]any{"nodegroups": nodegroups})
}

func (b *Broker) describeNodegroup(ctx context.Context, region, clusterName, nodegroupName string) *Envelope {
	client, err := b.clients.ForRegion(ctx, region)
	if err != nil {
		return controlPlaneFailure(err)
	}
	detail, err := client.DescribeNodegroup(ctx, clusterName, nodegroupName)
	if err != nil {
		return controlPlaneFailure(err)
	}
	return Success(detail)
}

// credentials provisions cluster access for a data-plane operation,
// translating failures into envelopes.
func (b *Broker) credentials(ctx context.Context, clusterName, region string) (*credential.ClusterCredentials, *Envelope) {
	creds, err := b.provisioner.Provision(ctx, clusterName, region)
	if err != nil {
		b.logger.Warn("Credential provisioning failed",
			logging.Cluster(clusterName),
			logging.Region(region),
			logging.SanitizedErr(err))
		return nil, provisionFailure(err)
	}
	return creds, nil
}

func (b *Broker) listNamespaces(ctx context.Context, region string, params Params) *Envelope {
	creds, failure := b.credentials(ctx, params.stringValue(paramClusterName), region)
	if failure != nil {
		return failure
	}
	namespaces, err := b.executor.ListNamespaces(ctx, creds)
	if err != nil {
		return dataPlaneFailure(OpListNamespaces, err)
	}
	return Success(map[string]any{"namespaces": namespaces})
}

func (b *Broker) listPods(ctx context.Context, region string, params Params) *Envelope {
	creds, failure := b.credentials(ctx, params.stringValue(paramClusterName), region)
	if failure != nil {
		return failure
	}
	pods, err := b.executor.ListPods(ctx, creds, params.stringValue(paramNamespace))
	if err != nil {
		return dataPlaneFailure(OpListPods, err)
	}
	return Success(map[string]any{"pods": pods})
}

func (b *Broker) describePod(ctx context.Context, region string, params Params) *Envelope {
	creds, failure := b.credentials(ctx, params.stringValue(paramClusterName), region)
	if failure != nil {
		return failure
	}
	detail, err := b.executor.DescribePod(ctx, creds,
		params.stringValue(paramNamespace), params.stringValue(paramPodName))
	if err != nil {
		return dataPlaneFailure(OpDescribePod, err)
	}
	return Success(detail)
}

func (b *Broker) getDeployments(ctx context.Context, region string, params Params) *Envelope {
	creds, failure := b.credentials(ctx, params.stringValue(paramClusterName), region)
	if failure != nil {
		return failure
	}
	deployments, err := b.executor.ListDeployments(ctx, creds, params.stringValue(paramNamespace))
	if err != nil {
		return dataPlaneFailure(OpGetDeployments, err)
	}
	return Success(map[string]any{"deployments": deployments})
}

func (b *Broker) describeDeployment(ctx context.Context, region string, params Params) *Envelope {
	creds, failure := b.credentials(ctx, params.stringValue(paramClusterName), region)
	if failure != nil {
		return failure
	}
	detail, err := b.executor.DescribeDeployment(ctx, creds,
		params.stringValue(paramNamespace), params.stringValue(paramDeploymentName))
	if err != nil {
		return dataPlaneFailure(OpDescribeDeployment, err)
	}
	return Success(detail)
}

func (b *Broker) getServices(ctx context.Context, region string, params Params) *Envelope {
	creds, failure := b.credentials(ctx, params.stringValue(paramClusterName), region)
	if failure != nil {
		return failure
	}
	services, err := b.executor.ListServices(ctx, creds, params.stringValue(paramNamespace))
	if err != nil {
		return dataPlaneFailure(OpGetServices, err)
	}
	return Success(map[string]any{"services": services})
}

func (b *Broker) getPodLogs(ctx context.Context, region string, params Params) *Envelope {
	clusterName := params.stringValue(paramClusterName)
	namespace := params.stringValue(paramNamespace)
	podName := params.stringValue(paramPodName)
	tail := params.intValue(paramTail, defaultTailLines)
	// The strategies disagree on non-positive tails (kubectl passes them
	// through, the typed client drops them), so normalize here.
	if tail <= 0 {
		tail = defaultTailLines
	}

	creds, failure := b.credentials(ctx, clusterName, region)
	if failure != nil {
		return failure
	}

	logs, err := b.executor.PodLogs(ctx, creds, namespace, podName, kube.LogOptions{
		Container: params.stringValue(paramContainer),
		TailLines: tail,
	})
	if err != nil {
		return dataPlaneFailure(OpGetPodLogs, err)
	}

	return Success(map[string]any{
		"logs":      logs,
		"pod":       podName,
		"namespace": namespace,
		"tail":      tail,
	})
}
