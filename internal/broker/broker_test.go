package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/eks"
	"github.com/giantswarm/mcp-eks/internal/kube"
)

// fakeControlPlane is an in-memory EKS control plane that counts calls,
// so tests can assert rejected requests never reach AWS.
type fakeControlPlane struct {
	mu           sync.Mutex
	calls        int
	err          error
	clusterNames []string
	clusters     map[string]*ekstypes.Cluster
	nodegroups   map[string]map[string]*ekstypes.Nodegroup
}

func (f *fakeControlPlane) record() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeControlPlane) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeControlPlane) ListClusters(_ context.Context, _ *awseks.ListClustersInput, _ ...func(*awseks.Options)) (*awseks.ListClustersOutput, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	return &awseks.ListClustersOutput{Clusters: f.clusterNames}, nil
}

func (f *fakeControlPlane) DescribeCluster(_ context.Context, params *awseks.DescribeClusterInput, _ ...func(*awseks.Options)) (*awseks.DescribeClusterOutput, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	cluster, ok := f.clusters[aws.ToString(params.Name)]
	if !ok {
		return nil, &ekstypes.ResourceNotFoundException{Message: aws.String("no cluster found for name")}
	}
	return &awseks.DescribeClusterOutput{Cluster: cluster}, nil
}

func (f *fakeControlPlane) ListNodegroups(_ context.Context, params *awseks.ListNodegroupsInput, _ ...func(*awseks.Options)) (*awseks.ListNodegroupsOutput, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	groups, ok := f.nodegroups[aws.ToString(params.ClusterName)]
	if !ok {
		return nil, &ekstypes.ResourceNotFoundException{Message: aws.String("no cluster found for name")}
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	return &awseks.ListNodegroupsOutput{Nodegroups: names}, nil
}

func (f *fakeControlPlane) DescribeNodegroup(_ context.Context, params *awseks.DescribeNodegroupInput, _ ...func(*awseks.Options)) (*awseks.DescribeNodegroupOutput, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	groups := f.nodegroups[aws.ToString(params.ClusterName)]
	nodegroup, ok := groups[aws.ToString(params.NodegroupName)]
	if !ok {
		return nil, &ekstypes.ResourceNotFoundException{Message: aws.String("no nodegroup found for name")}
	}
	return &awseks.DescribeNodegroupOutput{Nodegroup: nodegroup}, nil
}

// fakeSource provisions canned credentials and records what was asked.
type fakeSource struct {
	mu         sync.Mutex
	fetches    int
	lastRegion string
	err        error
}

func (s *fakeSource) Fetch(_ context.Context, clusterName, region string) (*credential.ClusterCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	s.lastRegion = region
	if s.err != nil {
		return nil, s.err
	}
	return &credential.ClusterCredentials{
		ClusterName:          clusterName,
		Region:               region,
		Endpoint:             "https://ABC123.gr7." + region + ".eks.amazonaws.com",
		CertificateAuthority: "Q0EgZGF0YQ==",
		Token:                "k8s-aws-v1.dG9rZW4",
		ExpiresAt:            time.Now().Add(14 * time.Minute),
	}, nil
}

func (s *fakeSource) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *fakeSource) region() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRegion
}

// stubStrategy serves canned summaries and counts calls.
type stubStrategy struct {
	mu          sync.Mutex
	calls       int
	err         error
	lastLogOpts kube.LogOptions

	namespaces  []kube.NamespaceSummary
	pods        []kube.PodSummary
	deployments []kube.DeploymentSummary
	services    []kube.ServiceSummary
	logs        string
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) record() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubStrategy) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubStrategy) ListNamespaces(context.Context, *credential.ClusterCredentials) ([]kube.NamespaceSummary, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	return s.namespaces, nil
}

func (s *stubStrategy) ListPods(context.Context, *credential.ClusterCredentials, string) ([]kube.PodSummary, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	return s.pods, nil
}

func (s *stubStrategy) DescribePod(_ context.Context, _ *credential.ClusterCredentials, namespace, podName string) (*kube.PodDetail, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	return &kube.PodDetail{Name: podName, Namespace: namespace, Phase: "Running"}, nil
}

func (s *stubStrategy) ListDeployments(context.Context, *credential.ClusterCredentials, string) ([]kube.DeploymentSummary, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	return s.deployments, nil
}

func (s *stubStrategy) DescribeDeployment(_ context.Context, _ *credential.ClusterCredentials, namespace, deploymentName string) (*kube.DeploymentDetail, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	detail := &kube.DeploymentDetail{}
	detail.Name = deploymentName
	detail.Namespace = namespace
	return detail, nil
}

func (s *stubStrategy) ListServices(context.Context, *credential.ClusterCredentials, string) ([]kube.ServiceSummary, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	return s.services, nil
}

func (s *stubStrategy) PodLogs(_ context.Context, _ *credential.ClusterCredentials, _, _ string, opts kube.LogOptions) (string, error) {
	s.mu.Lock()
	s.lastLogOpts = opts
	s.mu.Unlock()
	if err := s.record(); err != nil {
		return "", err
	}
	return s.logs, nil
}

func (s *stubStrategy) logOpts() kube.LogOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastLogOpts
}

// fixture wires a broker over counting fakes for all three backends.
type fixture struct {
	controlPlane *fakeControlPlane
	source       *fakeSource
	strategy     *stubStrategy
	broker       *Broker
}

// backendCalls sums everything a rejected request must never trigger.
func (f *fixture) backendCalls() int {
	return f.controlPlane.callCount() + f.source.fetchCount() + f.strategy.callCount()
}

func awsCluster(name string) *ekstypes.Cluster {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ekstypes.Cluster{
		Name:      aws.String(name),
		Status:    ekstypes.ClusterStatusActive,
		Version:   aws.String("1.31"),
		Endpoint:  aws.String("https://" + name + ".gr7.us-east-1.eks.amazonaws.com"),
		CreatedAt: &created,
		Arn:       aws.String("arn:aws:eks:us-east-1:111122223333:cluster/" + name),
		CertificateAuthority: &ekstypes.Certificate{
			Data: aws.String("Q0EgZGF0YQ=="),
		},
	}
}

func awsNodegroup(name string) *ekstypes.Nodegroup {
	created := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	return &ekstypes.Nodegroup{
		NodegroupName: aws.String(name),
		Status:        ekstypes.NodegroupStatusActive,
		InstanceTypes: []string{"m5.large"},
		CreatedAt:     &created,
		ScalingConfig: &ekstypes.NodegroupScalingConfig{
			DesiredSize: aws.Int32(3),
			MinSize:     aws.Int32(1),
			MaxSize:     aws.Int32(5),
		},
	}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	controlPlane := &fakeControlPlane{
		clusterNames: []string{"prod", "staging"},
		clusters: map[string]*ekstypes.Cluster{
			"prod":    awsCluster("prod"),
			"staging": awsCluster("staging"),
		},
		nodegroups: map[string]map[string]*ekstypes.Nodegroup{
			"prod": {
				"workers-a": awsNodegroup("workers-a"),
				"workers-b": awsNodegroup("workers-b"),
			},
		},
	}
	factory := eks.NewClientFactory(eks.WithFactoryBuilder(func(ctx context.Context, region string) (*eks.Client, error) {
		return eks.NewClient(ctx, region, eks.WithAPI(controlPlane))
	}))

	source := &fakeSource{}
	provisioner, err := credential.NewProvisioner(source)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provisioner.Close() })

	strategy := &stubStrategy{
		namespaces: []kube.NamespaceSummary{{Name: "default", Status: "Active"}},
		pods: []kube.PodSummary{
			{Name: "web", Status: "Running", Node: "ip-10-0-1-20.ec2.internal", IP: "10.0.1.5", Containers: 2},
		},
		deployments: []kube.DeploymentSummary{{Name: "api", Namespace: "default"}},
		services:    []kube.ServiceSummary{{Name: "api", Namespace: "default", Type: "ClusterIP"}},
		logs:        "log line\n",
	}
	executor := kube.NewExecutor(nil, strategy)

	b, err := NewBroker(factory, provisioner, executor, opts...)
	require.NoError(t, err)

	return &fixture{
		controlPlane: controlPlane,
		source:       source,
		strategy:     strategy,
		broker:       b,
	}
}

func TestNewBroker(t *testing.T) {
	f := newFixture(t)

	t.Run("nil client factory rejected", func(t *testing.T) {
		_, err := NewBroker(nil, f.broker.provisioner, f.broker.executor)
		assert.ErrorIs(t, err, ErrNilClientFactory)
	})

	t.Run("nil provisioner rejected", func(t *testing.T) {
		_, err := NewBroker(f.broker.clients, nil, f.broker.executor)
		assert.ErrorIs(t, err, ErrNilProvisioner)
	})

	t.Run("nil executor rejected", func(t *testing.T) {
		_, err := NewBroker(f.broker.clients, f.broker.provisioner, nil)
		assert.ErrorIs(t, err, ErrNilExecutor)
	})
}

func TestDispatch_UnknownOperation(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), "drain_node", Params{})

	assert.True(t, envelope.IsError())
	assert.Equal(t, CodeUnsupportedOperation, envelope.ErrorCode)
	assert.Contains(t, envelope.Error, "drain_node")
	assert.Zero(t, f.backendCalls(), "an unknown operation must not reach any backend")
}

func TestDispatch_MissingParameter(t *testing.T) {
	tests := []struct {
		operation string
		params    Params
		missing   string
	}{
		{OpDescribeCluster, Params{}, paramClusterName},
		{OpListNodegroups, Params{}, paramClusterName},
		{OpDescribeNodegroup, Params{paramClusterName: "prod"}, paramNodegroupName},
		{OpListNamespaces, Params{}, paramClusterName},
		{OpListPods, Params{paramClusterName: "prod"}, paramNamespace},
		{OpDescribePod, Params{paramClusterName: "prod", paramNamespace: "default"}, paramPodName},
		{OpGetDeployments, Params{paramClusterName: "prod"}, paramNamespace},
		{OpDescribeDeployment, Params{paramClusterName: "prod", paramNamespace: "default"}, paramDeploymentName},
		{OpGetServices, Params{paramClusterName: "prod"}, paramNamespace},
		{OpGetPodLogs, Params{paramClusterName: "prod", paramNamespace: "default"}, paramPodName},
	}

	for _, tc := range tests {
		t.Run(tc.operation+" without "+tc.missing, func(t *testing.T) {
			f := newFixture(t)

			envelope := f.broker.Dispatch(context.Background(), tc.operation, tc.params)

			assert.Equal(t, CodeMissingParameter, envelope.ErrorCode)
			assert.Equal(t, fmt.Sprintf("missing required parameter: %s", tc.missing), envelope.Error)
			assert.Zero(t, f.backendCalls(), "a rejected request must not reach any backend")
		})
	}

	t.Run("whitespace counts as missing", func(t *testing.T) {
		f := newFixture(t)

		envelope := f.broker.Dispatch(context.Background(), OpDescribeCluster, Params{paramClusterName: "   "})

		assert.Equal(t, CodeMissingParameter, envelope.ErrorCode)
		assert.Zero(t, f.backendCalls())
	})
}

func TestDispatch_ListClusters(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), OpListClusters, Params{})

	require.False(t, envelope.IsError(), "unexpected failure: %s", envelope.Error)
	assert.Empty(t, envelope.Error)
	assert.Empty(t, envelope.ErrorCode)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	clusters, ok := data["clusters"].([]eks.ClusterSummary)
	require.True(t, ok)
	require.Len(t, clusters, 2)
	assert.Equal(t, "prod", clusters[0].Name)
	assert.Equal(t, "staging", clusters[1].Name)
}

func TestDispatch_DescribeCluster(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), OpDescribeCluster, Params{paramClusterName: "prod"})

	require.False(t, envelope.IsError(), "unexpected failure: %s", envelope.Error)
	detail, ok := envelope.Data.(*eks.ClusterDetail)
	require.True(t, ok)
	assert.Equal(t, "prod", detail.Name)
	assert.Equal(t, "ACTIVE", detail.Status)
	assert.Equal(t, "arn:aws:eks:us-east-1:111122223333:cluster/prod", detail.Arn)

	t.Run("unknown cluster", func(t *testing.T) {
		envelope := f.broker.Dispatch(context.Background(), OpDescribeCluster, Params{paramClusterName: "ghost"})

		assert.Equal(t, CodeAWSError, envelope.ErrorCode)
		assert.Contains(t, envelope.Error, "ghost")
	})
}

func TestDispatch_ListNodegroups(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), OpListNodegroups, Params{paramClusterName: "prod"})

	require.False(t, envelope.IsError(), "unexpected failure: %s", envelope.Error)
	data := envelope.Data.(map[string]any)
	nodegroups, ok := data["nodegroups"].([]eks.NodegroupSummary)
	require.True(t, ok)
	require.Len(t, nodegroups, 2)
	assert.Equal(t, "workers-a", nodegroups[0].Name)
	assert.Equal(t, "workers-b", nodegroups[1].Name)
}

func TestDispatch_DescribeNodegroup(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), OpDescribeNodegroup, Params{
		paramClusterName:   "prod",
		paramNodegroupName: "workers-a",
	})

	require.False(t, envelope.IsError(), "unexpected failure: %s", envelope.Error)
	detail, ok := envelope.Data.(*eks.NodegroupDetail)
	require.True(t, ok)
	assert.Equal(t, "workers-a", detail.Name)

	t.Run("missing nodegroup", func(t *testing.T) {
		envelope := f.broker.Dispatch(context.Background(), OpDescribeNodegroup, Params{
			paramClusterName:   "prod",
			paramNodegroupName: "does-not-exist",
		})
		assert.Equal(t, CodeAWSError, envelope.ErrorCode)
		assert.Contains(t, envelope.Error, "does-not-exist")
	})

	t.Run("access denied", func(t *testing.T) {
		f := newFixture(t)
		f.controlPlane.err = &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"}

		envelope := f.broker.Dispatch(context.Background(), OpDescribeNodegroup, Params{
			paramClusterName:   "prod",
			paramNodegroupName: "workers-a",
		})
		assert.Equal(t, CodeAuthError, envelope.ErrorCode)
	})

	t.Run("other EKS failure", func(t *testing.T) {
		f := newFixture(t)
		f.controlPlane.err = &smithy.GenericAPIError{Code: "InvalidParameterException", Message: "bad input"}

		envelope := f.broker.Dispatch(context.Background(), OpDescribeNodegroup, Params{
			paramClusterName:   "prod",
			paramNodegroupName: "workers-a",
		})
		assert.Equal(t, CodeAWSError, envelope.ErrorCode)
	})
}

func TestDispatch_ListPods(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), OpListPods, Params{
		paramClusterName: "prod",
		paramNamespace:   "default",
	})

	require.False(t, envelope.IsError(), "unexpected failure: %s", envelope.Error)

	encoded, err := json.Marshal(envelope)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "success",
		"data": {
			"pods": [
				{"name":"web","status":"Running","node":"ip-10-0-1-20.ec2.internal","ip":"10.0.1.5","containers":2}
			]
		}
	}`, string(encoded))
}

func TestDispatch_ListNamespaces(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), OpListNamespaces, Params{paramClusterName: "prod"})

	require.False(t, envelope.IsError(), "unexpected failure: %s", envelope.Error)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, []kube.NamespaceSummary{{Name: "default", Status: "Active"}}, data["namespaces"])
	assert.Equal(t, 1, f.source.fetchCount(), "data-plane operations provision credentials")
}

func TestDispatch_GetPodLogs(t *testing.T) {
	f := newFixture(t)

	envelope := f.broker.Dispatch(context.Background(), OpGetPodLogs, Params{
		paramClusterName: "prod",
		paramNamespace:   "default",
		paramPodName:     "web",
	})

	require.False(t, envelope.IsError(), "unexpected failure: %s", envelope.Error)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "log line\n", data["logs"])
	assert.Equal(t, "web", data["pod"])
	assert.Equal(t, "default", data["namespace"])
	assert.Equal(t, int64(defaultTailLines), data["tail"])
	assert.Equal(t, int64(defaultTailLines), f.strategy.logOpts().TailLines)

	t.Run("tail and container honored", func(t *testing.T) {
		f := newFixture(t)

		envelope := f.broker.Dispatch(context.Background(), OpGetPodLogs, Params{
			paramClusterName: "prod",
			paramNamespace:   "default",
			paramPodName:     "web",
			paramContainer:   "app",
			paramTail:        float64(50),
		})

		require.False(t, envelope.IsError())
		data := envelope.Data.(map[string]any)
		assert.Equal(t, int64(50), data["tail"])
		assert.Equal(t, kube.LogOptions{Container: "app", TailLines: 50}, f.strategy.logOpts())
	})

	t.Run("non-positive tail falls back to the default", func(t *testing.T) {
		for _, tail := range []any{float64(-5), float64(0), "-5"} {
			f := newFixture(t)

			envelope := f.broker.Dispatch(context.Background(), OpGetPodLogs, Params{
				paramClusterName: "prod",
				paramNamespace:   "default",
				paramPodName:     "web",
				paramTail:        tail,
			})

			require.False(t, envelope.IsError())
			data := envelope.Data.(map[string]any)
			assert.Equal(t, int64(defaultTailLines), data["tail"])
			assert.Equal(t, int64(defaultTailLines), f.strategy.logOpts().TailLines)
		}
	})
}

func TestDispatch_RegionHandling(t *testing.T) {
	t.Run("defaults to us-east-1", func(t *testing.T) {
		f := newFixture(t)

		f.broker.Dispatch(context.Background(), OpListNamespaces, Params{paramClusterName: "prod"})
		assert.Equal(t, "us-east-1", f.source.region())
	})

	t.Run("request region wins", func(t *testing.T) {
		f := newFixture(t)

		f.broker.Dispatch(context.Background(), OpListNamespaces, Params{
			paramClusterName: "prod",
			paramRegion:      "eu-west-1",
		})
		assert.Equal(t, "eu-west-1", f.source.region())
	})

	t.Run("configured default", func(t *testing.T) {
		f := newFixture(t, WithDefaultRegion("eu-central-1"))

		f.broker.Dispatch(context.Background(), OpListNamespaces, Params{paramClusterName: "prod"})
		assert.Equal(t, "eu-central-1", f.source.region())
	})
}

func TestDispatch_DataPlaneErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"unauthorized", k8serrors.NewUnauthorized("token rejected"), CodeAuthError},
		{"not found", k8serrors.NewNotFound(schema.GroupResource{Resource: "pods"}, "ghost"), CodeNotFound},
		{"timeout", fmt.Errorf("requesting /api/v1/namespaces: %w", context.DeadlineExceeded), CodeUpstreamTimeout},
		{"other", errors.New("admission webhook denied the request"), CodeKubernetesError},
		{"nothing can serve", kube.ErrNotSupported, CodeUnsupportedOperation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.strategy.err = tc.err

			envelope := f.broker.Dispatch(context.Background(), OpListPods, Params{
				paramClusterName: "prod",
				paramNamespace:   "default",
			})

			assert.True(t, envelope.IsError())
			assert.Equal(t, tc.code, envelope.ErrorCode)
		})
	}
}

func TestDispatch_ProvisionFailureMapping(t *testing.T) {
	t.Run("unknown cluster", func(t *testing.T) {
		f := newFixture(t)
		f.source.err = &ekstypes.ResourceNotFoundException{Message: aws.String("no cluster found for name")}

		envelope := f.broker.Dispatch(context.Background(), OpListNamespaces, Params{paramClusterName: "ghost"})

		assert.Equal(t, CodeNotFound, envelope.ErrorCode)
		assert.Equal(t, `cluster "ghost" not found in region us-east-1`, envelope.Error)
		assert.Zero(t, f.strategy.callCount(), "no strategy runs without credentials")
	})

	t.Run("access denied", func(t *testing.T) {
		f := newFixture(t)
		f.source.err = &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"}

		envelope := f.broker.Dispatch(context.Background(), OpListNamespaces, Params{paramClusterName: "prod"})

		assert.Equal(t, CodeAuthError, envelope.ErrorCode)
		assert.Equal(t, "cluster access denied or unavailable", envelope.Error)
	})

	t.Run("transient failure exhausted", func(t *testing.T) {
		f := newFixture(t)
		f.source.err = &smithy.GenericAPIError{Code: "ServiceUnavailableException", Message: "try again"}

		envelope := f.broker.Dispatch(context.Background(), OpListNamespaces, Params{paramClusterName: "prod"})

		assert.Equal(t, CodeUpstreamTimeout, envelope.ErrorCode)
		assert.Contains(t, envelope.Error, "prod")
	})
}

func TestOperations(t *testing.T) {
	assert.Equal(t, []string{
		OpDescribeCluster,
		OpDescribeDeployment,
		OpDescribeNodegroup,
		OpDescribePod,
		OpGetDeployments,
		OpGetPodLogs,
		OpGetServices,
		OpListClusters,
		OpListNamespaces,
		OpListNodegroups,
		OpListPods,
	}, Operations())
}
