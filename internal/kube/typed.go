package kube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/logging"
)

const (
	// clientTimeout bounds every API call a strategy makes.
	clientTimeout = 30 * time.Second

	clientQPS   = 20.0
	clientBurst = 30
)

// TypedStrategy serves capabilities through a client-go clientset built
// from the provisioned bearer token and CA bundle.
type TypedStrategy struct {
	logger *slog.Logger

	// newClientset builds a typed clientset from credentials. Tests swap
	// it for a fake.
	newClientset func(creds *credential.ClusterCredentials) (kubernetes.Interface, error)
}

// NewTypedStrategy returns the client-go backed strategy.
func NewTypedStrategy(logger *slog.Logger) *TypedStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &TypedStrategy{
		logger:       logger,
		newClientset: typedClientset,
	}
}

func typedClientset(creds *credential.ClusterCredentials) (kubernetes.Interface, error) {
	caData, err := creds.DecodeCertificateAuthority()
	if err != nil {
		return nil, err
	}

	config := &rest.Config{
		Host:        creds.Endpoint,
		BearerToken: creds.Token,
		TLSClientConfig: rest.TLSClientConfig{
			CAData: caData,
		},
		QPS:     clientQPS,
		Burst:   clientBurst,
		Timeout: clientTimeout,
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating clientset for cluster %s: %w", creds.ClusterName, err)
	}
	return clientset, nil
}

// Name implements Strategy.
func (s *TypedStrategy) Name() string {
	return "typed-api"
}

func (s *TypedStrategy) logOp(creds *credential.ClusterCredentials, capability, namespace string) {
	s.logger.Debug("Kubernetes operation",
		logging.Operation(capability),
		logging.Strategy(s.Name()),
		logging.Cluster(creds.ClusterName),
		logging.Namespace(namespace))
}

// ListNamespaces implements Strategy.
func (s *TypedStrategy) ListNamespaces(ctx context.Context, creds *credential.ClusterCredentials) ([]NamespaceSummary, error) {
	s.logOp(creds, "list_namespaces", "")

	clientset, err := s.newClientset(creds)
	if err != nil {
		return nil, err
	}

	list, err := clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}
	return namespaceSummaries(list.Items), nil
}

// ListPods implements Strategy.
func (s *TypedStrategy) ListPods(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]PodSummary, error) {
	s.logOp(creds, "list_pods", namespace)

	clientset, err := s.newClientset(creds)
	if err != nil {
		return nil, err
	}

	list, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing pods in namespace %s: %w", namespace, err)
	}
	return podSummaries(list.Items), nil
}

// DescribePod implements Strategy.
func (s *TypedStrategy) DescribePod(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string) (*PodDetail, error) {
	s.logOp(creds, "describe_pod", namespace)

	clientset, err := s.newClientset(creds)
	if err != nil {
		return nil, err
	}

	pod, err := clientset.CoreV1().Pods(namespace).Get(ctx, podName, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting pod %s/%s: %w", namespace, podName, err)
	}
	return newPodDetail(pod), nil
}

// ListDeployments implements Strategy.
func (s *TypedStrategy) ListDeployments(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]DeploymentSummary, error) {
	s.logOp(creds, "get_deployments", namespace)

	clientset, err := s.newClientset(creds)
	if err != nil {
		return nil, err
	}

	list, err := clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing deployments in namespace %s: %w", namespace, err)
	}
	return deploymentSummaries(list.Items), nil
}

// DescribeDeployment implements Strategy.
func (s *TypedStrategy) DescribeDeployment(ctx context.Context, creds *credential.ClusterCredentials, namespace, deploymentName string) (*DeploymentDetail, error) {
	s.logOp(creds, "describe_deployment", namespace)

	clientset, err := s.newClientset(creds)
	if err != nil {
		return nil, err
	}

	deployment, err := clientset.AppsV1().Deployments(namespace).Get(ctx, deploymentName, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting deployment %s/%s: %w", namespace, deploymentName, err)
	}
	return newDeploymentDetail(deployment), nil
}

// ListServices implements Strategy.
func (s *TypedStrategy) ListServices(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]ServiceSummary, error) {
	s.logOp(creds, "get_services", namespace)

	clientset, err := s.newClientset(creds)
	if err != nil {
		return nil, err
	}

	list, err := clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing services in namespace %s: %w", namespace, err)
	}
	return serviceSummaries(list.Items), nil
}

// PodLogs implements Strategy.
func (s *TypedStrategy) PodLogs(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string, opts LogOptions) (string, error) {
	s.logOp(creds, "get_pod_logs", namespace)

	clientset, err := s.newClientset(creds)
	if err != nil {
		return "", err
	}

	logOpts := &corev1.PodLogOptions{
		Container: opts.Container,
	}
	if opts.TailLines > 0 {
		logOpts.TailLines = &opts.TailLines
	}

	req := clientset.CoreV1().Pods(namespace).GetLogs(podName, logOpts)
	stream, err := req.Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("getting logs for pod %s/%s: %w", namespace, podName, err)
	}
	defer stream.Close()

	logs, err := io.ReadAll(stream)
	if err != nil {
		return "", fmt.Errorf("reading logs for pod %s/%s: %w", namespace, podName, err)
	}
	return string(logs), nil
}
