package kube

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/logging"
)

// maxErrorBody caps how much of an API error response ends up in error
// messages and logs.
const maxErrorBody = 512

// DirectStrategy talks to the Kubernetes API server over plain HTTPS with
// the provisioned CA bundle and bearer token. It is the backend of last
// resort: no client-go machinery, no external binary, just REST paths.
type DirectStrategy struct {
	logger *slog.Logger
}

// NewDirectStrategy returns the raw HTTPS strategy.
func NewDirectStrategy(logger *slog.Logger) *DirectStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectStrategy{logger: logger}
}

// Name implements Strategy.
func (s *DirectStrategy) Name() string {
	return "direct-http"
}

func (s *DirectStrategy) httpClient(creds *credential.ClusterCredentials) (*http.Client, error) {
	caData, err := creds.DecodeCertificateAuthority()
	if err != nil {
		return nil, err
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caData) {
		return nil, fmt.Errorf("certificate authority for cluster %s contains no usable certificates", creds.ClusterName)
	}

	return &http.Client{
		Timeout: clientTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs:    pool,
				MinVersion: tls.VersionTLS12,
			},
		},
	}, nil
}

// get performs one authenticated GET against the API server and returns
// the response body.
func (s *DirectStrategy) get(ctx context.Context, creds *credential.ClusterCredentials, path, accept string) ([]byte, error) {
	client, err := s.httpClient(creds)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, creds.Endpoint+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	req.Header.Set("Accept", accept)

	s.logger.Debug("Kubernetes API request",
		logging.Cluster(creds.ClusterName),
		logging.Strategy(s.Name()),
		slog.String("path", path))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response for %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &apiStatusError{
			status: resp.StatusCode,
			path:   path,
			body:   snippet,
		}
	}
	return body, nil
}

// ListNamespaces implements Strategy.
func (s *DirectStrategy) ListNamespaces(ctx context.Context, creds *credential.ClusterCredentials) ([]NamespaceSummary, error) {
	body, err := s.get(ctx, creds, "/api/v1/namespaces", "application/json")
	if err != nil {
		return nil, err
	}

	var list corev1.NamespaceList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding namespace list: %w", err)
	}
	return namespaceSummaries(list.Items), nil
}

// ListPods implements Strategy.
func (s *DirectStrategy) ListPods(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]PodSummary, error) {
	path := fmt.Sprintf("/api/v1/namespaces/%s/pods", url.PathEscape(namespace))
	body, err := s.get(ctx, creds, path, "application/json")
	if err != nil {
		return nil, err
	}

	var list corev1.PodList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding pod list: %w", err)
	}
	return podSummaries(list.Items), nil
}

// DescribePod implements Strategy.
func (s *DirectStrategy) DescribePod(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string) (*PodDetail, error) {
	path := fmt.Sprintf("/api/v1/namespaces/%s/pods/%s", url.PathEscape(namespace), url.PathEscape(podName))
	body, err := s.get(ctx, creds, path, "application/json")
	if err != nil {
		return nil, err
	}

	var pod corev1.Pod
	if err := json.Unmarshal(body, &pod); err != nil {
		return nil, fmt.Errorf("decoding pod: %w", err)
	}
	return newPodDetail(&pod), nil
}

// ListDeployments implements Strategy.
func (s *DirectStrategy) ListDeployments(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]DeploymentSummary, error) {
	path := fmt.Sprintf("/apis/apps/v1/namespaces/%s/deployments", url.PathEscape(namespace))
	body, err := s.get(ctx, creds, path, "application/json")
	if err != nil {
		return nil, err
	}

	var list appsv1.DeploymentList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding deployment list: %w", err)
	}
	return deploymentSummaries(list.Items), nil
}

// DescribeDeployment implements Strategy.
func (s *DirectStrategy) DescribeDeployment(ctx context.Context, creds *credential.ClusterCredentials, namespace, deploymentName string) (*DeploymentDetail, error) {
	path := fmt.Sprintf("/apis/apps/v1/namespaces/%s/deployments/%s", url.PathEscape(namespace), url.PathEscape(deploymentName))
	body, err := s.get(ctx, creds, path, "application/json")
	if err != nil {
		return nil, err
	}

	var deployment appsv1.Deployment
	if err := json.Unmarshal(body, &deployment); err != nil {
		return nil, fmt.Errorf("decoding deployment: %w", err)
	}
	return newDeploymentDetail(&deployment), nil
}

// ListServices implements Strategy.
func (s *DirectStrategy) ListServices(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]ServiceSummary, error) {
	path := fmt.Sprintf("/api/v1/namespaces/%s/services", url.PathEscape(namespace))
	body, err := s.get(ctx, creds, path, "application/json")
	if err != nil {
		return nil, err
	}

	var list corev1.ServiceList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding service list: %w", err)
	}
	return serviceSummaries(list.Items), nil
}

// PodLogs implements Strategy. Logs are requested as text/plain and
// returned verbatim.
func (s *DirectStrategy) PodLogs(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string, opts LogOptions) (string, error) {
	path := fmt.Sprintf("/api/v1/namespaces/%s/pods/%s/log?tailLines=%d", url.PathEscape(namespace), url.PathEscape(podName), opts.TailLines)
	if opts.Container != "" {
		path += "&container=" + url.QueryEscape(opts.Container)
	}

	body, err := s.get(ctx, creds, path, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}
