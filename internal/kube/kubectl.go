package kube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/logging"
)

// CommandRunner executes one external command and captures its output.
// The default implementation shells out through os/exec; tests substitute
// a fake to avoid spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, name string, args, env []string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args, env []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// KubectlStrategy serves capabilities by invoking the kubectl binary with
// a temporary kubeconfig. Arguments are always passed as an argv vector,
// never through a shell.
type KubectlStrategy struct {
	// binary is an explicit kubectl path. Empty means look it up in PATH
	// on every call.
	binary string

	runner CommandRunner
	logger *slog.Logger
}

// NewKubectlStrategy returns the kubectl subprocess strategy. binary may
// be empty to resolve kubectl from PATH.
func NewKubectlStrategy(binary string, logger *slog.Logger) *KubectlStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &KubectlStrategy{
		binary: binary,
		runner: execRunner{},
		logger: logger,
	}
}

// Name implements Strategy.
func (s *KubectlStrategy) Name() string {
	return "kubectl"
}

func (s *KubectlStrategy) resolveBinary() (string, error) {
	if s.binary != "" {
		return s.binary, nil
	}
	path, err := exec.LookPath("kubectl")
	if err != nil {
		return "", fmt.Errorf("%w: kubectl not found in PATH", ErrNotSupported)
	}
	return path, nil
}

// writeKubeconfig materializes a single-cluster kubeconfig holding the
// bearer token. The caller must invoke cleanup to remove it; the file is
// created 0600 inside a private temp directory.
func writeKubeconfig(creds *credential.ClusterCredentials) (string, func(), error) {
	caData, err := creds.DecodeCertificateAuthority()
	if err != nil {
		return "", nil, err
	}

	userName := "eks-user-" + creds.ClusterName
	contextName := "eks-" + creds.ClusterName

	config := clientcmdapi.NewConfig()
	config.Clusters[creds.ClusterName] = &clientcmdapi.Cluster{
		Server:                   creds.Endpoint,
		CertificateAuthorityData: caData,
	}
	config.AuthInfos[userName] = &clientcmdapi.AuthInfo{
		Token: creds.Token,
	}
	config.Contexts[contextName] = &clientcmdapi.Context{
		Cluster:  creds.ClusterName,
		AuthInfo: userName,
	}
	config.CurrentContext = contextName

	dir, err := os.MkdirTemp("", "kube-")
	if err != nil {
		return "", nil, fmt.Errorf("creating kubeconfig directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, "config")
	if err := clientcmd.WriteToFile(*config, path); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing kubeconfig: %w", err)
	}
	return path, cleanup, nil
}

// run executes one kubectl invocation against the cluster the credentials
// belong to and returns its stdout. The subprocess is killed once
// clientTimeout elapses; the kubeconfig is removed on every exit path.
func (s *KubectlStrategy) run(ctx context.Context, creds *credential.ClusterCredentials, args ...string) ([]byte, error) {
	binary, err := s.resolveBinary()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, clientTimeout)
	defer cancel()

	kubeconfig, cleanup, err := writeKubeconfig(creds)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	env := append(os.Environ(), "KUBECONFIG="+kubeconfig)

	s.logger.Debug("Running kubectl",
		logging.Cluster(creds.ClusterName),
		slog.String("args", strings.Join(args, " ")))

	stdout, stderr, err := s.runner.Run(ctx, binary, args, env)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("kubectl %s: %w", args[0], ctxErr)
		}
		return nil, &kubectlError{
			stderr: strings.TrimSpace(string(stderr)),
			err:    err,
		}
	}
	return stdout, nil
}

// ListNamespaces implements Strategy.
func (s *KubectlStrategy) ListNamespaces(ctx context.Context, creds *credential.ClusterCredentials) ([]NamespaceSummary, error) {
	out, err := s.run(ctx, creds, "get", "namespaces", "-o", "json")
	if err != nil {
		return nil, err
	}

	var list corev1.NamespaceList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("decoding kubectl namespace list: %w", err)
	}
	return namespaceSummaries(list.Items), nil
}

// ListPods implements Strategy.
func (s *KubectlStrategy) ListPods(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]PodSummary, error) {
	out, err := s.run(ctx, creds, "get", "pods", "-n", namespace, "-o", "json")
	if err != nil {
		return nil, err
	}

	var list corev1.PodList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("decoding kubectl pod list: %w", err)
	}
	return podSummaries(list.Items), nil
}

// DescribePod implements Strategy.
func (s *KubectlStrategy) DescribePod(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string) (*PodDetail, error) {
	out, err := s.run(ctx, creds, "get", "pod", podName, "-n", namespace, "-o", "json")
	if err != nil {
		return nil, err
	}

	var pod corev1.Pod
	if err := json.Unmarshal(out, &pod); err != nil {
		return nil, fmt.Errorf("decoding kubectl pod: %w", err)
	}
	return newPodDetail(&pod), nil
}

// ListDeployments implements Strategy.
func (s *KubectlStrategy) ListDeployments(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]DeploymentSummary, error) {
	out, err := s.run(ctx, creds, "get", "deployments", "-n", namespace, "-o", "json")
	if err != nil {
		return nil, err
	}

	var list appsv1.DeploymentList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("decoding kubectl deployment list: %w", err)
	}
	return deploymentSummaries(list.Items), nil
}

// DescribeDeployment implements Strategy.
func (s *KubectlStrategy) DescribeDeployment(ctx context.Context, creds *credential.ClusterCredentials, namespace, deploymentName string) (*DeploymentDetail, error) {
	out, err := s.run(ctx, creds, "get", "deployment", deploymentName, "-n", namespace, "-o", "json")
	if err != nil {
		return nil, err
	}

	var deployment appsv1.Deployment
	if err := json.Unmarshal(out, &deployment); err != nil {
		return nil, fmt.Errorf("decoding kubectl deployment: %w", err)
	}
	return newDeploymentDetail(&deployment), nil
}

// ListServices implements Strategy.
func (s *KubectlStrategy) ListServices(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]ServiceSummary, error) {
	out, err := s.run(ctx, creds, "get", "services", "-n", namespace, "-o", "json")
	if err != nil {
		return nil, err
	}

	var list corev1.ServiceList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("decoding kubectl service list: %w", err)
	}
	return serviceSummaries(list.Items), nil
}

// PodLogs implements Strategy. Log output is returned verbatim, not as JSON.
func (s *KubectlStrategy) PodLogs(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string, opts LogOptions) (string, error) {
	args := []string{"logs", podName, "-n", namespace}
	if opts.Container != "" {
		args = append(args, "-c", opts.Container)
	}
	args = append(args, "--tail="+strconv.FormatInt(opts.TailLines, 10))

	out, err := s.run(ctx, creds, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
