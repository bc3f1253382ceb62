package kube

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/instrumentation"
	"github.com/giantswarm/mcp-eks/internal/logging"
)

// Executor runs each capability through the strategy chain in order,
// returning the first success. Strategies that report ErrNotSupported are
// skipped silently; other failures are remembered and the last one is
// returned when the chain is exhausted. The executor never retries and
// never refreshes credentials.
type Executor struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewExecutor builds an executor over the given strategies, tried in the
// order supplied.
func NewExecutor(logger *slog.Logger, strategies ...Strategy) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		strategies: strategies,
		logger:     logger,
	}
}

// DefaultStrategies returns the standard chain: typed client-go first,
// kubectl second, raw HTTPS last. kubectlPath may be empty to resolve
// kubectl from PATH.
func DefaultStrategies(kubectlPath string, logger *slog.Logger) []Strategy {
	return []Strategy{
		NewTypedStrategy(logger),
		NewKubectlStrategy(kubectlPath, logger),
		NewDirectStrategy(logger),
	}
}

// execute walks the chain for one capability. The call closure binds the
// capability's arguments to a single strategy invocation. Each attempt runs
// under its own client span so traces show which strategies were tried.
func execute[T any](ctx context.Context, e *Executor, capability string, call func(context.Context, Strategy) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for _, strategy := range e.strategies {
		attemptCtx, span := instrumentation.StartStrategySpan(ctx, capability, strategy.Name())
		result, err := call(attemptCtx, strategy)
		if err == nil {
			instrumentation.SetSpanSuccess(span)
			span.End()
			e.logger.Debug("Capability served",
				logging.Operation(capability),
				logging.Strategy(strategy.Name()))
			return result, nil
		}

		if IsNotSupported(err) {
			instrumentation.AddSpanEvent(span, "strategy not supported")
			span.End()
			e.logger.Debug("Strategy cannot serve capability",
				logging.Operation(capability),
				logging.Strategy(strategy.Name()))
			continue
		}

		instrumentation.SetSpanError(span, err)
		span.End()
		lastErr = err
		e.logger.Warn("Strategy attempt failed",
			logging.Operation(capability),
			logging.Strategy(strategy.Name()),
			logging.SanitizedErr(err))
	}

	if lastErr == nil {
		return zero, fmt.Errorf("%w: no access strategy can serve %s", ErrNotSupported, capability)
	}
	return zero, lastErr
}

// ListNamespaces runs the list-namespaces capability through the chain.
func (e *Executor) ListNamespaces(ctx context.Context, creds *credential.ClusterCredentials) ([]NamespaceSummary, error) {
	return execute(ctx, e, "list_namespaces", func(ctx context.Context, s Strategy) ([]NamespaceSummary, error) {
		return s.ListNamespaces(ctx, creds)
	})
}

// ListPods runs the list-pods capability through the chain.
func (e *Executor) ListPods(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]PodSummary, error) {
	return execute(ctx, e, "list_pods", func(ctx context.Context, s Strategy) ([]PodSummary, error) {
		return s.ListPods(ctx, creds, namespace)
	})
}

// DescribePod runs the describe-pod capability through the chain.
func (e *Executor) DescribePod(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string) (*PodDetail, error) {
	return execute(ctx, e, "describe_pod", func(ctx context.Context, s Strategy) (*PodDetail, error) {
		return s.DescribePod(ctx, creds, namespace, podName)
	})
}

// ListDeployments runs the list-deployments capability through the chain.
func (e *Executor) ListDeployments(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]DeploymentSummary, error) {
	return execute(ctx, e, "get_deployments", func(ctx context.Context, s Strategy) ([]DeploymentSummary, error) {
		return s.ListDeployments(ctx, creds, namespace)
	})
}

// DescribeDeployment runs the describe-deployment capability through the chain.
func (e *Executor) DescribeDeployment(ctx context.Context, creds *credential.ClusterCredentials, namespace, deploymentName string) (*DeploymentDetail, error) {
	return execute(ctx, e, "describe_deployment", func(ctx context.Context, s Strategy) (*DeploymentDetail, error) {
		return s.DescribeDeployment(ctx, creds, namespace, deploymentName)
	})
}

// ListServices runs the list-services capability through the chain.
func (e *Executor) ListServices(ctx context.Context, creds *credential.ClusterCredentials, namespace string) ([]ServiceSummary, error) {
	return execute(ctx, e, "get_services", func(ctx context.Context, s Strategy) ([]ServiceSummary, error) {
		return s.ListServices(ctx, creds, namespace)
	})
}

// PodLogs runs the pod-logs capability through the chain.
func (e *Executor) PodLogs(ctx context.Context, creds *credential.ClusterCredentials, namespace, podName string, opts LogOptions) (string, error) {
	return execute(ctx, e, "get_pod_logs", func(ctx context.Context, s Strategy) (string, error) {
		return s.PodLogs(ctx, creds, namespace, podName, opts)
	})
}
