package broker

import (
	"errors"

	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/eks"
	"github.com/giantswarm/mcp-eks/internal/kube"
)

var (
	// ErrNilClientFactory indicates NewBroker was called without an EKS
	// client factory.
	ErrNilClientFactory = errors.New("eks client factory must not be nil")

	// ErrNilProvisioner indicates NewBroker was called without a
	// credential provisioner.
	ErrNilProvisioner = errors.New("credential provisioner must not be nil")

	// ErrNilExecutor indicates NewBroker was called without a strategy
	// executor.
	ErrNilExecutor = errors.New("kubernetes executor must not be nil")
)

// controlPlaneFailure maps an EKS API failure onto the taxonomy. Auth
// failures get their own code; everything else, a missing cluster or
// nodegroup included, is the generic AWS error of a direct control-plane
// call. NOT_FOUND is reserved for the credential path, where a miss means
// the cluster itself cannot be reached.
func controlPlaneFailure(err error) *Envelope {
	if eks.IsAccessDenied(err) {
		return Failure(CodeAuthError, err.Error())
	}
	return Failure(CodeAWSError, err.Error())
}

// provisionFailure maps a credential provisioning failure onto the
// taxonomy. The raw AWS error chain stays in the logs; envelopes carry
// the sanitized message except for misses, which name the cluster.
func provisionFailure(err error) *Envelope {
	var provisionErr *credential.ProvisionError
	if !errors.As(err, &provisionErr) {
		return Failure(CodeAWSError, err.Error())
	}

	switch {
	case eks.IsNotFound(err):
		return Failuref(CodeNotFound, "cluster %q not found in region %s",
			provisionErr.ClusterName, provisionErr.Region)
	case eks.IsAccessDenied(err):
		return Failure(CodeAuthError, provisionErr.UserFacingError())
	case eks.IsTransient(err):
		return Failuref(CodeUpstreamTimeout, "timed out provisioning credentials for cluster %q in region %s",
			provisionErr.ClusterName, provisionErr.Region)
	default:
		return Failure(CodeAWSError, provisionErr.UserFacingError())
	}
}

// dataPlaneFailure maps a strategy chain failure onto the taxonomy. An
// exhausted chain where no strategy could serve at all becomes
// UNSUPPORTED_OPERATION; the internal skip marker itself never reaches
// an envelope.
func dataPlaneFailure(operation string, err error) *Envelope {
	switch {
	case kube.IsNotSupported(err):
		return Failuref(CodeUnsupportedOperation, "no access strategy can serve %s on this cluster", operation)
	case kube.IsUnauthorized(err):
		return Failure(CodeAuthError, err.Error())
	case kube.IsNotFound(err):
		return Failure(CodeNotFound, err.Error())
	case kube.IsTimeout(err):
		return Failure(CodeUpstreamTimeout, err.Error())
	default:
		return Failure(CodeKubernetesError, err.Error())
	}
}
