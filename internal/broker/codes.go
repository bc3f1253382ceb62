package broker

// Code identifies why a request failed. The set is closed; clients match
// on these values, so new failures must map onto an existing code.
type Code string

const (
	// CodeMissingParameter rejects a request missing a required parameter.
	CodeMissingParameter Code = "MISSING_PARAMETER"

	// CodeUnsupportedOperation rejects an operation outside the catalog,
	// or one no access strategy can serve for the target cluster.
	CodeUnsupportedOperation Code = "UNSUPPORTED_OPERATION"

	// CodeAuthError covers AWS and Kubernetes authentication or
	// authorization failures.
	CodeAuthError Code = "AUTH_ERROR"

	// CodeNotFound covers Kubernetes resources that do not exist, and a
	// cluster that cannot be found while provisioning credentials for it.
	// A miss from a direct EKS describe call stays CodeAWSError.
	CodeNotFound Code = "NOT_FOUND"

	// CodeAWSError is any other failure from the EKS control plane,
	// a describe of a nonexistent cluster or nodegroup included.
	CodeAWSError Code = "AWS_ERROR"

	// CodeUpstreamTimeout covers deadlines and broken connections toward
	// AWS or a cluster, including a transient retry that did not recover.
	CodeUpstreamTimeout Code = "UPSTREAM_TIMEOUT"

	// CodeKubernetesError is any other failure from a cluster.
	CodeKubernetesError Code = "KUBERNETES_ERROR"
)
