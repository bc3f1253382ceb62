// Package eks wraps the AWS EKS control plane for the broker.
//
// It provides a regional Client exposing the control-plane side of the
// operation catalog (cluster and nodegroup listing and description) plus the
// two primitives credential provisioning is built from:
//
//   - ClusterEndpoint: the API server URL and certificate authority bundle
//     from DescribeCluster.
//   - BearerToken: a short-lived token minted by presigning an STS
//     GetCallerIdentity request bound to one cluster through the
//     x-k8s-aws-id header.
//
// The Client talks to AWS through the narrow ControlPlaneAPI and
// CredentialPresigner interfaces rather than the concrete SDK clients, so
// tests can substitute canned responses without any AWS configuration.
//
// # Listing semantics
//
// List operations paginate fully and return summaries sorted by name. When
// the per-item describe call fails for a single cluster or nodegroup, the
// item is kept with UNKNOWN placeholder fields instead of failing the whole
// listing; only the initial list call can fail the operation.
//
// # Regions
//
// A Client is bound to one region at construction. ClientFactory hands out
// one lazily created Client per region for callers that serve requests
// across regions.
package eks
