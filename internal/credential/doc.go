// Package credential provisions and caches short-lived EKS cluster
// credentials.
//
// A ClusterCredentials value bundles everything an access strategy needs to
// reach one cluster: the API server endpoint, the base64-encoded certificate
// authority bundle, and a k8s-aws-v1 bearer token with its expiry.
//
// The Provisioner caches credentials per (clusterName, region) pair. Cached
// entries are reused until the earlier of the cache TTL and the token's own
// expiry minus a safety margin, so callers never receive a token about to
// lapse mid-request. Concurrent requests for the same pair are coalesced
// through singleflight into a single upstream fetch. The cache is bounded by
// MaxEntries with least-recently-used eviction, and a background sweep
// removes expired entries.
//
// Fresh credentials come from a Source. EKSSource is the production
// implementation: DescribeCluster for endpoint and CA, a presigned STS
// request for the token, with exactly one immediate retry when the upstream
// failure looks transient.
package credential
