// Package kube executes Kubernetes data-plane capabilities against EKS
// clusters using provisioned credentials.
//
// Three interchangeable access strategies implement the same capability
// set: a typed client-go strategy, a kubectl subprocess strategy, and a
// raw HTTPS strategy that talks to the API server directly. All three
// decode into the shared summary types in this package, so a response
// looks the same no matter which backend produced it.
//
// The Executor chains the strategies in a fixed order and falls through
// on failure. A strategy that cannot serve a capability at all (for
// example kubectl when the binary is not installed) reports
// ErrNotSupported and is skipped without noise; real failures are
// remembered and the last one wins when every strategy fails.
//
// # Temporary files
//
// The kubectl strategy materializes a kubeconfig holding the bearer
// token for each invocation. The file lives in a private temp directory
// and is removed when the subprocess finishes, on every path.
package kube
