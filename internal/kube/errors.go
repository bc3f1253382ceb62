package kube

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	k8serrors "k8s.io/apimachinery/pkg/api/errors"
)

// ErrNotSupported marks a capability a strategy cannot serve at all, as
// opposed to one it tried and failed. The Executor skips strategies that
// return it and never surfaces it as a request failure on its own.
var ErrNotSupported = errors.New("capability not supported by this strategy")

// apiStatusError is a non-2xx response from the Kubernetes API server
// seen by the direct HTTP strategy.
type apiStatusError struct {
	status int
	path   string
	body   string
}

func (e *apiStatusError) Error() string {
	if e.body != "" {
		return fmt.Sprintf("kubernetes API returned %d for %s: %s", e.status, e.path, e.body)
	}
	return fmt.Sprintf("kubernetes API returned %d for %s", e.status, e.path)
}

// kubectlError is a failed kubectl invocation with its captured stderr.
type kubectlError struct {
	stderr string
	err    error
}

func (e *kubectlError) Error() string {
	if e.stderr != "" {
		return fmt.Sprintf("kubectl: %s", e.stderr)
	}
	return fmt.Sprintf("kubectl: %v", e.err)
}

func (e *kubectlError) Unwrap() error {
	return e.err
}

// IsNotSupported reports whether err marks a capability the strategy
// cannot serve.
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}

// IsUnauthorized reports whether err is the cluster rejecting the caller's
// credentials or permissions, across all three strategies.
func IsUnauthorized(err error) bool {
	if k8serrors.IsUnauthorized(err) || k8serrors.IsForbidden(err) {
		return true
	}
	var statusErr *apiStatusError
	if errors.As(err, &statusErr) {
		return statusErr.status == http.StatusUnauthorized || statusErr.status == http.StatusForbidden
	}
	var cmdErr *kubectlError
	if errors.As(err, &cmdErr) {
		return strings.Contains(cmdErr.stderr, "Unauthorized") ||
			strings.Contains(cmdErr.stderr, "Forbidden") ||
			strings.Contains(cmdErr.stderr, "forbidden")
	}
	return false
}

// IsNotFound reports whether err is the cluster saying the requested
// resource does not exist.
func IsNotFound(err error) bool {
	if k8serrors.IsNotFound(err) {
		return true
	}
	var statusErr *apiStatusError
	if errors.As(err, &statusErr) {
		return statusErr.status == http.StatusNotFound
	}
	var cmdErr *kubectlError
	if errors.As(err, &cmdErr) {
		return strings.Contains(cmdErr.stderr, "NotFound") ||
			strings.Contains(cmdErr.stderr, "not found")
	}
	return false
}

// IsTimeout reports whether err looks like the cluster being unreachable
// or too slow: deadlines, broken connections, TLS handshake failures.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	if k8serrors.IsTimeout(err) || k8serrors.IsServerTimeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "TLS handshake timeout")
}
