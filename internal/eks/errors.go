package eks

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/smithy-go"
)

var (
	// ErrEmptyRegion indicates a client or lookup was requested without a region.
	ErrEmptyRegion = errors.New("region must not be empty")

	// ErrIncompleteCluster indicates DescribeCluster succeeded but the
	// response lacks the endpoint or certificate authority, which happens
	// while a cluster is still being created.
	ErrIncompleteCluster = errors.New("cluster response missing endpoint or certificate authority")
)

// IsNotFound reports whether err is the EKS control plane saying the cluster
// or nodegroup does not exist.
func IsNotFound(err error) bool {
	var notFound *types.ResourceNotFoundException
	return errors.As(err, &notFound)
}

// IsAccessDenied reports whether err represents an AWS authentication or
// authorization failure.
func IsAccessDenied(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation",
		"ExpiredToken", "ExpiredTokenException",
		"InvalidClientTokenId", "UnrecognizedClientException":
		return true
	}
	return false
}

// IsTransient reports whether err looks like a temporary upstream failure
// worth a single retry: timeouts, throttling, and broken connections.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "RequestTimeout", "Throttling", "ThrottlingException",
			"TooManyRequestsException", "ServiceUnavailable",
			"ServiceUnavailableException", "InternalServerException":
			return true
		}
	}
	return strings.Contains(err.Error(), "connection reset by peer")
}
