package credential

import (
	"errors"
	"fmt"
)

// userFacingCredentialError is the generic message returned for any
// provisioning failure. Specific failures stay in logs; responses must not
// reveal whether a cluster exists, is unreachable, or denied access.
const userFacingCredentialError = "cluster access denied or unavailable"

var (
	// ErrProvisionerClosed indicates the provisioner was closed and can no
	// longer hand out credentials.
	ErrProvisionerClosed = errors.New("credential provisioner is closed")

	// ErrEmptyClusterName indicates provisioning was requested without a
	// cluster name.
	ErrEmptyClusterName = errors.New("cluster name must not be empty")

	// ErrEmptyRegion indicates provisioning was requested without a region.
	ErrEmptyRegion = errors.New("region must not be empty")

	// ErrNilSource indicates the provisioner was constructed without a
	// credential source.
	ErrNilSource = errors.New("credential source must not be nil")
)

// ProvisionError wraps a credential fetch failure with the cluster identity
// it was fetched for. The wrapped error keeps the AWS error chain intact for
// classification.
type ProvisionError struct {
	ClusterName string
	Region      string
	Err         error
}

// Error implements the error interface.
func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning credentials for cluster %s in %s: %v", e.ClusterName, e.Region, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// UserFacingError returns a message safe to return to clients.
func (e *ProvisionError) UserFacingError() string {
	return userFacingCredentialError
}
