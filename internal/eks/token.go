package eks

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

const (
	// tokenPrefix is the scheme EKS API servers expect in front of the
	// base64-encoded presigned STS URL.
	tokenPrefix = "k8s-aws-v1."

	// clusterIDHeader binds the presigned GetCallerIdentity request to one
	// cluster. The EKS authenticator rejects tokens that lack it.
	clusterIDHeader = "x-k8s-aws-id"

	// presignExpiry is the lifetime requested for the presigned URL.
	presignExpiry = 15 * time.Minute

	// tokenExpiryMargin is subtracted from presignExpiry when advertising
	// the token's expiry, absorbing clock skew between broker and STS.
	tokenExpiryMargin = time.Minute
)

// CredentialPresigner is the subset of the STS presign client used to mint
// bearer tokens.
type CredentialPresigner interface {
	PresignGetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.PresignOptions),
	) (*v4.PresignedHTTPRequest, error)
}

// BearerToken is a short-lived token accepted by an EKS cluster's API server.
type BearerToken struct {
	Value     string
	ExpiresAt time.Time
}

// BearerToken mints a token for the named cluster by presigning an STS
// GetCallerIdentity request carrying the x-k8s-aws-id header. The token
// value is the presigned URL base64-encoded behind the k8s-aws-v1 prefix,
// the format kubectl's own credential plugin produces.
func (c *Client) BearerToken(ctx context.Context, clusterName string) (*BearerToken, error) {
	issued := c.now()

	req, err := c.presigner.PresignGetCallerIdentity(ctx, &sts.GetCallerIdentityInput{},
		func(po *sts.PresignOptions) {
			po.ClientOptions = append(po.ClientOptions, func(o *sts.Options) {
				o.APIOptions = append(o.APIOptions,
					smithyhttp.SetHeaderValue(clusterIDHeader, clusterName),
					smithyhttp.SetHeaderValue("X-Amz-Expires", strconv.Itoa(int(presignExpiry.Seconds()))),
				)
			})
		})
	if err != nil {
		return nil, fmt.Errorf("presigning STS request for cluster %s: %w", clusterName, err)
	}

	return &BearerToken{
		Value:     tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte(req.URL)),
		ExpiresAt: issued.Add(presignExpiry - tokenExpiryMargin),
	}, nil
}
