package credential

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/giantswarm/mcp-eks/internal/eks"
	"github.com/giantswarm/mcp-eks/internal/logging"
)

// Source fetches fresh credentials for one cluster. Implementations do not
// cache; the Provisioner layers caching on top.
type Source interface {
	Fetch(ctx context.Context, clusterName, region string) (*ClusterCredentials, error)
}

// EKSSource mints credentials from the EKS control plane: the cluster
// endpoint and CA bundle from DescribeCluster plus a presigned STS bearer
// token.
//
// A transient upstream failure (timeout, throttle, broken connection) gets
// exactly one immediate retry. Non-transient failures such as access denied
// or an unknown cluster fail straight away.
type EKSSource struct {
	clients *eks.ClientFactory
	logger  *slog.Logger
}

// NewEKSSource builds a source backed by the given regional client factory.
func NewEKSSource(clients *eks.ClientFactory, logger *slog.Logger) *EKSSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &EKSSource{clients: clients, logger: logger}
}

// Fetch implements Source.
func (s *EKSSource) Fetch(ctx context.Context, clusterName, region string) (*ClusterCredentials, error) {
	client, err := s.clients.ForRegion(ctx, region)
	if err != nil {
		return nil, err
	}

	operation := func() (*ClusterCredentials, error) {
		creds, err := s.fetchOnce(ctx, client, clusterName, region)
		if err != nil {
			if eks.IsTransient(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return creds, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(2),
		backoff.WithNotify(func(err error, _ time.Duration) {
			s.logger.Warn("Transient failure fetching credentials, retrying once",
				logging.Cluster(clusterName),
				logging.Region(region),
				logging.SanitizedErr(err))
		}),
	)
}

func (s *EKSSource) fetchOnce(ctx context.Context, client *eks.Client, clusterName, region string) (*ClusterCredentials, error) {
	endpoint, err := client.ClusterEndpoint(ctx, clusterName)
	if err != nil {
		return nil, err
	}

	token, err := client.BearerToken(ctx, clusterName)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched cluster credentials",
		logging.Cluster(clusterName),
		logging.Region(region),
		logging.Host(endpoint.Endpoint),
		slog.String("token", logging.SanitizeToken(token.Value)),
		slog.Time("expires_at", token.ExpiresAt))

	return &ClusterCredentials{
		ClusterName:          clusterName,
		Region:               region,
		Endpoint:             endpoint.Endpoint,
		CertificateAuthority: endpoint.CertificateAuthority,
		Token:                token.Value,
		ExpiresAt:            token.ExpiresAt,
	}, nil
}
