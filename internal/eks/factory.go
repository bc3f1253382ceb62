package eks

import (
	"context"
	"log/slog"
	"sync"
)

// ClientFactory hands out one Client per AWS region, creating them lazily.
// Loading AWS configuration parses shared config files, so clients are
// cached for the lifetime of the factory.
type ClientFactory struct {
	mu      sync.Mutex
	clients map[string]*Client
	build   func(ctx context.Context, region string) (*Client, error)
	logger  *slog.Logger
}

// FactoryOption configures a ClientFactory.
type FactoryOption func(*ClientFactory)

// WithFactoryLogger sets the logger passed to clients the factory creates.
func WithFactoryLogger(logger *slog.Logger) FactoryOption {
	return func(f *ClientFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithFactoryBuilder replaces the client constructor, letting tests hand out
// fakes without touching AWS configuration loading.
func WithFactoryBuilder(build func(ctx context.Context, region string) (*Client, error)) FactoryOption {
	return func(f *ClientFactory) {
		f.build = build
	}
}

// NewClientFactory builds an empty factory.
func NewClientFactory(opts ...FactoryOption) *ClientFactory {
	f := &ClientFactory{
		clients: make(map[string]*Client),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.build == nil {
		f.build = func(ctx context.Context, region string) (*Client, error) {
			return NewClient(ctx, region, WithClientLogger(f.logger))
		}
	}
	return f
}

// ForRegion returns the client for a region, creating it on first use.
func (f *ClientFactory) ForRegion(ctx context.Context, region string) (*Client, error) {
	if region == "" {
		return nil, ErrEmptyRegion
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[region]; ok {
		return client, nil
	}
	client, err := f.build(ctx, region)
	if err != nil {
		return nil, err
	}
	f.clients[region] = client
	return client, nil
}
