package credential

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/giantswarm/mcp-eks/internal/logging"
)

// ClusterCredentials is everything an access strategy needs to reach one
// EKS cluster: where it is, how to trust it, and how to authenticate.
type ClusterCredentials struct {
	ClusterName string
	Region      string

	// Endpoint is the HTTPS URL of the cluster's API server.
	Endpoint string

	// CertificateAuthority is the base64-encoded CA bundle from DescribeCluster.
	CertificateAuthority string

	// Token is the k8s-aws-v1 bearer token.
	Token string

	// ExpiresAt is when the token stops being valid.
	ExpiresAt time.Time
}

// DecodeCertificateAuthority returns the PEM bytes of the CA bundle.
func (c *ClusterCredentials) DecodeCertificateAuthority() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(c.CertificateAuthority)
	if err != nil {
		return nil, fmt.Errorf("decoding certificate authority for cluster %s: %w", c.ClusterName, err)
	}
	return data, nil
}

// Config holds configuration options for the Provisioner's cache.
type Config struct {
	// TTL caps how long credentials are reused regardless of token expiry.
	//
	// Default: 10 minutes.
	TTL time.Duration

	// SafetyMargin is subtracted from a token's expiry when deciding whether
	// cached credentials are still usable. Bearer tokens are valid for about
	// 14 minutes; the margin keeps a token from lapsing mid-request.
	//
	// Default: 1 minute.
	SafetyMargin time.Duration

	// MaxEntries is the maximum number of (clusterName, region) entries the
	// cache can hold. When exceeded, least recently accessed entries are
	// evicted.
	//
	// Default: 1000.
	MaxEntries int

	// CleanupInterval is how often the background cleanup runs to remove
	// expired entries.
	//
	// Default: 1 minute.
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TTL:             10 * time.Minute,
		SafetyMargin:    1 * time.Minute,
		MaxEntries:      1000,
		CleanupInterval: 1 * time.Minute,
	}
}

// cachedCredentials holds provisioned credentials along with cache metadata.
type cachedCredentials struct {
	creds *ClusterCredentials

	createdAt time.Time
	expiry    time.Time

	// lastAccessedNanos stores the last accessed time as Unix nanoseconds.
	// Using atomic for lock-free updates during concurrent reads.
	lastAccessedNanos atomic.Int64

	clusterName string
}

// isExpired returns true if the entry has passed its effective expiry.
func (c *cachedCredentials) isExpired(now time.Time) bool {
	return now.After(c.expiry)
}

// touch updates the last accessed time atomically.
func (c *cachedCredentials) touch(now time.Time) {
	c.lastAccessedNanos.Store(now.UnixNano())
}

// getLastAccessed returns the last accessed time.
func (c *cachedCredentials) getLastAccessed() time.Time {
	return time.Unix(0, c.lastAccessedNanos.Load())
}

// MetricsRecorder defines the interface for recording cache metrics.
// This allows decoupling from the concrete instrumentation implementation.
type MetricsRecorder interface {
	// RecordCacheHit records a cache hit event.
	RecordCacheHit(ctx context.Context, clusterName string)

	// RecordCacheMiss records a cache miss event.
	RecordCacheMiss(ctx context.Context, clusterName string)

	// RecordCacheEviction records a cache eviction event.
	RecordCacheEviction(ctx context.Context, reason string)

	// SetCacheSize sets the current cache size gauge.
	SetCacheSize(ctx context.Context, size int)
}

// noopMetricsRecorder is a no-op implementation of MetricsRecorder.
type noopMetricsRecorder struct{}

func (n *noopMetricsRecorder) RecordCacheHit(context.Context, string)      {}
func (n *noopMetricsRecorder) RecordCacheMiss(context.Context, string)     {}
func (n *noopMetricsRecorder) RecordCacheEviction(context.Context, string) {}
func (n *noopMetricsRecorder) SetCacheSize(context.Context, int)           {}

// Provisioner hands out cluster credentials, caching them per
// (clusterName, region) pair with TTL- and token-expiry-based eviction.
//
// Concurrent Provision calls for the same pair are coalesced into a single
// upstream fetch through singleflight; the rest wait and share the result.
type Provisioner struct {
	mu      sync.RWMutex
	entries map[string]*cachedCredentials

	source Source

	// Configuration
	config Config
	logger *slog.Logger

	// Singleflight to prevent thundering herd on credential fetches
	fetchGroup singleflight.Group

	// Metrics recorder
	metrics MetricsRecorder

	// Lifecycle
	stopCh chan struct{}
	wg     sync.WaitGroup
	closed bool

	// Clock abstraction for testing
	now func() time.Time
}

// Option is a functional option for configuring the Provisioner.
type Option func(*Provisioner)

// WithConfig sets the cache configuration.
func WithConfig(config Config) Option {
	return func(p *Provisioner) {
		p.config = config
	}
}

// WithLogger sets the logger for the provisioner.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provisioner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder for the cache.
func WithMetrics(metrics MetricsRecorder) Option {
	return func(p *Provisioner) {
		if metrics != nil {
			p.metrics = metrics
		}
	}
}

// withClock sets the clock function for testing.
func withClock(now func() time.Time) Option {
	return func(p *Provisioner) {
		p.now = now
	}
}

// NewProvisioner creates a Provisioner around the given credential source.
// A background goroutine sweeping expired entries starts immediately; call
// Close to stop it.
func NewProvisioner(source Source, opts ...Option) (*Provisioner, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	p := &Provisioner{
		entries: make(map[string]*cachedCredentials),
		source:  source,
		config:  DefaultConfig(),
		logger:  slog.Default(),
		metrics: &noopMetricsRecorder{},
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Validate configuration
	defaults := DefaultConfig()
	if p.config.TTL <= 0 {
		p.config.TTL = defaults.TTL
	}
	if p.config.SafetyMargin <= 0 {
		p.config.SafetyMargin = defaults.SafetyMargin
	}
	if p.config.MaxEntries <= 0 {
		p.config.MaxEntries = defaults.MaxEntries
	}
	if p.config.CleanupInterval <= 0 {
		p.config.CleanupInterval = defaults.CleanupInterval
	}

	// Start background cleanup
	p.wg.Add(1)
	go p.cleanupLoop()

	p.logger.Info("Credential provisioner initialized",
		"ttl", p.config.TTL,
		"safety_margin", p.config.SafetyMargin,
		"max_entries", p.config.MaxEntries,
		"cleanup_interval", p.config.CleanupInterval)

	return p, nil
}

// cacheKey generates a composite cache key from cluster name and region.
// Format: "${clusterName}|${region}"
func cacheKey(clusterName, region string) string {
	return fmt.Sprintf("%s|%s", clusterName, region)
}

// Provision returns credentials for the given cluster, from cache when a
// fresh entry exists and from the source otherwise. The returned credentials
// are guaranteed usable for at least the configured safety margin.
func (p *Provisioner) Provision(ctx context.Context, clusterName, region string) (*ClusterCredentials, error) {
	if clusterName == "" {
		return nil, ErrEmptyClusterName
	}
	if region == "" {
		return nil, ErrEmptyRegion
	}

	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return nil, ErrProvisionerClosed
	}

	// Check cache first (fast path)
	if cached := p.get(ctx, clusterName, region); cached != nil {
		return cached.creds, nil
	}

	// Use singleflight to prevent duplicate fetches
	key := cacheKey(clusterName, region)

	result, err, _ := p.fetchGroup.Do(key, func() (interface{}, error) {
		// Double-check cache inside singleflight
		if cached := p.get(ctx, clusterName, region); cached != nil {
			return cached, nil
		}

		creds, err := p.source.Fetch(ctx, clusterName, region)
		if err != nil {
			return nil, &ProvisionError{ClusterName: clusterName, Region: region, Err: err}
		}

		// Store in cache and return the entry directly (avoiding a redundant Get)
		entry := p.setAndReturn(ctx, creds)
		if entry == nil {
			return nil, ErrProvisionerClosed
		}
		return entry, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*cachedCredentials).creds, nil
}

// get retrieves a cached entry, returning nil when no usable entry exists.
// This method is thread-safe and records cache hit/miss metrics.
func (p *Provisioner) get(ctx context.Context, clusterName, region string) *cachedCredentials {
	key := cacheKey(clusterName, region)
	now := p.now()

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil
	}

	entry, ok := p.entries[key]
	if !ok {
		p.metrics.RecordCacheMiss(ctx, clusterName)
		return nil
	}

	if entry.isExpired(now) {
		p.metrics.RecordCacheMiss(ctx, clusterName)
		return nil
	}

	// Touch to update LRU ordering. This is safe under RLock because
	// lastAccessedNanos uses atomic operations for lock-free updates.
	entry.touch(now)
	p.metrics.RecordCacheHit(ctx, clusterName)

	return entry
}

// setAndReturn stores credentials in the cache and returns the cached entry.
func (p *Provisioner) setAndReturn(ctx context.Context, creds *ClusterCredentials) *cachedCredentials {
	key := cacheKey(creds.ClusterName, creds.Region)
	now := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	// Evict LRU entries if at capacity
	p.evictIfNeededLocked(ctx)

	entry := &cachedCredentials{
		creds:       creds,
		createdAt:   now,
		expiry:      cacheExpiry(now, creds.ExpiresAt, p.config),
		clusterName: creds.ClusterName,
	}
	entry.lastAccessedNanos.Store(now.UnixNano())
	p.entries[key] = entry

	p.metrics.SetCacheSize(ctx, len(p.entries))

	p.logger.Debug("Cached cluster credentials",
		logging.Cluster(creds.ClusterName),
		logging.Region(creds.Region),
		slog.Time("cache_expiry", entry.expiry),
		slog.String("token", logging.SanitizeToken(creds.Token)))

	return entry
}

// cacheExpiry bounds an entry's lifetime by both the cache TTL and the
// token's own expiry minus the safety margin, whichever comes first.
func cacheExpiry(now, tokenExpiry time.Time, config Config) time.Time {
	expiry := now.Add(config.TTL)
	if tokenExpiry.IsZero() {
		return expiry
	}
	if deadline := tokenExpiry.Add(-config.SafetyMargin); deadline.Before(expiry) {
		return deadline
	}
	return expiry
}

// Invalidate removes cached credentials for the given cluster and region.
// This is useful when credentials are rejected by the cluster.
func (p *Provisioner) Invalidate(ctx context.Context, clusterName, region string) {
	key := cacheKey(clusterName, region)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	if _, ok := p.entries[key]; ok {
		delete(p.entries, key)
		p.metrics.RecordCacheEviction(ctx, "manual")
		p.metrics.SetCacheSize(ctx, len(p.entries))

		p.logger.Debug("Invalidated cached credentials",
			logging.Cluster(clusterName),
			logging.Region(region))
	}
}

// InvalidateCluster removes cached credentials for the given cluster across
// all regions.
func (p *Provisioner) InvalidateCluster(ctx context.Context, clusterName string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	deleted := 0
	for key, entry := range p.entries {
		if entry.clusterName == clusterName {
			delete(p.entries, key)
			deleted++
		}
	}

	if deleted > 0 {
		p.metrics.SetCacheSize(ctx, len(p.entries))
		p.logger.Debug("Invalidated cached credentials for cluster",
			logging.Cluster(clusterName),
			"count", deleted)
	}
}

// Size returns the current number of entries in the cache.
func (p *Provisioner) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Close stops the background cleanup goroutine and clears the cache.
// After Close is called, Provision fails with ErrProvisionerClosed.
func (p *Provisioner) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	// Signal cleanup goroutine to stop
	close(p.stopCh)

	// Wait for cleanup goroutine to finish
	p.wg.Wait()

	// Clear all entries
	p.mu.Lock()
	p.entries = make(map[string]*cachedCredentials)
	p.mu.Unlock()

	p.logger.Info("Credential provisioner closed")
	return nil
}

// cleanupLoop periodically removes expired entries from the cache.
func (p *Provisioner) cleanupLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.cleanup()
		}
	}
}

// cleanup removes all expired entries from the cache.
func (p *Provisioner) cleanup() {
	now := p.now()
	ctx := context.Background()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	expiredCount := 0
	for key, entry := range p.entries {
		if entry.isExpired(now) {
			delete(p.entries, key)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		p.metrics.SetCacheSize(ctx, len(p.entries))
		for i := 0; i < expiredCount; i++ {
			p.metrics.RecordCacheEviction(ctx, "expired")
		}
		p.logger.Debug("Cleaned up expired credential entries",
			"expired_count", expiredCount,
			"remaining", len(p.entries))
	}
}

// evictIfNeededLocked evicts LRU entries if the cache is at capacity.
// Must be called with p.mu held.
func (p *Provisioner) evictIfNeededLocked(ctx context.Context) {
	if len(p.entries) < p.config.MaxEntries {
		return
	}

	// Find the least recently accessed entry
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range p.entries {
		lastAccessed := entry.getLastAccessed()
		if oldestKey == "" || lastAccessed.Before(oldestTime) {
			oldestKey = key
			oldestTime = lastAccessed
		}
	}

	if oldestKey != "" {
		delete(p.entries, oldestKey)
		p.metrics.RecordCacheEviction(ctx, "lru")
		p.logger.Debug("Evicted LRU credential entry",
			"key", oldestKey,
			"last_accessed", oldestTime)
	}
}

// Stats holds current cache statistics.
type Stats struct {
	// Size is the current number of entries in the cache.
	Size int

	// MaxEntries is the maximum capacity.
	MaxEntries int

	// TTL is the configured time-to-live.
	TTL time.Duration

	// OldestEntry is the age of the oldest entry (if any).
	OldestEntry time.Duration

	// NewestEntry is the age of the newest entry (if any).
	NewestEntry time.Duration
}

// Stats returns current cache statistics for monitoring.
func (p *Provisioner) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := Stats{
		Size:       len(p.entries),
		MaxEntries: p.config.MaxEntries,
		TTL:        p.config.TTL,
	}

	if len(p.entries) == 0 {
		return stats
	}

	now := p.now()
	var oldest, newest time.Time

	for _, entry := range p.entries {
		if oldest.IsZero() || entry.createdAt.Before(oldest) {
			oldest = entry.createdAt
		}
		if newest.IsZero() || entry.createdAt.After(newest) {
			newest = entry.createdAt
		}
	}

	if !oldest.IsZero() {
		stats.OldestEntry = now.Sub(oldest)
	}
	if !newest.IsZero() {
		stats.NewestEntry = now.Sub(newest)
	}

	return stats
}
