package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-eks/internal/broker"
	"github.com/giantswarm/mcp-eks/internal/credential"
	"github.com/giantswarm/mcp-eks/internal/eks"
	"github.com/giantswarm/mcp-eks/internal/instrumentation"
	"github.com/giantswarm/mcp-eks/internal/kube"
	"github.com/giantswarm/mcp-eks/internal/server"
	"github.com/giantswarm/mcp-eks/internal/tools/cluster"
	"github.com/giantswarm/mcp-eks/internal/tools/workload"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		defaultRegion string
		kubectlPath   string
		apiKey        string
		debugMode     bool

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		// Credential cache options
		cacheTTL        string
		cacheMaxEntries int
		cacheSweep      string

		// Metrics server options
		enableMetrics bool
		metricsAddr   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP EKS server",
		Long: `Start the MCP EKS server to broker read access to Amazon EKS clusters
and the Kubernetes workloads inside them via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

AWS credentials come from the standard credential chain (environment,
shared config, IAM role). Cluster credentials are minted on demand from
that identity and cached briefly; nothing is persisted.

HTTP transports additionally serve a REST query endpoint (POST /mcp/v1/query)
accepting {"operation": ..., "parameters": {...}}. When --api-key is set
(or MCP_EKS_API_KEY), query requests must present it in the X-API-Key header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				Transport:       transport,
				HTTPAddr:        httpAddr,
				SSEEndpoint:     sseEndpoint,
				MessageEndpoint: messageEndpoint,
				HTTPEndpoint:    httpEndpoint,
				DefaultRegion:   defaultRegion,
				KubectlPath:     kubectlPath,
				APIKey:          apiKey,
				DebugMode:       debugMode,
				CredentialCache: CredentialCacheConfig{
					TTL:           cacheTTL,
					MaxEntries:    cacheMaxEntries,
					SweepInterval: cacheSweep,
				},
				Metrics: MetricsServeConfig{
					Enabled: enableMetrics,
					Addr:    metricsAddr,
				},
			}

			// Env vars fill in what flags left empty.
			loadEnvIfEmpty(&config.APIKey, "MCP_EKS_API_KEY")
			loadEnvIfEmpty(&config.DefaultRegion, "AWS_REGION")
			loadEnvIfEmpty(&config.CredentialCache.TTL, "CREDENTIAL_CACHE_TTL")
			loadEnvIfEmpty(&config.CredentialCache.SweepInterval, "CREDENTIAL_CACHE_SWEEP_INTERVAL")
			if !cmd.Flags().Changed("credential-cache-max-entries") {
				if n, ok := parseIntEnv(os.Getenv("CREDENTIAL_CACHE_MAX_ENTRIES"), "CREDENTIAL_CACHE_MAX_ENTRIES"); ok {
					config.CredentialCache.MaxEntries = n
				}
			}
			if !cmd.Flags().Changed("enable-metrics-server") && os.Getenv("METRICS_SERVER_ENABLED") == envValueTrue {
				config.Metrics.Enabled = true
			}
			loadEnvIfEmpty(&config.Metrics.Addr, "METRICS_SERVER_ADDR")

			// Security warning: CLI secrets may be visible in process listings
			if cmd.Flags().Changed("api-key") {
				log.Printf("WARNING: API key provided via CLI flag - key may be visible in process listings (ps aux)")
				log.Printf("         For better security, use the MCP_EKS_API_KEY environment variable instead")
			}

			return runServe(config)
		},
	}

	// Broker flags
	cmd.Flags().StringVar(&defaultRegion, "region", broker.DefaultRegion, "Default AWS region for operations that do not name one (can also be set via AWS_REGION env var)")
	cmd.Flags().StringVar(&kubectlPath, "kubectl-path", "", "Path to the kubectl binary for the external-tool access strategy (default: resolve from PATH)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Static API key guarding the HTTP query endpoint (can also be set via MCP_EKS_API_KEY env var)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Credential cache flags
	cmd.Flags().StringVar(&cacheTTL, "credential-cache-ttl", "", "Credential cache TTL, e.g. 10m (default: provisioner default, can also be set via CREDENTIAL_CACHE_TTL env var)")
	cmd.Flags().IntVar(&cacheMaxEntries, "credential-cache-max-entries", 0, "Maximum credential cache entries, 0 keeps the default (can also be set via CREDENTIAL_CACHE_MAX_ENTRIES env var)")
	cmd.Flags().StringVar(&cacheSweep, "credential-cache-sweep-interval", "", "Credential cache sweep interval, e.g. 1m (can also be set via CREDENTIAL_CACHE_SWEEP_INTERVAL env var)")

	// Metrics server flags
	cmd.Flags().BoolVar(&enableMetrics, "enable-metrics-server", false, "Serve Prometheus metrics on a dedicated listener (can also be set via METRICS_SERVER_ENABLED env var)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (can also be set via METRICS_SERVER_ADDR env var)")

	return cmd
}

// newServeLogger builds the slog logger used by the broker stack. Logs go to
// stderr so stdio transport framing on stdout stays clean.
func newServeLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// credentialCacheConfig applies the serve overrides on top of the
// provisioner defaults. Values were validated by validateServeConfig.
func credentialCacheConfig(config CredentialCacheConfig) credential.Config {
	cacheConfig := credential.DefaultConfig()
	if ttl, ok := parseDurationEnv(config.TTL, "CREDENTIAL_CACHE_TTL"); ok {
		cacheConfig.TTL = ttl
	}
	if interval, ok := parseDurationEnv(config.SweepInterval, "CREDENTIAL_CACHE_SWEEP_INTERVAL"); ok {
		cacheConfig.CleanupInterval = interval
	}
	if config.MaxEntries > 0 {
		cacheConfig.MaxEntries = config.MaxEntries
	}
	return cacheConfig
}

// runServe contains the main server logic with support for multiple transports.
func runServe(config ServeConfig) error {
	if err := validateServeConfig(config); err != nil {
		return err
	}

	logger := newServeLogger(config.DebugMode)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			if config.Transport != transportStdio {
				log.Printf("Error during instrumentation shutdown: %v", shutdownErr)
			}
		}
	}()

	// EKS control-plane access: one lazily built client per region.
	clientFactory := eks.NewClientFactory(eks.WithFactoryLogger(logger))

	// Credential provisioner over the EKS source, with the bounded cache.
	provisionerOpts := []credential.Option{
		credential.WithConfig(credentialCacheConfig(config.CredentialCache)),
		credential.WithLogger(logger),
	}
	if instrumentationProvider.Enabled() {
		provisionerOpts = append(provisionerOpts, credential.WithMetrics(instrumentationProvider.Metrics()))
	}
	provisioner, err := credential.NewProvisioner(
		credential.NewEKSSource(clientFactory, logger), provisionerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create credential provisioner: %w", err)
	}

	// The fixed fallback chain: typed client-go, kubectl, raw HTTPS.
	executor := kube.NewExecutor(logger, kube.DefaultStrategies(config.KubectlPath, logger)...)

	operationBroker, err := broker.NewBroker(clientFactory, provisioner, executor,
		broker.WithDefaultRegion(config.DefaultRegion),
		broker.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create operation broker: %w", err)
	}

	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithBroker(operationBroker),
		server.WithProvisioner(provisioner),
		server.WithLogger(logger),
		server.WithServerName("mcp-eks"),
		server.WithTransport(config.Transport),
		server.WithDefaultRegion(config.DefaultRegion),
		server.WithAPIKey(config.APIKey),
		server.WithInstrumentationProvider(instrumentationProvider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			// Only log shutdown errors for non-stdio transports to avoid output interference
			if config.Transport != transportStdio {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("mcp-eks", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register all tool categories
	if err := cluster.RegisterClusterTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register cluster tools: %w", err)
	}

	if err := workload.RegisterWorkloadTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register workload tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		// Don't print startup message for stdio mode as it interferes with MCP communication
		return runStdioServer(mcpSrv)
	case transportSSE:
		fmt.Printf("Starting MCP EKS server with %s transport...\n", config.Transport)
		return runSSEServer(shutdownCtx, mcpSrv, config, serverContext, instrumentationProvider)
	case transportStreamableHTTP:
		fmt.Printf("Starting MCP EKS server with %s transport...\n", config.Transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, config, serverContext, instrumentationProvider)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
}

// startMetricsServer starts the dedicated metrics server on a separate port.
// This isolates Prometheus metrics from the main application traffic for security.
func startMetricsServer(config MetricsServeConfig, provider *instrumentation.Provider) (*server.MetricsServer, error) {
	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    config.Addr,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	// Start metrics server in background
	go func() {
		if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()

	slog.Info("metrics server started", "addr", config.Addr, "endpoint", "/metrics")
	return metricsServer, nil
}

// shutdownTimeout returns a context bounded by the graceful shutdown window.
func shutdownTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
}
