package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"perch-hq/perch/pkg/cli"
	"perch-hq/perch/pkg/config"
	"perch-hq/perch/pkg/limits/ratelimit"
	"perch-hq/perch/pkg/secrets"
	"perch-hq/perch/pkg/server"
	"perch-hq/perch/pkg/telemetry/logging"
	"perch-hq/perch/pkg/telemetry/metrics"
	"perch-hq/perch/pkg/telemetry/tracing"
	"perch-hq/perch/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the bridge server",
	Long: `Start the bridge server with the specified configuration.

The server listens on the configured address and forwards each request to
the upstream MCP server as a single JSON-RPC 2.0 call.

Examples:
  # Start with default config
  perch run

  # Start with custom config
  perch run --config /etc/perch/perch.yaml

  # Override listen address
  perch run --listen 0.0.0.0:8080

  # Validate config without starting server
  perch run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	} else if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	// Initialize logging based on config
	logger, err := logging.New(&cfg.Telemetry.Logging, os.Stdout)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger.Install()

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize tracing
	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()
	if tracer.Enabled() {
		fmt.Printf("✓ Tracing enabled (endpoint: %s)\n", cfg.Telemetry.Tracing.Endpoint)
	}

	// Metrics collector (records nothing when disabled)
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	// Secrets chain: file secrets take precedence, environment is the
	// fallback. Resolution happens per upstream call, never at startup.
	chain, err := buildSecretsChain(cfg)
	if err != nil {
		return cli.NewConfigError("secrets.file_dir", err.Error())
	}

	// Upstream client
	client := upstream.NewClient(upstream.Config{
		URL:                 cfg.Upstream.URL,
		Token:               cfg.Upstream.Token,
		Timeout:             cfg.Upstream.Timeout,
		MaxIdleConns:        cfg.Upstream.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Upstream.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Upstream.IdleConnTimeout,
	}, chain)
	fmt.Printf("✓ Upstream configured (%s)\n", cfg.Upstream.URL)

	// Rate limiter with idle-client sweeping on the memory store
	limiter, sweeper, err := buildLimiter(ctx, cfg, collector)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	if sweeper != nil {
		defer sweeper.Stop()
	}
	fmt.Printf("✓ Rate limiter ready (%d req / %s, %s store)\n",
		cfg.RateLimit.Limit, cfg.RateLimit.Window, cfg.RateLimit.Store)

	// Config hot reload for the safe subset (log level, rate limits)
	if cfg.Reload.Enabled {
		if watcher := startConfigWatcher(ctx, cfg, logger, limiter); watcher != nil {
			defer func() {
				if err := watcher.Stop(); err != nil {
					slog.Warn("config watcher stop failed", "error", err)
				}
			}()
			fmt.Printf("✓ Watching %s for changes\n", cfgFile)
		}
	}

	// Create HTTP server
	srv := server.NewServer(cfg, client, limiter, collector, tracer)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if !cfg.Telemetry.Metrics.Disabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, metricsPath(cfg))
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for shutdown signal or server error
	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}

		fmt.Println("✓ Server stopped")
		return nil
	}
}

// startConfigWatcher sets up the config file watcher and runs the blocking
// watch loop in the background so startup proceeds to the listen phase.
// Returns nil when the watcher could not be created; the server then runs
// without hot reload.
func startConfigWatcher(ctx context.Context, cfg *config.Config, logger *logging.Logger, limiter ratelimit.Limiter) *config.Watcher {
	watcher, err := config.NewWatcher(cfgFile, cfg.Reload.Debounce, logger.Slog())
	if err != nil {
		slog.Warn("config reload disabled", "error", err)
		return nil
	}

	go func() {
		if err := watcher.Watch(ctx, func() { reloadConfig(logger, limiter) }); err != nil {
			slog.Warn("config watcher stopped", "error", err)
		}
	}()

	return watcher
}

// buildSecretsChain assembles the credential resolution order from the
// config: file provider first when a directory is configured, then the
// environment provider.
func buildSecretsChain(cfg *config.Config) (*secrets.Chain, error) {
	providers := make([]secrets.Provider, 0, 2)

	if cfg.Secrets.FileDir != "" {
		fileProvider, err := secrets.NewFileProvider(cfg.Secrets.FileDir)
		if err != nil {
			return nil, err
		}
		providers = append(providers, fileProvider)
	}

	providers = append(providers, secrets.NewEnvProvider(cfg.Secrets.EnvPrefix))

	return secrets.NewChain(providers...), nil
}

// buildLimiter creates the configured limiter backend. The memory store
// comes with a cron sweeper that evicts idle clients and feeds the tracked
// client gauge; the redis store expires keys server-side and needs neither.
func buildLimiter(ctx context.Context, cfg *config.Config, collector *metrics.Collector) (ratelimit.Limiter, *ratelimit.Sweeper, error) {
	rlConfig := ratelimit.Config{
		Limit:      cfg.RateLimit.Limit,
		Window:     cfg.RateLimit.Window,
		MaxClients: cfg.RateLimit.MaxClients,
	}

	switch cfg.RateLimit.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.Redis.Address,
			Password: cfg.RateLimit.Redis.Password,
			DB:       cfg.RateLimit.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis store unreachable at %s: %w", cfg.RateLimit.Redis.Address, err)
		}
		return ratelimit.NewRedisLimiter(rdb, rlConfig), nil, nil

	case "", "memory":
		limiter := ratelimit.NewMemoryLimiter(rlConfig)
		sweeper := ratelimit.NewSweeper(limiter, cfg.RateLimit.SweepSchedule)
		sweeper.OnSweep(func(removed, tracked int) {
			collector.SetTrackedClients(tracked)
		})
		if err := sweeper.Start(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to start sweep scheduler: %w", err)
		}
		return limiter, sweeper, nil

	default:
		return nil, nil, fmt.Errorf("unsupported rate limit store: %s", cfg.RateLimit.Store)
	}
}

// reloadConfig re-reads the config file and applies the subset that is safe
// to change at runtime. Listen address, TLS, and upstream settings require
// a restart.
func reloadConfig(logger *logging.Logger, limiter ratelimit.Limiter) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		slog.Error("config reload failed, keeping previous configuration", "error", err)
		return
	}

	if err := logger.SetLevel(cfg.Telemetry.Logging.Level); err != nil {
		slog.Warn("reloaded log level rejected",
			"level", cfg.Telemetry.Logging.Level,
			"error", err,
		)
	}
	limiter.SetLimits(cfg.RateLimit.Limit, cfg.RateLimit.Window)

	slog.Info("configuration reloaded",
		"log_level", cfg.Telemetry.Logging.Level,
		"ratelimit_limit", cfg.RateLimit.Limit,
		"ratelimit_window", cfg.RateLimit.Window.String(),
	)
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Perch v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	slog.Debug("effective configuration",
		"listen_address", cfg.Server.ListenAddress,
		"tls_enabled", cfg.Server.TLS.Enabled,
		"upstream_url", cfg.Upstream.URL,
		"ratelimit_store", cfg.RateLimit.Store,
		"metrics_disabled", cfg.Telemetry.Metrics.Disabled,
		"tracing_enabled", cfg.Telemetry.Tracing.Enabled,
		"reload_enabled", cfg.Reload.Enabled,
	)
}

func metricsPath(cfg *config.Config) string {
	if cfg.Telemetry.Metrics.Path != "" {
		return cfg.Telemetry.Metrics.Path
	}
	return config.DefaultMetricsPath
}
