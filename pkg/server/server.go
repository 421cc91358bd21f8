// Package server assembles the HTTP bridge server.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"perch-hq/perch/pkg/bridge/handlers"
	"perch-hq/perch/pkg/bridge/middleware"
	"perch-hq/perch/pkg/config"
	"perch-hq/perch/pkg/limits/ratelimit"
	"perch-hq/perch/pkg/telemetry/metrics"
	"perch-hq/perch/pkg/telemetry/tracing"
)

// ServiceName is the name the health endpoint reports.
const ServiceName = "perch"

// Server is the HTTP front of the bridge. It owns the route table, the
// middleware chain, TLS termination, and graceful shutdown.
type Server struct {
	config    *config.Config
	upstream  handlers.UpstreamClient
	limiter   ratelimit.Limiter
	collector *metrics.Collector
	tracer    *tracing.Tracer

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a bridge server. The limiter, collector, and tracer may
// each be nil; the corresponding middleware is then left out of the chain.
func NewServer(cfg *config.Config, client handlers.UpstreamClient, limiter ratelimit.Limiter, collector *metrics.Collector, tracer *tracing.Tracer) *Server {
	return &Server{
		config:       cfg,
		upstream:     client,
		limiter:      limiter,
		collector:    collector,
		tracer:       tracer,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	if s.config.Server.TLS.Enabled {
		tlsConfig, err := s.configureTLS()
		if err != nil {
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting bridge server",
			"address", s.config.Server.ListenAddress,
			"tls_enabled", s.config.Server.TLS.Enabled,
		)

		var err error
		if s.config.Server.TLS.Enabled {
			err = s.httpServer.ListenAndServeTLS(
				s.config.Server.TLS.CertFile,
				s.config.Server.TLS.KeyFile,
			)
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server. In-flight requests get up to
// the configured shutdown timeout to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("bridge server stopped")
	})

	return shutdownErr
}

// setupRoutes builds the route table and wraps it in the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(ServiceName))
	mux.Handle("/tools", handlers.NewToolsHandler(s.upstream, s.recorder()))
	mux.Handle("/search", handlers.NewSearchHandler(s.upstream, s.recorder()))

	if s.collector != nil && !s.config.Telemetry.Metrics.Disabled {
		mux.Handle(s.metricsPath(), s.collector.Handler())
	}

	// The "/" pattern catches every path the explicit routes did not.
	mux.Handle("/", handlers.NewNotFoundHandler())

	// Innermost first. The full order and its rationale are documented in
	// the middleware package.
	var handler http.Handler = mux
	if s.limiter != nil {
		handler = middleware.RateLimitMiddleware(s.limiter)(handler)
	}
	handler = middleware.MethodGateMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	if s.collector != nil {
		handler = middleware.MetricsMiddleware(s.collector)(handler)
	}
	if s.tracer != nil {
		handler = middleware.TracingMiddleware(s.tracer)(handler)
	}
	handler = middleware.HeadersMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler
}

// recorder adapts the collector to the handlers' recorder interface without
// producing a typed nil when metrics are absent.
func (s *Server) recorder() handlers.UpstreamRecorder {
	if s.collector == nil {
		return nil
	}
	return s.collector
}

func (s *Server) metricsPath() string {
	if path := s.config.Telemetry.Metrics.Path; path != "" {
		return path
	}
	return config.DefaultMetricsPath
}

// configureTLS builds the TLS settings from the server config.
func (s *Server) configureTLS() (*tls.Config, error) {
	tlsCfg := s.config.Server.TLS

	if tlsCfg.CertFile == "" {
		return nil, fmt.Errorf("TLS cert file not specified")
	}
	if tlsCfg.KeyFile == "" {
		return nil, fmt.Errorf("TLS key file not specified")
	}

	if _, err := os.Stat(tlsCfg.CertFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS cert file not found: %s", tlsCfg.CertFile)
	}
	if _, err := os.Stat(tlsCfg.KeyFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS key file not found: %s", tlsCfg.KeyFile)
	}

	var minVersion uint16 = tls.VersionTLS13
	if tlsCfg.MinVersion == "1.2" {
		minVersion = tls.VersionTLS12
	}

	return &tls.Config{MinVersion: minVersion}, nil
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler. It is intended for tests and
// for embedding the bridge in a larger server.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
