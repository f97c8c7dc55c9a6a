package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/oshokin/molotov-go/internal/client/session"
	"github.com/oshokin/molotov-go/internal/config"
	"github.com/oshokin/molotov-go/internal/logger"
	"github.com/oshokin/molotov-go/internal/metrics"
	"github.com/oshokin/molotov-go/internal/resolver"
)

// ErrNoURLs indicates a run without targets.
var ErrNoURLs = errors.New("at least one URL is required")

// ExecuteRootCommand is the entry point for the application.
// It builds the instrumented session, starts the metrics endpoint if
// configured, sends the planned requests and prints a summary.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, plan *RequestPlan) {
	stats, err := Run(ctx, cfg, plan)

	// Ensure statistics are printed even when the run was interrupted.
	PrintSummary(ctx, stats)

	if err != nil {
		logger.Fatalf(ctx, "Failed to run: %v", err)
	}
}

// Run sends the planned requests with a session built from cfg.
func Run(ctx context.Context, cfg *config.Config, plan *RequestPlan) (*Statistics, error) {
	if len(plan.URLs) == 0 {
		return nil, ErrNoURLs
	}

	var backend *metrics.PrometheusBackend

	if cfg.MetricsEnabled {
		var err error

		backend, err = metrics.NewPrometheusBackend()
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics backend: %w", err)
		}
	}

	s, err := NewSession(cfg, backend)
	if err != nil {
		return nil, err
	}

	defer s.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var serverWait sync.WaitGroup

	if backend != nil && cfg.MetricsListen != "" {
		listener, listenErr := net.Listen("tcp", cfg.MetricsListen)
		if listenErr != nil {
			return nil, fmt.Errorf("failed to listen on %s: %w", cfg.MetricsListen, listenErr)
		}

		serverWait.Add(1)

		go func() {
			defer serverWait.Done()

			if serveErr := metrics.Serve(runCtx, listener, backend.Handler()); serveErr != nil {
				logger.Errorf(ctx, "Metrics server failed: %v", serveErr)
			}
		}()
	}

	showProgress := !cfg.PrintsRequests() && logger.Level() <= zap.InfoLevel

	stats := NewRunner(s, showProgress).Run(runCtx, plan)

	cancel()
	serverWait.Wait()

	return stats, nil
}

// NewSession builds the instrumented session described by cfg.
// A nil backend disables metrics.
func NewSession(cfg *config.Config, backend *metrics.PrometheusBackend) (session.Session, error) {
	res, err := resolver.NewNetResolver(resolver.Config{
		CustomDNSServer: cfg.DNSServer,
		Network:         cfg.DNSNetwork,
		StaticHosts:     cfg.StaticHosts,
		CacheSize:       cfg.DNSCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	opts := session.Options{
		Verbosity:             cfg.Verbosity,
		ConnectionPoolLimit:   cfg.ConnectionPoolLimit,
		Hostname:              cfg.Hostname,
		Resolver:              res,
		MaxPeekSize:           cfg.ParsedMaxPeekSize,
		DefaultHeaders:        cfg.ParsedDefaultHeaders,
		ResponseHeaderTimeout: cfg.ParsedRequestTimeout,
	}

	// A typed nil would make the session believe metrics are on.
	if backend != nil {
		opts.Metrics = backend
	}

	s, err := session.NewSession(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}
