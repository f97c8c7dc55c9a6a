package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/oshokin/molotov-go/internal/logger"
)

const (
	// metricsPath is where the metrics handler is mounted.
	metricsPath = "/metrics"
	// shutdownTimeout bounds the graceful shutdown of the metrics server.
	shutdownTimeout = 5 * time.Second
	// readHeaderTimeout protects the metrics server from slow clients.
	readHeaderTimeout = 10 * time.Second
)

// Serve exposes handler on listener under /metrics until ctx is done,
// then shuts the server down gracefully.
func Serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, handler)

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.InfoKV(ctx, "Starting metrics server", "address", listener.Addr().String(), "path", metricsPath)

		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info(ctx, "Metrics server stopped")

	return nil
}
