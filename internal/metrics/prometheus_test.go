package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, handler http.Handler) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	return recorder.Body.String()
}

// TestPrometheusBackend tests that timings and counters are exported.
func TestPrometheusBackend(t *testing.T) {
	t.Parallel()

	backend, err := NewPrometheusBackend()
	require.NoError(t, err)
	assert.Implements(t, (*Backend)(nil), backend)
	assert.NotNil(t, backend.Registry())

	backend.Timing(testLabel, 150*time.Millisecond)
	backend.Incr(testLabel + ".200")
	backend.Incr(testLabel + ".200")

	body := scrape(t, backend.Handler())

	assert.Contains(t, body, `molotov_request_duration_seconds_count{name="`+testLabel+`"} 1`)
	assert.Contains(t, body, `molotov_events_total{name="`+testLabel+`.200"} 2`)
	assert.Contains(t, body, "go_goroutines")
}

// TestServe tests that the metrics server answers and stops with its context.
func TestServe(t *testing.T) {
	t.Parallel()

	backend, err := NewPrometheusBackend()
	require.NoError(t, err)

	backend.Incr("served")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Serve(ctx, listener, backend.Handler())
	}()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet,
		"http://"+listener.Addr().String()+"/metrics", http.NoBody)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Contains(t, string(content), `molotov_events_total{name="served"} 1`)

	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}
