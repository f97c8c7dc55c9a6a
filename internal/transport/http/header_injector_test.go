package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewHeaderInjector tests the NewHeaderInjector function.
func TestNewHeaderInjector(t *testing.T) {
	t.Parallel()

	injector := NewHeaderInjector(http.DefaultTransport, nil)

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestHeaderInjector_RoundTrip tests which headers end up on the wire.
func TestHeaderInjector_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		defaults        http.Header
		requestHeaders  http.Header
		expectedHeaders map[string]string
	}{
		{
			name: "default user agent",
			expectedHeaders: map[string]string{
				"User-Agent": DefaultUserAgent(),
			},
		},
		{
			name:           "existing user agent is kept",
			requestHeaders: http.Header{"User-Agent": {"ExistingAgent/1.0"}},
			expectedHeaders: map[string]string{
				"User-Agent": "ExistingAgent/1.0",
			},
		},
		{
			name:           "empty user agent is replaced",
			requestHeaders: http.Header{"User-Agent": {""}},
			expectedHeaders: map[string]string{
				"User-Agent": DefaultUserAgent(),
			},
		},
		{
			name:     "configured defaults",
			defaults: http.Header{"User-Agent": {"Configured/2.0"}, "Accept": {"application/json"}},
			requestHeaders: http.Header{
				"Accept": {"text/plain"},
			},
			expectedHeaders: map[string]string{
				"User-Agent": "Configured/2.0",
				"Accept":     "text/plain",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for name, value := range tt.expectedHeaders {
					assert.Equal(t, value, r.Header.Get(name), name)
				}

				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			injector := NewHeaderInjector(http.DefaultTransport, tt.defaults)

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
			require.NoError(t, err)

			for name, values := range tt.requestHeaders {
				req.Header[name] = values
			}

			resp, err := injector.RoundTrip(req)
			require.NoError(t, err)

			defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			// Injected headers stay visible on the request for printing.
			for name, value := range tt.expectedHeaders {
				assert.Equal(t, value, req.Header.Get(name))
			}
		})
	}
}

// TestHeaderInjector_NilHeader tests that a request without a header map still gets defaults.
func TestHeaderInjector_NilHeader(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "molotov-go/"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	req.Header = nil

	resp, err := NewHeaderInjector(http.DefaultTransport, nil).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestHeaderInjector_NilRequest tests that a nil request is rejected.
func TestHeaderInjector_NilRequest(t *testing.T) {
	t.Parallel()

	resp, err := NewHeaderInjector(http.DefaultTransport, nil).RoundTrip(nil) //nolint:bodyclose // Nil on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}
