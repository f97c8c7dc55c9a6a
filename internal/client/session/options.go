package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oshokin/molotov-go/internal/metrics"
	"github.com/oshokin/molotov-go/internal/resolver"
	http_transport "github.com/oshokin/molotov-go/internal/transport/http"
)

// Options configures a session. Every field is optional.
type Options struct {
	// Verbosity controls printing: below 2 nothing is printed, from 2 every request and response.
	Verbosity int
	// Metrics receives request timings and status counters; nil disables metrics.
	Metrics metrics.Backend
	// ConnectionPoolLimit caps concurrent connections per host; zero means unbounded.
	ConnectionPoolLimit int
	// Hostname identifies this process in metrics labels; empty means os.Hostname.
	Hostname string
	// Console receives printed requests and responses; nil means standard output.
	Console http_transport.Console
	// Resolver performs the DNS override; nil means a caching NetResolver.
	Resolver resolver.Resolver
	// Transport dispatches requests; nil means a pooled transport dialing resolved addresses.
	Transport http.RoundTripper
	// MaxPeekSize bounds how much of a response body is printed; zero means unbounded.
	MaxPeekSize int64
	// DefaultHeaders are added to requests that do not set them.
	DefaultHeaders http.Header
	// ResponseHeaderTimeout bounds the wait for response headers of the default transport.
	ResponseHeaderTimeout time.Duration
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

// requestOptions holds the per-request settings collected from RequestOption values.
type requestOptions struct {
	// header holds the request headers.
	header http.Header
	// body is the request body as given by the caller.
	body any
	// err records an option that could not be applied.
	err error
}

// WithHeader adds a request header.
func WithHeader(name, value string) RequestOption {
	return func(o *requestOptions) {
		o.header.Add(name, value)
	}
}

// WithHeaders adds every header of h.
func WithHeaders(h http.Header) RequestOption {
	return func(o *requestOptions) {
		for name, values := range h {
			for _, value := range values {
				o.header.Add(name, value)
			}
		}
	}
}

// WithBody sets the request body: a string, a []byte, an io.Reader or an http_transport.Payload.
// Readers are sent as they are and closed by the transport when they implement io.Closer.
func WithBody(body any) RequestOption {
	return func(o *requestOptions) {
		o.body = body
	}
}

// WithJSON sets a JSON-encoded body with the matching content type.
func WithJSON(value any) RequestOption {
	return func(o *requestOptions) {
		data, err := json.Marshal(value)
		if err != nil {
			o.err = fmt.Errorf("failed to encode JSON body: %w", err)

			return
		}

		o.body = http_transport.NewPayload(data, "application/json")
	}
}

func newRequestOptions(opts []RequestOption) *requestOptions {
	o := &requestOptions{header: make(http.Header)}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
