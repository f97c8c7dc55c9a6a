package session

//go:generate $MOCKGEN -source=session.go -destination=mocks/session_mock.go

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/oshokin/molotov-go/internal/logger"
	"github.com/oshokin/molotov-go/internal/metrics"
	"github.com/oshokin/molotov-go/internal/resolver"
	http_transport "github.com/oshokin/molotov-go/internal/transport/http"
	"github.com/oshokin/molotov-go/internal/utils"
)

// Session sends instrumented HTTP requests.
type Session interface {
	// Request resolves, dispatches and optionally prints one request.
	// The returned response body is intact and must be closed by the caller.
	Request(ctx context.Context, method, rawURL string, opts ...RequestOption) (*http.Response, error)
	// Close releases idle pooled connections.
	Close()
}

// SessionImpl implements the Session interface.
// It is safe for concurrent use; requests share one connection pool.
type SessionImpl struct {
	// transport is the decorated round tripper every request goes through.
	transport http.RoundTripper
	// pool is the connection pool owned by the session, nil when the caller supplied a transport.
	pool *http.Transport
	// resolver performs the DNS override.
	resolver resolver.Resolver
	// printer dumps requests and responses.
	printer *http_transport.Printer
	// metrics receives timings and counters, nil when disabled.
	metrics metrics.Backend
	// hostname identifies this process in metrics labels.
	hostname string
}

// defaultDNSCacheSize is the cache size of the resolver created when none is given.
const defaultDNSCacheSize = 1024

// NewSession creates and returns a new instance of SessionImpl.
func NewSession(opts Options) (Session, error) {
	res := opts.Resolver
	if res == nil {
		netResolver, err := resolver.NewNetResolver(resolver.Config{CacheSize: defaultDNSCacheSize})
		if err != nil {
			return nil, fmt.Errorf("failed to create resolver: %w", err)
		}

		res = netResolver
	}

	console := opts.Console
	if console == nil {
		console = http_transport.NewConsole(os.Stdout)
	}

	hostname := opts.Hostname
	if hostname == "" {
		hostname = utils.NewOSHostnameProvider().GetHostname()
	}

	s := &SessionImpl{
		resolver: res,
		printer:  http_transport.NewPrinter(console, opts.Verbosity, opts.MaxPeekSize),
		metrics:  opts.Metrics,
		hostname: hostname,
	}

	base := opts.Transport
	if base == nil {
		dialer := http_transport.NewDialer()
		s.pool = http_transport.NewTransport(
			opts.ConnectionPoolLimit,
			opts.ResponseHeaderTimeout,
			http_transport.DialFunc(resolver.DialContext(dialer.DialContext)))
		base = s.pool
	}

	s.transport = http_transport.NewHeaderInjector(
		http_transport.NewLogTransport(base),
		opts.DefaultHeaders)

	return s, nil
}

// Request runs the request pipeline: resolve, dispatch, print, return.
// Resolution failures wrap ErrResolutionFailed and nothing is sent;
// transport failures wrap ErrDispatchFailed. Printing never fails a request.
// A closable body that never reaches the transport is closed before returning.
func (s *SessionImpl) Request(
	ctx context.Context,
	method, rawURL string,
	opts ...RequestOption,
) (*http.Response, error) {
	options := newRequestOptions(opts)

	// Once dispatched, the transport owns the body and closes it.
	dispatched := false

	defer func() {
		if !dispatched {
			closeBody(options.body)
		}
	}()

	if options.err != nil {
		return nil, options.err
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	body, err := newBodyReader(options.body)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithKV(ctx, "request_id", uuid.NewString())

	resolved, err := resolver.ResolveTarget(ctx, s.resolver, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResolutionFailed, target.Host, err)
	}

	logger.DebugKV(ctx, "Target resolved", "host", target.Host, "address", resolved.Host)

	req, err := http.NewRequestWithContext(
		resolver.WithTargetAddress(ctx, resolver.DialAddress(resolved)),
		method,
		target.String(),
		body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, values := range options.header {
		req.Header[name] = append([]string(nil), values...)
	}

	if payload, ok := options.body.(http_transport.Payload); ok {
		if contentType := payload.ContentType(); contentType != "" && req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", contentType)
		}
	}

	dispatched = true

	resp, err := s.dispatch(req, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrDispatchFailed, method, target.Redacted(), err)
	}

	s.printer.PrintRequest(ctx, req, options.body)
	s.printer.PrintResponse(ctx, resp)

	return resp, nil
}

// Close releases idle connections of the session's own pool.
func (s *SessionImpl) Close() {
	if s.pool != nil {
		s.pool.CloseIdleConnections()
	}
}

// dispatch sends req, under metrics when a backend is configured.
// The label is computed from the URL as the caller wrote it, before DNS override.
func (s *SessionImpl) dispatch(req *http.Request, target *url.URL) (*http.Response, error) {
	roundTrip := func() (*http.Response, error) {
		return s.transport.RoundTrip(req)
	}

	if s.metrics == nil {
		return roundTrip()
	}

	return metrics.WithMetrics(s.metrics, metrics.Label(s.hostname, req.Method, target), roundTrip)
}

// closeBody closes a body value that was never handed to the transport.
func closeBody(body any) {
	if payload, ok := body.(http_transport.Payload); ok {
		body = payload.Value()
	}

	if closer, ok := body.(io.Closer); ok {
		_ = closer.Close()
	}
}

// newBodyReader converts a request body value into the reader sent on the wire.
func newBodyReader(body any) (io.Reader, error) {
	if payload, ok := body.(http_transport.Payload); ok {
		body = payload.Value()
	}

	switch value := body.(type) {
	case nil:
		return nil, nil //nolint:nilnil // A nil reader means no body.
	case string:
		return strings.NewReader(value), nil
	case []byte:
		return bytes.NewReader(value), nil
	case io.Reader:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedBody, body)
	}
}
