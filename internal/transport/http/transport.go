package http

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	// dialTimeout bounds TCP connection establishment.
	dialTimeout = 30 * time.Second
	// keepAlive is the TCP keep-alive period of pooled connections.
	keepAlive = 30 * time.Second
)

// DialFunc matches net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// NewDialer returns the dialer used by pooled transports.
func NewDialer() *net.Dialer {
	return &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: keepAlive,
	}
}

// NewTransport returns the connection pool shared by every request of a session.
//
// poolLimit caps concurrent connections per host; zero or less means unbounded.
// responseHeaderTimeout of zero means no timeout. dial replaces the default
// dialer when not nil. Proxies are not used, because the dial address is
// decided by DNS override rather than by the proxy settings.
func NewTransport(poolLimit int, responseHeaderTimeout time.Duration, dial DialFunc) *http.Transport {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if ok {
		transport = transport.Clone()
	} else {
		transport = &http.Transport{}
	}

	transport.Proxy = nil
	transport.ResponseHeaderTimeout = responseHeaderTimeout

	if poolLimit > 0 {
		transport.MaxConnsPerHost = poolLimit
		transport.MaxIdleConnsPerHost = poolLimit
	}

	if dial != nil {
		transport.DialContext = dial
	} else {
		transport.DialContext = NewDialer().DialContext
	}

	return transport
}
