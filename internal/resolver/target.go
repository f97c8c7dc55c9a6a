package resolver

import (
	"context"
	"net"
	"net/url"
	"strings"
)

// targetAddressKey is the context key carrying the resolved dial address.
type targetAddressKey struct{}

// DialFunc matches net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// ResolveTarget returns a copy of u whose host is the address r resolves u's host name to.
// The port, path, query and user info of u are kept.
func ResolveTarget(ctx context.Context, r Resolver, u *url.URL) (*url.URL, error) {
	host := u.Hostname()
	if host == "" {
		return nil, ErrEmptyHost
	}

	addr, err := r.Resolve(ctx, host)
	if err != nil {
		return nil, err
	}

	resolved := *u

	if port := u.Port(); port != "" {
		resolved.Host = net.JoinHostPort(addr, port)
	} else if strings.Contains(addr, ":") {
		resolved.Host = "[" + addr + "]"
	} else {
		resolved.Host = addr
	}

	return &resolved, nil
}

// DialAddress returns the "host:port" a connection to u targets,
// filling in the default port of the http and https schemes.
func DialAddress(u *url.URL) string {
	port := u.Port()
	if port == "" {
		switch strings.ToLower(u.Scheme) {
		case "https", "wss":
			port = "443"
		default:
			port = "80"
		}
	}

	return net.JoinHostPort(u.Hostname(), port)
}

// WithTargetAddress returns a copy of ctx telling DialContext to connect to addr.
func WithTargetAddress(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, targetAddressKey{}, addr)
}

// TargetAddressFromContext returns the address stored by WithTargetAddress.
func TargetAddressFromContext(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(targetAddressKey{}).(string)

	return addr, ok && addr != ""
}

// DialContext wraps dial so that connections go to the address carried by the
// context, if any, instead of the address derived from the request URL.
func DialContext(dial DialFunc) DialFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		if addr, ok := TargetAddressFromContext(ctx); ok {
			address = addr
		}

		return dial(ctx, network, address)
	}
}
