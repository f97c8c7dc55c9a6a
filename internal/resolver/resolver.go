package resolver

//go:generate $MOCKGEN -source=resolver.go -destination=mocks/resolver_mock.go

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver maps a host name to the address a connection should target.
type Resolver interface {
	// Resolve returns an IP address for host.
	Resolve(ctx context.Context, host string) (string, error)
}

// Config configures a NetResolver.
type Config struct {
	// CustomDNSServer is a "host:port" DNS server used instead of the system one.
	CustomDNSServer string
	// Network is one of "ip4", "ip6" or "ip"; empty means "ip".
	Network string
	// StaticHosts resembles /etc/hosts and is consulted before DNS.
	StaticHosts map[string]string
	// CacheSize is the number of cached answers; zero or less disables caching.
	CacheSize int
}

// NetResolver resolves hosts with net.Resolver.
// It is safe for concurrent use.
type NetResolver struct {
	// network is the lookup network passed to LookupIP.
	network string
	// staticHosts holds lowercased static entries.
	staticHosts map[string]string
	// resolver performs the actual lookups.
	resolver *net.Resolver
	// cache holds previous answers, nil when caching is disabled.
	cache *lru.Cache[string, string]
}

const defaultNetwork = "ip"

// Static error definitions for better error handling.
var (
	// ErrNoAddresses indicates that a lookup succeeded without returning any address.
	ErrNoAddresses = errors.New("no addresses found")
	// ErrEmptyHost indicates that the URL has no host to resolve.
	ErrEmptyHost = errors.New("empty host")
	// ErrInvalidNetwork indicates an unsupported lookup network.
	ErrInvalidNetwork = errors.New("network must be one of ip, ip4, ip6")
)

// NewNetResolver creates and returns a new instance of NetResolver.
func NewNetResolver(cfg Config) (*NetResolver, error) {
	network := strings.ToLower(strings.TrimSpace(cfg.Network))
	if network == "" {
		network = defaultNetwork
	}

	switch network {
	case "ip", "ip4", "ip6":
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidNetwork, cfg.Network)
	}

	staticHosts := make(map[string]string, len(cfg.StaticHosts))
	for host, addr := range cfg.StaticHosts {
		staticHosts[strings.ToLower(host)] = addr
	}

	r := &NetResolver{
		network:     network,
		staticHosts: staticHosts,
		resolver:    newNetResolver(cfg.CustomDNSServer),
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, string](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create DNS cache: %w", err)
		}

		r.cache = cache
	}

	return r, nil
}

// newNetResolver returns the system resolver, or a Go resolver that sends
// every query to server when one is given.
func newNetResolver(server string) *net.Resolver {
	if server == "" {
		return net.DefaultResolver
	}

	var dialer net.Dialer

	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, server)
		},
	}
}

// Resolve returns an IP address for host.
// IP literals are returned unchanged, static hosts win over DNS, and the
// first address of a lookup is used.
func (r *NetResolver) Resolve(ctx context.Context, host string) (string, error) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return "", ErrEmptyHost
	}

	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}

	if addr, ok := r.staticHosts[host]; ok {
		return addr, nil
	}

	if r.cache != nil {
		if addr, ok := r.cache.Get(host); ok {
			return addr, nil
		}
	}

	ips, err := r.resolver.LookupIP(ctx, r.network, host)
	if err != nil {
		return "", fmt.Errorf("failed to look up %q: %w", host, err)
	}

	if len(ips) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoAddresses, host)
	}

	addr := ips[0].String()

	if r.cache != nil {
		r.cache.Add(host, addr)
	}

	return addr, nil
}

// Purge drops every cached answer.
func (r *NetResolver) Purge() {
	if r.cache != nil {
		r.cache.Purge()
	}
}
