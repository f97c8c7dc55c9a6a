package utils

//go:generate $MOCKGEN -source=hostname_provider.go -destination=mocks/hostname_provider_mock.go

import "os"

// unknownHostname is returned when the operating system cannot report a hostname.
const unknownHostname = "unknown"

// HostnameProvider is an interface that defines a method for retrieving the name of the running host.
type HostnameProvider interface {
	// GetHostname returns the host name used as the process identity in metrics labels.
	GetHostname() string
}

// SimpleHostnameProvider returns a fixed host name set during initialization.
type SimpleHostnameProvider struct {
	// hostname is the host name to return.
	hostname string
}

// NewSimpleHostnameProvider creates and returns a new instance of SimpleHostnameProvider.
func NewSimpleHostnameProvider(hostname string) HostnameProvider {
	return &SimpleHostnameProvider{hostname: hostname}
}

// GetHostname returns the configured host name.
func (p *SimpleHostnameProvider) GetHostname() string {
	return p.hostname
}

// OSHostnameProvider asks the operating system for the host name.
type OSHostnameProvider struct{}

// NewOSHostnameProvider creates and returns a new instance of OSHostnameProvider.
func NewOSHostnameProvider() HostnameProvider {
	return &OSHostnameProvider{}
}

// GetHostname returns os.Hostname, or "unknown" when it fails.
func (p *OSHostnameProvider) GetHostname() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return unknownHostname
	}

	return hostname
}
