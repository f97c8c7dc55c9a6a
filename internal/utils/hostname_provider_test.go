package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSimpleHostnameProvider tests that the simple provider returns the configured name.
func TestSimpleHostnameProvider(t *testing.T) {
	t.Parallel()

	provider := NewSimpleHostnameProvider("load-runner-1")

	assert.Implements(t, (*HostnameProvider)(nil), provider)
	assert.Equal(t, "load-runner-1", provider.GetHostname())
}

// TestOSHostnameProvider tests that the OS provider agrees with os.Hostname.
func TestOSHostnameProvider(t *testing.T) {
	t.Parallel()

	provider := NewOSHostnameProvider()
	hostname := provider.GetHostname()

	assert.NotEmpty(t, hostname)

	if expected, err := os.Hostname(); err == nil && expected != "" {
		assert.Equal(t, expected, hostname)
	}
}
