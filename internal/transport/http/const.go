package http

import (
	"time"

	"github.com/oshokin/molotov-go/internal/version"
)

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// userAgentProduct is the product token of the default User-Agent header.
	userAgentProduct = "molotov-go"
)

const (
	// UnreadableMarker replaces bodies that are not valid UTF-8 text.
	UnreadableMarker = "***WARNING: Molotov can't display this body***"
	// BinaryMarker replaces bodies sent or received with a recognized Content-Encoding.
	BinaryMarker = "**** Binary content ****"
	// FileMarker replaces stream-backed request bodies, which are never read for printing.
	FileMarker = "**** File content ****"

	// truncatedSuffix is appended to bodies cut at the peek limit.
	truncatedSuffix = "... [truncated]"
)

// DefaultUserAgent returns the User-Agent sent when the caller did not set one.
func DefaultUserAgent() string {
	return userAgentProduct + "/" + version.Short()
}
