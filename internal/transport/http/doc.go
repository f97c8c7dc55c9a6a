// Package http provides the instrumentation pieces that sit around outbound HTTP calls:
// round-tripper decorators for default headers and debug logging,
// a replayable response body that supports pushing bytes back,
// renderers that turn request and response bodies into printable text,
// and the printer that dumps whole exchanges to a console.
package http
