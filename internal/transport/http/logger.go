package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/molotov-go/internal/logger"
)

// LogTransport is a custom http.RoundTripper that logs one debug line per round trip.
// It wraps another http.RoundTripper and never touches request or response bodies.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates and returns a new instance of LogTransport.
func NewLogTransport(next http.RoundTripper) http.RoundTripper {
	return &LogTransport{next: next}
}

// RoundTrip executes a single HTTP transaction and logs its outcome and duration.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip timing if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.DebugKV(ctx, "Round trip failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", duration,
			"error", err)

		return nil, err
	}

	size := "unknown"
	if resp.ContentLength >= 0 {
		size = humanize.Bytes(uint64(resp.ContentLength))
	}

	logger.DebugKV(ctx, "Round trip completed",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", duration,
		"content_length", size)

	return resp, nil
}
