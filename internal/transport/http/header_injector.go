package http

import (
	"net/http"
)

// HeaderInjector is a custom http.RoundTripper that adds default headers to requests missing them.
// Headers the caller already set to a non-empty value are left alone.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// defaults holds the headers to inject.
	defaults http.Header
}

// userAgentHeader is the HTTP header name for User-Agent.
const userAgentHeader = "User-Agent"

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
// A User-Agent default is always present: DefaultUserAgent is used unless defaults names one.
func NewHeaderInjector(next http.RoundTripper, defaults http.Header) http.RoundTripper {
	injected := defaults.Clone()
	if injected == nil {
		injected = make(http.Header)
	}

	if injected.Get(userAgentHeader) == "" {
		injected.Set(userAgentHeader, DefaultUserAgent())
	}

	return &HeaderInjector{
		next:     next,
		defaults: injected,
	}
}

// RoundTrip fills in missing default headers and forwards the request.
// Headers are set on req itself so that printed requests show what was sent.
// It implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}

	for name, values := range t.defaults {
		if req.Header.Get(name) != "" {
			continue
		}

		req.Header[name] = append([]string(nil), values...)
	}

	return t.next.RoundTrip(req)
}
