package session

import "errors"

// Static error definitions for better error handling.
var (
	// ErrResolutionFailed indicates that the target host could not be resolved; nothing was sent.
	ErrResolutionFailed = errors.New("failed to resolve target")
	// ErrDispatchFailed indicates that the transport failed to perform the request.
	ErrDispatchFailed = errors.New("failed to dispatch request")
	// ErrUnsupportedBody indicates a request body of an unsupported Go type.
	ErrUnsupportedBody = errors.New("unsupported request body type")
	// ErrInvalidURL indicates that the request URL could not be parsed.
	ErrInvalidURL = errors.New("invalid request URL")
)
