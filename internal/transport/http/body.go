package http

import (
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Payload is an opaque request body that knows its own content type.
// Value returns the wrapped body: a string, a []byte, or an io.Reader.
type Payload interface {
	// Value returns the body carried by the payload.
	Value() any
	// ContentType returns the media type of the body, or an empty string.
	ContentType() string
}

// ValuePayload is the basic Payload implementation.
type ValuePayload struct {
	// value is the wrapped body.
	value any
	// contentType is the media type announced for the body.
	contentType string
}

// contentEncodingHeader is the HTTP header name for Content-Encoding.
const contentEncodingHeader = "Content-Encoding"

// compressedEncodings lists the Content-Encoding values whose bodies are never rendered.
//
//nolint:gochecknoglobals // This is an immutable set used as a constant.
var compressedEncodings = map[string]struct{}{
	"gzip":     {},
	"compress": {},
	"deflate":  {},
	"identity": {},
	"br":       {},
}

// NewPayload creates a Payload carrying value with the given content type.
func NewPayload(value any, contentType string) Payload {
	return &ValuePayload{
		value:       value,
		contentType: contentType,
	}
}

// Value returns the wrapped body, or nil for a nil payload.
func (p *ValuePayload) Value() any {
	if p == nil {
		return nil
	}

	return p.value
}

// ContentType returns the media type of the body.
func (p *ValuePayload) ContentType() string {
	if p == nil {
		return ""
	}

	return p.contentType
}

// IsCompressedEncoding reports whether header declares one of the recognized
// compressed or identity content encodings.
func IsCompressedEncoding(header http.Header) bool {
	if header == nil {
		return false
	}

	encoding := strings.ToLower(strings.TrimSpace(header.Get(contentEncodingHeader)))
	_, ok := compressedEncodings[encoding]

	return ok
}

// RenderRequestBody turns an outbound request body into printable text.
// It never reads stream bodies and never fails: undisplayable bodies are
// replaced by one of the markers.
func RenderRequestBody(body any, header http.Header) string {
	if IsCompressedEncoding(header) {
		return BinaryMarker
	}

	return renderBody(body)
}

func renderBody(body any) string {
	if payload, ok := body.(Payload); ok {
		body = payload.Value()
	}

	switch value := body.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return decodeText(value)
	case io.Reader:
		return FileMarker
	default:
		return UnreadableMarker
	}
}

// decodeText returns data as a string when it is valid UTF-8, or the unreadable marker.
func decodeText(data []byte) string {
	if !utf8.Valid(data) {
		return UnreadableMarker
	}

	return string(data)
}

// trimPartialRune drops an incomplete UTF-8 sequence left at the end of data by a byte cut.
func trimPartialRune(data []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		start := len(data) - i
		if !utf8.RuneStart(data[start]) {
			continue
		}

		if !utf8.FullRune(data[start:]) {
			return data[:start]
		}

		return data
	}

	return data
}
