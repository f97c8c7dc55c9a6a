package http

import (
	"context"
	"net/http"

	"github.com/oshokin/molotov-go/internal/logger"
)

// RenderResponseBody returns the printable content of resp without consuming it.
//
// The body is replaced by a *ReplayReader, read to exhaustion (or to
// maxPeekSize+1 bytes when maxPeekSize is positive) and every byte read is
// pushed back before decoding, so the caller still reads the original
// content in full. Bodies with a recognized Content-Encoding are not read.
func RenderResponseBody(ctx context.Context, resp *http.Response, maxPeekSize int64) string {
	if resp == nil {
		return ""
	}

	if IsCompressedEncoding(resp.Header) {
		return BinaryMarker
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return ""
	}

	replay := AsReplayReader(resp.Body)
	resp.Body = replay

	data, err := replay.Peek(maxPeekSize)
	if err != nil {
		logger.WarnKV(ctx, "Failed to read response body for printing", "error", err, "bytes_read", len(data))

		return UnreadableMarker
	}

	if len(data) == 0 {
		return ""
	}

	if maxPeekSize <= 0 || int64(len(data)) <= maxPeekSize {
		return decodeText(data)
	}

	text := decodeText(trimPartialRune(data[:maxPeekSize]))
	if text == UnreadableMarker {
		return text
	}

	return text + truncatedSuffix
}
