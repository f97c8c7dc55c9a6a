package http

import (
	"io"
	"math"
)

// ReplayReader is a response body that can push previously read bytes back to its front.
// Bytes given to Unread are returned by later Reads before anything still
// unread in the underlying stream, so instrumentation can inspect a body and
// hand it to the real consumer as if it had never been touched.
//
// A ReplayReader has a single reader; concurrent Reads are not supported.
type ReplayReader struct {
	// src is the underlying stream owned by the transport.
	src io.ReadCloser
	// pending holds pushed-back bytes not yet delivered to a reader.
	pending []byte
}

// NewReplayReader wraps src. A nil src behaves as an empty stream.
func NewReplayReader(src io.ReadCloser) *ReplayReader {
	return &ReplayReader{src: src}
}

// AsReplayReader returns rc itself when it already is a *ReplayReader, or wraps it.
func AsReplayReader(rc io.ReadCloser) *ReplayReader {
	if replay, ok := rc.(*ReplayReader); ok {
		return replay
	}

	return NewReplayReader(rc)
}

// Read serves pushed-back bytes first and then the underlying stream.
func (r *ReplayReader) Read(p []byte) (int, error) {
	if len(r.pending) > 0 {
		n := copy(p, r.pending)
		r.pending = r.pending[n:]

		if len(r.pending) == 0 {
			r.pending = nil
		}

		return n, nil
	}

	if r.src == nil {
		return 0, io.EOF
	}

	return r.src.Read(p)
}

// Unread re-queues data at the front of the stream.
// The slice is copied, so the caller may reuse it.
func (r *ReplayReader) Unread(data []byte) {
	if len(data) == 0 {
		return
	}

	buf := make([]byte, 0, len(data)+len(r.pending))
	buf = append(buf, data...)
	buf = append(buf, r.pending...)

	r.pending = buf
}

// Buffered returns the number of pushed-back bytes waiting to be read.
func (r *ReplayReader) Buffered() int {
	return len(r.pending)
}

// Peek reads the stream to exhaustion, or up to limit+1 bytes when limit is positive
// and below math.MaxInt64,
// and pushes everything it read back before returning.
// The returned error is the read error, if any; the bytes read before it are still pushed back.
func (r *ReplayReader) Peek(limit int64) ([]byte, error) {
	var src io.Reader = r
	if limit > 0 && limit < math.MaxInt64 {
		src = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(src)
	r.Unread(data)

	return data, err
}

// Close drops pushed-back bytes and closes the underlying stream.
func (r *ReplayReader) Close() error {
	r.pending = nil

	if r.src == nil {
		return nil
	}

	return r.src.Close()
}
