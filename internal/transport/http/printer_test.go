package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_http "github.com/oshokin/molotov-go/internal/transport/http/mocks"
)

var (
	//nolint:gochecknoglobals // Test fixtures used as constants.
	requestBorder = strings.Repeat(">", 45)
	//nolint:gochecknoglobals // Test fixtures used as constants.
	responseBorder = strings.Repeat("=", 45)
	//nolint:gochecknoglobals // Test fixtures used as constants.
	closingBorder = strings.Repeat("<", 45)
)

// TestPrinter_PrintRequestWithoutBody tests the request block of a plain GET.
func TestPrinter_PrintRequestWithoutBody(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := NewPrinter(NewConsole(&out), 2, 0)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com/search?q=1", nil)
	require.NoError(t, err)

	printer.PrintRequest(context.Background(), req, nil)

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, requestBorder, lines[0])
	assert.Equal(t, "GET http://example.com/search?q=1", lines[1])
	assert.Equal(t, requestBorder+"\nGET http://example.com/search?q=1\n", out.String())
}

// TestPrinter_PrintRequestWithHeadersAndBody tests header ordering and the body section.
func TestPrinter_PrintRequestWithHeadersAndBody(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := NewPrinter(NewConsole(&out), 3, 0)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://example.com/items", nil)
	require.NoError(t, err)

	req.Header.Set("X-Trace", "abc")
	req.Header.Set("Content-Type", "application/json")

	printer.PrintRequest(context.Background(), req, `{"name":"bob"}`)

	expected := requestBorder + "\n" +
		"POST http://example.com/items\n" +
		"Content-Type: application/json\n" +
		"X-Trace: abc\n" +
		"\n" +
		`{"name":"bob"}` + "\n" +
		"\n"
	assert.Equal(t, expected, out.String())
}

// TestPrinter_PrintRequestCompressed tests that a compressed request prints the binary marker.
func TestPrinter_PrintRequestCompressed(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := NewPrinter(NewConsole(&out), 2, 0)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, "http://example.com/blob", nil)
	require.NoError(t, err)

	req.Header.Set("Content-Encoding", "gzip")

	printer.PrintRequest(context.Background(), req, []byte("valid text"))

	assert.Contains(t, out.String(), "\n\n"+BinaryMarker+"\n")
	assert.NotContains(t, out.String(), "valid text")
}

// TestPrinter_PrintResponse tests the response block and that the caller still reads the body.
func TestPrinter_PrintResponse(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := NewPrinter(NewConsole(&out), 2, 0)
	resp := newResponse(http.Header{"Content-Type": {"text/plain"}}, io.NopCloser(strings.NewReader("hello")))

	printer.PrintResponse(context.Background(), resp)

	expected := "\n" + responseBorder + "\n" +
		"HTTP/1.1 200 OK\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"hello\n" +
		closingBorder + "\n" +
		"\n"
	assert.Equal(t, expected, out.String())

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

// TestPrinter_PrintResponseEmptyBody tests that an empty body leaves a blank section.
func TestPrinter_PrintResponseEmptyBody(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := NewPrinter(NewConsole(&out), 2, 0)
	resp := &http.Response{
		StatusCode: http.StatusNoContent,
		Status:     "204",
		Header:     http.Header{},
		Body:       http.NoBody,
	}

	printer.PrintResponse(context.Background(), resp)

	expected := "\n" + responseBorder + "\n" +
		"HTTP/1.1 204 No Content\n" +
		"\n\n" +
		"\n" + closingBorder + "\n" +
		"\n"
	assert.Equal(t, expected, out.String())
}

// TestPrinter_PrintResponseCompressed tests the binary marker for compressed responses.
func TestPrinter_PrintResponseCompressed(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := NewPrinter(NewConsole(&out), 2, 0)
	body := &countingBody{Reader: strings.NewReader("text")}
	resp := newResponse(http.Header{"Content-Encoding": {"br"}}, body)

	printer.PrintResponse(context.Background(), resp)

	assert.Contains(t, out.String(), "Content-Encoding: br\n\n"+BinaryMarker+"\n"+closingBorder)
	assert.Zero(t, body.reads)
}

// TestPrinter_LowVerbosity tests that verbosity below 2 neither prints nor reads.
func TestPrinter_LowVerbosity(t *testing.T) {
	t.Parallel()

	for _, verbosity := range []int{0, 1} {
		ctrl := gomock.NewController(t)
		console := mock_http.NewMockConsole(ctrl)
		console.EXPECT().Print(gomock.Any()).Times(0)

		printer := NewPrinter(console, verbosity, 0)
		assert.False(t, printer.Enabled())

		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com/", nil)
		require.NoError(t, err)

		body := &countingBody{Reader: strings.NewReader("content")}
		resp := newResponse(nil, body)

		printer.PrintRequest(context.Background(), req, "body")
		printer.PrintResponse(context.Background(), resp)

		assert.Zero(t, body.reads)
		assert.Same(t, body, resp.Body)
	}
}

// TestPrinter_ConsoleFailureIgnored tests that console errors do not escape the printer.
func TestPrinter_ConsoleFailureIgnored(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	console := mock_http.NewMockConsole(ctrl)
	console.EXPECT().Print(gomock.Any()).Return(errors.New("broken pipe")).Times(2)

	printer := NewPrinter(console, 2, 0)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)

	resp := newResponse(nil, io.NopCloser(strings.NewReader("still readable")))

	assert.NotPanics(t, func() {
		printer.PrintRequest(context.Background(), req, nil)
		printer.PrintResponse(context.Background(), resp)
	})

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "still readable", string(content))
}

// TestPrinter_NilPrinter tests that a nil printer is disabled.
func TestPrinter_NilPrinter(t *testing.T) {
	t.Parallel()

	var printer *Printer

	assert.False(t, printer.Enabled())
}

// TestReasonPhrase tests reason phrase extraction.
func TestReasonPhrase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resp     *http.Response
		expected string
	}{
		{
			name:     "standard status",
			resp:     &http.Response{StatusCode: 404, Status: "404 Not Found"},
			expected: "Not Found",
		},
		{
			name:     "custom reason",
			resp:     &http.Response{StatusCode: 200, Status: "200 Fine Thanks"},
			expected: "Fine Thanks",
		},
		{
			name:     "missing status text",
			resp:     &http.Response{StatusCode: 503},
			expected: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, reasonPhrase(tt.resp))
		})
	}
}
