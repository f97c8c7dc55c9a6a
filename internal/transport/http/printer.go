package http

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/oshokin/molotov-go/internal/logger"
)

// Printer dumps requests and responses to a console when verbosity is 2 or more.
type Printer struct {
	// console receives every printed block.
	console Console
	// verbosity is fixed for the printer's lifetime.
	verbosity int
	// maxPeekSize bounds how much of a response body is rendered; 0 means unbounded.
	maxPeekSize int64
}

const (
	// printVerbosity is the lowest verbosity that prints requests and responses.
	printVerbosity = 2
	// borderWidth is the length of the border lines around printed blocks.
	borderWidth = 45
)

// NewPrinter creates and returns a new Printer.
func NewPrinter(console Console, verbosity int, maxPeekSize int64) *Printer {
	return &Printer{
		console:     console,
		verbosity:   verbosity,
		maxPeekSize: maxPeekSize,
	}
}

// Enabled reports whether the printer writes anything.
func (p *Printer) Enabled() bool {
	return p != nil && p.console != nil && p.verbosity >= printVerbosity
}

// PrintRequest prints req with body rendered by RenderRequestBody.
// body is the value the request was built from; req.Body is never read.
func (p *Printer) PrintRequest(ctx context.Context, req *http.Request, body any) {
	if !p.Enabled() || req == nil {
		return
	}

	var raw strings.Builder

	raw.WriteString(strings.Repeat(">", borderWidth))
	raw.WriteString("\n" + req.Method + " " + req.URL.String())

	if len(req.Header) > 0 {
		raw.WriteString("\n" + formatHeaders(req.Header))
	}

	switch {
	case IsCompressedEncoding(req.Header):
		raw.WriteString("\n\n" + BinaryMarker + "\n")
	case hasBody(body):
		raw.WriteString("\n\n" + RenderRequestBody(body, req.Header) + "\n")
	}

	p.print(ctx, raw.String())
}

// PrintResponse prints resp. Its body is peeked and restored, never consumed.
func (p *Printer) PrintResponse(ctx context.Context, resp *http.Response) {
	if !p.Enabled() || resp == nil {
		return
	}

	var raw strings.Builder

	raw.WriteString("\n" + strings.Repeat("=", borderWidth) + "\n")
	raw.WriteString("HTTP/1.1 " + strconv.Itoa(resp.StatusCode) + " " + reasonPhrase(resp) + "\n")
	raw.WriteString(formatHeaders(resp.Header))

	if IsCompressedEncoding(resp.Header) {
		raw.WriteString("\n\n" + BinaryMarker)
	} else if content := RenderResponseBody(ctx, resp, p.maxPeekSize); content != "" {
		raw.WriteString("\n\n" + content)
	} else {
		raw.WriteString("\n\n")
	}

	raw.WriteString("\n" + strings.Repeat("<", borderWidth) + "\n")

	p.print(ctx, raw.String())
}

func (p *Printer) print(ctx context.Context, text string) {
	if err := p.console.Print(text); err != nil {
		logger.WarnKV(ctx, "Failed to print to console", "error", err)
	}
}

// formatHeaders renders header as "Name: Value" lines sorted by name, one line per value.
func formatHeaders(header http.Header) string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}

	slices.Sort(names)

	lines := make([]string, 0, len(names))

	for _, name := range names {
		for _, value := range header[name] {
			lines = append(lines, name+": "+value)
		}
	}

	return strings.Join(lines, "\n")
}

// reasonPhrase extracts the reason phrase from resp.Status, falling back to the standard text.
func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)

	if reason, found := strings.CutPrefix(resp.Status, code); found {
		if reason = strings.TrimSpace(reason); reason != "" {
			return reason
		}
	}

	return http.StatusText(resp.StatusCode)
}

// hasBody reports whether body carries anything worth a body section.
func hasBody(body any) bool {
	if payload, ok := body.(Payload); ok {
		body = payload.Value()
	}

	switch value := body.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case []byte:
		return len(value) > 0
	default:
		return true
	}
}
