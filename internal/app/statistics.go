package app

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/molotov-go/internal/logger"
)

// maxRecordedErrors caps how many distinct error messages a run keeps.
const maxRecordedErrors = 10

// Statistics holds the outcome of a run.
type Statistics struct {
	// Total is the number of requests that completed, successfully or not.
	Total int64
	// Failed is the number of requests that returned an error.
	Failed int64
	// BytesRead is the number of response body bytes received.
	BytesRead int64
	// StatusCounts counts responses by status code.
	StatusCounts map[int]int64
	// Errors counts distinct error messages, up to maxRecordedErrors of them.
	Errors map[string]int64
	// TotalLatency is the sum of successful request durations.
	TotalLatency time.Duration
	// MaxLatency is the slowest successful request.
	MaxLatency time.Duration
	// StartTime is when the run started.
	StartTime time.Time
	// EndTime is when the run finished.
	EndTime time.Time
	// Interrupted reports whether the run was cancelled.
	Interrupted bool
}

func newStatistics() *Statistics {
	return &Statistics{
		StatusCounts: make(map[int]int64),
		Errors:       make(map[string]int64),
	}
}

// Succeeded returns the number of requests that received a response.
func (s *Statistics) Succeeded() int64 {
	return s.Total - s.Failed
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

func (r *Runner) markStarted() {
	r.statsMutex.Lock()
	defer r.statsMutex.Unlock()

	r.stats.StartTime = time.Now()
}

func (r *Runner) markFinished(interrupted bool) {
	r.statsMutex.Lock()
	defer r.statsMutex.Unlock()

	r.stats.EndTime = time.Now()
	r.stats.Interrupted = interrupted
}

// recordResponse counts a request that received a response.
func (r *Runner) recordResponse(statusCode int, bytesRead int64, latency time.Duration) {
	r.statsMutex.Lock()
	defer r.statsMutex.Unlock()

	r.stats.Total++
	r.stats.StatusCounts[statusCode]++
	r.stats.BytesRead += bytesRead
	r.stats.TotalLatency += latency
	r.stats.MaxLatency = max(r.stats.MaxLatency, latency)
}

// recordFailure counts a request that failed.
func (r *Runner) recordFailure(err error) {
	r.statsMutex.Lock()
	defer r.statsMutex.Unlock()

	r.stats.Total++
	r.stats.Failed++

	message := err.Error()
	if _, ok := r.stats.Errors[message]; ok || len(r.stats.Errors) < maxRecordedErrors {
		r.stats.Errors[message]++
	}
}

// Statistics returns a copy of the statistics collected so far.
func (r *Runner) Statistics() *Statistics {
	r.statsMutex.Lock()
	defer r.statsMutex.Unlock()

	stats := *r.stats
	stats.StatusCounts = maps.Clone(r.stats.StatusCounts)
	stats.Errors = maps.Clone(r.stats.Errors)

	return &stats
}

// PrintSummary prints a formatted summary of the run.
func PrintSummary(ctx context.Context, stats *Statistics) {
	if stats == nil || stats.Total == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	if stats.Interrupted {
		logger.Info(ctx, "               LOAD SUMMARY (Interrupted)")
	} else {
		logger.Info(ctx, "                       LOAD SUMMARY")
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
	logger.Infof(ctx, "Requests:         %d total", stats.Total)
	logger.Infof(ctx, "  Succeeded:      %d", stats.Succeeded())

	if stats.Failed > 0 {
		logger.Infof(ctx, "  Failed:         %d", stats.Failed)
	}

	for _, code := range slices.Sorted(maps.Keys(stats.StatusCounts)) {
		logger.Infof(ctx, "  Status %d:     %d", code, stats.StatusCounts[code])
	}

	printTransferStatistics(ctx, stats)

	if len(stats.Errors) > 0 {
		logger.Info(ctx, "")
		logger.Info(ctx, "Errors:")

		for _, message := range slices.Sorted(maps.Keys(stats.Errors)) {
			logger.Infof(ctx, "  %dx %s", stats.Errors[message], message)
		}
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
}

// printTransferStatistics prints data and timing statistics.
func printTransferStatistics(ctx context.Context, stats *Statistics) {
	logger.Info(ctx, "")

	if stats.BytesRead > 0 {
		//nolint:gosec // BytesRead is never negative.
		logger.Infof(ctx, "Data Received:    %s", humanize.Bytes(uint64(stats.BytesRead)))
	}

	if succeeded := stats.Succeeded(); succeeded > 0 {
		average := stats.TotalLatency / time.Duration(succeeded)
		logger.Infof(ctx, "Average Latency:  %s", average.Round(time.Millisecond))
		logger.Infof(ctx, "Max Latency:      %s", stats.MaxLatency.Round(time.Millisecond))
	}

	if stats.StartTime.IsZero() || stats.EndTime.IsZero() {
		return
	}

	duration := stats.EndTime.Sub(stats.StartTime)
	logger.Infof(ctx, "Duration:         %s", formatDuration(duration))

	if duration > 0 {
		logger.Infof(ctx, "Throughput:       %s req/s",
			humanize.FormatFloat("#,###.##", float64(stats.Total)/duration.Seconds()))
	}
}
