package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFormatDuration tests the formatDuration helper function.
func TestFormatDuration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "milliseconds",
			duration: 500 * time.Millisecond,
			expected: "500ms",
		},
		{
			name:     "seconds only",
			duration: 45 * time.Second,
			expected: "45s",
		},
		{
			name:     "minutes and seconds",
			duration: 2*time.Minute + 30*time.Second,
			expected: "2m 30s",
		},
		{
			name:     "hours, minutes, and seconds",
			duration: time.Hour + 5*time.Minute + 7*time.Second,
			expected: "1h 5m 7s",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, formatDuration(tc.duration))
		})
	}
}

// TestRunner_RecordResponse tests response bookkeeping.
func TestRunner_RecordResponse(t *testing.T) {
	t.Parallel()

	runner := NewRunner(nil, false)

	runner.recordResponse(http.StatusOK, 100, 10*time.Millisecond)
	runner.recordResponse(http.StatusOK, 50, 30*time.Millisecond)
	runner.recordResponse(http.StatusServiceUnavailable, 0, 20*time.Millisecond)

	stats := runner.Statistics()
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(3), stats.Succeeded())
	assert.Equal(t, int64(150), stats.BytesRead)
	assert.Equal(t, 60*time.Millisecond, stats.TotalLatency)
	assert.Equal(t, 30*time.Millisecond, stats.MaxLatency)
	assert.Equal(t, map[int]int64{http.StatusOK: 2, http.StatusServiceUnavailable: 1}, stats.StatusCounts)
}

// TestRunner_StatisticsIsCopy tests that returned statistics do not change afterwards.
func TestRunner_StatisticsIsCopy(t *testing.T) {
	t.Parallel()

	runner := NewRunner(nil, false)
	runner.recordResponse(http.StatusOK, 1, time.Millisecond)

	stats := runner.Statistics()

	runner.recordResponse(http.StatusOK, 1, time.Millisecond)

	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.StatusCounts[http.StatusOK])
}

// TestPrintSummary tests that summaries of any shape are printed without panicking.
func TestPrintSummary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	assert.NotPanics(t, func() { PrintSummary(ctx, nil) })
	assert.NotPanics(t, func() { PrintSummary(ctx, newStatistics()) })

	stats := newStatistics()
	stats.Total = 3
	stats.Failed = 3
	stats.Errors["timeout"] = 3
	stats.Interrupted = true

	assert.NotPanics(t, func() { PrintSummary(ctx, stats) })

	stats = newStatistics()
	stats.Total = 2
	stats.BytesRead = 2048
	stats.StatusCounts[http.StatusOK] = 2
	stats.TotalLatency = 40 * time.Millisecond
	stats.MaxLatency = 30 * time.Millisecond
	stats.StartTime = time.Now().Add(-time.Second)
	stats.EndTime = time.Now()

	assert.NotPanics(t, func() { PrintSummary(ctx, stats) })
}
