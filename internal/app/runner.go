package app

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/molotov-go/internal/client/session"
	"github.com/oshokin/molotov-go/internal/logger"
)

// BodyFactory returns a fresh request body for every request.
// Streams cannot be replayed, so each request gets its own.
type BodyFactory func() (any, error)

// RequestPlan describes the requests a run sends.
type RequestPlan struct {
	// Method is the HTTP method of every request.
	Method string
	// URLs are the targets; each one receives Requests requests.
	URLs []string
	// Header is sent with every request.
	Header http.Header
	// Body creates the request body, nil for requests without one.
	Body BodyFactory
	// Requests is the number of requests per URL.
	Requests int64
	// Concurrency is the number of requests in flight at once.
	Concurrency int64
}

// Total returns the number of requests the plan sends.
func (p *RequestPlan) Total() int64 {
	return int64(len(p.URLs)) * p.Requests
}

// Runner sends the requests of a plan through one shared session.
type Runner struct {
	// session sends every request.
	session session.Session
	// showProgress enables the progress bar.
	showProgress bool
	// stats accumulates the outcome of the run.
	stats *Statistics
	// statsMutex guards stats.
	statsMutex sync.Mutex
}

// NewRunner creates and returns a new instance of Runner.
func NewRunner(s session.Session, showProgress bool) *Runner {
	return &Runner{
		session:      s,
		showProgress: showProgress,
		stats:        newStatistics(),
	}
}

// Run sends every request of plan and returns the collected statistics.
// Cancelling ctx stops queueing new requests; requests in flight are awaited.
func (r *Runner) Run(ctx context.Context, plan *RequestPlan) *Statistics {
	concurrency := plan.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var bar *progressbar.ProgressBar
	if r.showProgress {
		bar = progressbar.Default(plan.Total(), "Requests")
	}

	r.markStarted()

	// Semaphore limiting requests in flight.
	semaphore := make(chan struct{}, concurrency)

	var waitGroup sync.WaitGroup

queue:
	for _, rawURL := range plan.URLs {
		for range plan.Requests {
			// Stop queueing new requests once the run is cancelled.
			if ctx.Err() != nil {
				break queue
			}

			select {
			case <-ctx.Done():
				break queue
			case semaphore <- struct{}{}:
			}

			waitGroup.Add(1)

			go func(target string) {
				defer waitGroup.Done()
				defer func() { <-semaphore }()

				r.send(ctx, plan, target)

				if bar != nil {
					_ = bar.Add(1)
				}
			}(rawURL)
		}
	}

	waitGroup.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	r.markFinished(ctx.Err() != nil)

	return r.Statistics()
}

// send performs one request and records its outcome.
func (r *Runner) send(ctx context.Context, plan *RequestPlan, rawURL string) {
	opts := []session.RequestOption{session.WithHeaders(plan.Header)}

	if plan.Body != nil {
		body, err := plan.Body()
		if err != nil {
			logger.Errorf(ctx, "Failed to prepare request body: %v", err)
			r.recordFailure(err)

			return
		}

		opts = append(opts, session.WithBody(body))
	}

	startTime := time.Now()

	resp, err := r.session.Request(ctx, plan.Method, rawURL, opts...)
	if err != nil {
		logger.DebugKV(ctx, "Request failed", "url", rawURL, "error", err)
		r.recordFailure(err)

		return
	}

	bytesRead, err := io.Copy(io.Discard, resp.Body)

	if closeErr := resp.Body.Close(); closeErr != nil {
		logger.DebugKV(ctx, "Failed to close response body", "url", rawURL, "error", closeErr)
	}

	if err != nil {
		logger.DebugKV(ctx, "Failed to read response body", "url", rawURL, "error", err)
		r.recordFailure(err)

		return
	}

	r.recordResponse(resp.StatusCode, bytesRead, time.Since(startTime))
}
