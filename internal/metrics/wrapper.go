package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// WithMetrics runs dispatch under a timer named label.
// The timing is recorded on every exit path, including errors and panics.
// On success the counter "<label>.<status code>" is incremented; on error
// nothing is counted and the error is returned unchanged.
func WithMetrics(backend Backend, label string, dispatch func() (*http.Response, error)) (*http.Response, error) {
	startTime := time.Now()

	defer func() {
		backend.Timing(label, time.Since(startTime))
	}()

	resp, err := dispatch()
	if err != nil {
		return nil, err
	}

	backend.Incr(label + "." + strconv.Itoa(resp.StatusCode))

	return resp, nil
}
