package metrics

//go:generate $MOCKGEN -source=backend.go -destination=mocks/backend_mock.go

import "time"

// Backend receives timings and counter increments.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Timing records how long the operation named name took.
	Timing(name string, duration time.Duration)
	// Incr increments the counter named name by one.
	Incr(name string)
}
