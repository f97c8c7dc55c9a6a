// Package metrics times outbound requests and counts their outcomes.
// Requests are grouped by a label derived from the host running the client,
// the HTTP method, the target host and the path. Measurements go to a
// Backend; PrometheusBackend is the one shipped with the application.
package metrics
