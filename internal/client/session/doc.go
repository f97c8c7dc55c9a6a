// Package session provides the instrumented HTTP session.
// Every request goes through the same pipeline: the target host is resolved
// by the DNS override, the request is dispatched through the shared
// connection pool (timed and counted when a metrics backend is configured),
// and, at verbosity 2 and above, the request and response are printed
// without consuming the response body the caller receives.
package session
