package metrics

import (
	"net/url"
	"strings"
)

// labelPrefix starts every metrics label.
const labelPrefix = "molotov"

// Label returns the metrics label of a request:
// "molotov.<hostname>.<method>.<target host without port>.<path>".
// An empty path is reported as "/".
func Label(hostname, method string, u *url.URL) string {
	path := u.Path
	if path == "" {
		path = "/"
	}

	return strings.Join([]string{labelPrefix, hostname, method, u.Hostname(), path}, ".")
}
