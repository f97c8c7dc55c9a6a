// Package resolver performs the DNS override step of outbound requests.
// It resolves the target host of a URL to an IP address, optionally through
// a custom DNS server or a static hosts table, caches the answers, and
// provides a dial function that connects to the resolved address while the
// request keeps its original URL, Host header and TLS server name.
package resolver
