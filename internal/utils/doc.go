// Package utils provides small helpers shared across the application,
// such as safe numeric conversions, header parsing, URL list loading,
// and the hostname provider used to label request metrics.
package utils
