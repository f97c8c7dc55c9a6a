package utils

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidHeader indicates that a header line is not in the "Name: value" form.
var ErrInvalidHeader = errors.New("header must be in the 'Name: value' form")

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// ParseHeaders turns lines like "Accept: text/plain" into an http.Header.
// Repeated names accumulate values in the order they are given.
func ParseHeaders(lines []string) (http.Header, error) {
	header := make(http.Header, len(lines))

	for _, line := range lines {
		name, value, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)

		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
		}

		header.Add(name, strings.TrimSpace(value))
	}

	return header, nil
}

// IsFileExist checks if a regular file exists at the specified path.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// ReadUniqueLinesFromFile reads a text file and returns its unique non-empty lines.
// Lines starting with '#' are treated as comments.
func ReadUniqueLinesFromFile(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	var (
		seen    = make(map[string]struct{})
		lines   []string
		scanner = bufio.NewScanner(file)
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if _, exists := seen[line]; exists {
			continue
		}

		seen[line] = struct{}{}
		lines = append(lines, line)
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
