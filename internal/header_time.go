// internal/header_time.go
// -----------------------
// This internal package provides helper functions for parsing the time
// forms that appear in rate-limit response headers. Backends are
// inconsistent: Retry-After may be a delay in seconds or an HTTP date, and
// reset headers may be unix seconds or unix milliseconds.
//
// Functions:
// - ParseRetryAfter: Convert a Retry-After header value into a duration.
// - ParseResetAt: Convert a reset header value into an absolute time.
package internal

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseRetryAfter converts a Retry-After value ("120" or an HTTP date)
// into a wait duration relative to now. Unparseable or negative values
// yield zero.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// ParseResetAt converts a reset header value (unix seconds, or unix
// milliseconds for values too large to be seconds) into an absolute time.
// Returns the zero time when the value cannot be parsed.
func ParseResetAt(value string) time.Time {
	value = strings.TrimSpace(value)
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}
	}
	// Anything beyond ~year 5138 in seconds is assumed to be milliseconds.
	if n > 1e11 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
