// rate_limit.go
// -------------
// This file defines RateLimitInfo, a parse-only snapshot of the backend's
// rate-limit headers. The client never throttles or auto-retries a 429;
// it records what the server reported and attaches it to RateLimited
// failures so callers can implement their own discretionary backoff.
package carelink

import (
	"net/http"
	"sync"
	"time"

	"github.com/carelink/carelink-go/internal"
)

// RateLimitInfo is the last rate-limit state reported by the backend.
type RateLimitInfo struct {
	Limit      *int          // X-RateLimit-Limit
	Remaining  *int          // X-RateLimit-Remaining
	ResetAt    *time.Time    // X-RateLimit-Reset
	RetryAfter time.Duration // Retry-After, zero when absent
}

type rateLimitTracker struct {
	mu   sync.Mutex
	last *RateLimitInfo
}

// update parses rate-limit headers from a response, if any, and stores the
// snapshot. Responses without rate-limit headers leave the last snapshot
// untouched.
func (t *rateLimitTracker) update(headers http.Header, now time.Time) *RateLimitInfo {
	info := parseRateLimitHeaders(headers, now)
	if info == nil {
		return nil
	}
	t.mu.Lock()
	t.last = info
	t.mu.Unlock()
	return info
}

// snapshot returns a copy of the last known info, or nil.
func (t *rateLimitTracker) snapshot() *RateLimitInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return nil
	}
	cp := *t.last
	if t.last.Limit != nil {
		v := *t.last.Limit
		cp.Limit = &v
	}
	if t.last.Remaining != nil {
		v := *t.last.Remaining
		cp.Remaining = &v
	}
	if t.last.ResetAt != nil {
		v := *t.last.ResetAt
		cp.ResetAt = &v
	}
	return &cp
}

func parseRateLimitHeaders(headers http.Header, now time.Time) *RateLimitInfo {
	var info RateLimitInfo
	seen := false

	if v := headers.Get("X-RateLimit-Limit"); v != "" {
		if n, ok := atoiHeader(v); ok {
			info.Limit = &n
			seen = true
		}
	}
	if v := headers.Get("X-RateLimit-Remaining"); v != "" {
		if n, ok := atoiHeader(v); ok {
			info.Remaining = &n
			seen = true
		}
	}
	if v := headers.Get("X-RateLimit-Reset"); v != "" {
		if at := internal.ParseResetAt(v); !at.IsZero() {
			info.ResetAt = &at
			seen = true
		}
	}
	if v := headers.Get("Retry-After"); v != "" {
		if d := internal.ParseRetryAfter(v, now); d > 0 {
			info.RetryAfter = d
			seen = true
		}
	}

	if !seen {
		return nil
	}
	return &info
}

func atoiHeader(v string) (int, bool) {
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
