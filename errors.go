// errors.go
// ---------
// Every failure the client surfaces is an *Error carrying an ErrorKind.
// Callers match with errors.As / IsKind and may consult Retryable() to
// implement their own higher-level retry; the client itself only retries
// the transient subset described in request_executor.go.
package carelink

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	KindInvalidURL       ErrorKind = "invalid_url"
	KindNoData           ErrorKind = "no_data"
	KindDecodingFailure  ErrorKind = "decoding_failure"
	KindEncodingFailure  ErrorKind = "encoding_failure"
	KindTransportFailure ErrorKind = "transport_failure"
	KindServerError      ErrorKind = "server_error"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindForbidden        ErrorKind = "forbidden"
	KindNotFound         ErrorKind = "not_found"
	KindRateLimited      ErrorKind = "rate_limited"
	KindTimeout          ErrorKind = "timeout"
	KindNoConnection     ErrorKind = "no_connection"
	KindUnknown          ErrorKind = "unknown"
)

// Error is the typed failure value returned by every client operation.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // HTTP status when the server answered, else 0
	Code       string // server error code from the error envelope, if any
	Message    string // always human-readable
	Err        error  // underlying cause, if any

	// RateLimit carries the parsed limit headers on KindRateLimited.
	RateLimit *RateLimitInfo
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("carelink: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("carelink: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether a caller could reasonably retry the logical
// call. The client auto-retries only transport failures and 5xx within its
// attempt budget; 429 is retryable here but never auto-retried.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindNoConnection, KindTransportFailure, KindRateLimited:
		return true
	case KindServerError:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// IsKind reports whether err is a client *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// classifyTransportError maps a failure from the transport (no HTTP
// response at all) onto the taxonomy.
func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, "request timed out", err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return newError(KindNoConnection, "connection failed: "+opErr.Err.Error(), err)
	}
	if errors.Is(err, context.Canceled) {
		return newError(KindTransportFailure, "request canceled", err)
	}
	return newError(KindTransportFailure, "network error: "+err.Error(), err)
}
