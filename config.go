// config.go
// ----------
// This file defines the Config structure used to construct a Client, along
// with the named defaults for the retry and timeout policy. The defaults are
// production behavior; tests override them through Config rather than by
// editing literals elsewhere in the package.
package carelink

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultMaxAttempts is the total attempt budget per logical call:
	// one initial send plus up to two retries of transient failures.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the fixed pause between retry attempts.
	DefaultRetryDelay = time.Second

	// DefaultRequestTimeout bounds the wait for response headers on a
	// single attempt.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultResourceTimeout bounds one attempt end to end, body read
	// included.
	DefaultResourceTimeout = 60 * time.Second
)

// Config customizes a Client. Only BaseURL is required.
type Config struct {
	// BaseURL is the absolute root every Endpoint is resolved against,
	// e.g. "https://api.carelink.example". Callers typically read it from
	// the CARELINK_API_URL environment variable.
	BaseURL string

	// Store mirrors the credential pair durably. Nil disables mirroring;
	// credentials then live only in memory.
	Store CredentialStore

	// Transport overrides the HTTP transport. Nil selects an *http.Client
	// configured with the default timeouts.
	Transport Doer

	// Logger receives request/retry/refresh tracing. Nil disables logging
	// unless Debug is set.
	Logger *zerolog.Logger

	// Debug raises the logger to debug level (and, with a nil Logger,
	// installs a stderr console logger).
	Debug bool

	MaxAttempts     int           // total attempts per logical call; 0 means DefaultMaxAttempts
	RetryDelay      time.Duration // pause between retries; 0 means DefaultRetryDelay
	RequestTimeout  time.Duration // response-header timeout; 0 means DefaultRequestTimeout
	ResourceTimeout time.Duration // whole-attempt timeout; 0 means DefaultResourceTimeout
}
