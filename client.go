// client.go
// ---------
// The client.go file contains the core Client struct and its methods.
// This is the main entry point of the SDK for users.
//
// Key functionalities include:
// - Constructing a client with New()
// - Installing and clearing the credential pair
// - Making requests via Do() / Request()
// - Inspecting authentication and rate-limit state
//
// The Client relies on a requestExecutor to run the send → classify →
// retry/refresh cycle, ensuring a uniform contract for every feature
// service. One client per process is the expected shape, owned by the
// application's startup code and passed to services by reference.
package carelink

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

type Client struct {
	baseURL   string
	transport Doer
	store     CredentialStore
	logger    zerolog.Logger

	mu    sync.RWMutex
	token *oauth2.Token

	online       atomic.Bool
	limits       rateLimitTracker
	refreshGroup singleflight.Group
	executor     *requestExecutor

	maxAttempts int
	retryDelay  time.Duration
}

// New constructs a Client from cfg. A previously mirrored credential pair
// is restored from cfg.Store, so a process restart resumes the session.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, newError(KindInvalidURL, "Config.BaseURL is required", nil)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}
	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = DefaultRetryDelay
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = DefaultRequestTimeout
	}
	resourceTimeout := cfg.ResourceTimeout
	if resourceTimeout == 0 {
		resourceTimeout = DefaultResourceTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Client{
			Timeout: resourceTimeout,
			Transport: &http.Transport{
				ResponseHeaderTimeout: requestTimeout,
			},
		}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.Debug {
		if cfg.Logger == nil {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		}
		logger = logger.Level(zerolog.DebugLevel)
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		transport:   transport,
		store:       cfg.Store,
		logger:      logger,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
	c.online.Store(true)
	c.executor = newRequestExecutor(c)
	c.restoreCredentials()
	return c, nil
}

// SetOnline flips the connectivity flag. While false, every request fails
// immediately with NoConnection and no transport attempt is made.
func (c *Client) SetOnline(online bool) {
	c.online.Store(online)
}

// Online reports the current connectivity flag.
func (c *Client) Online() bool {
	return c.online.Load()
}

// RateLimitInfo returns the most recent rate-limit headers the backend
// reported, or nil when none have been seen.
func (c *Client) RateLimitInfo() *RateLimitInfo {
	return c.limits.snapshot()
}

// Do runs one logical call described by req, decoding the response body
// into out (skipped when out is nil). Every failure is a typed *Error.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	return c.executor.execute(ctx, req, out)
}

// Request is the convenience form of Do used by the feature services.
func (c *Client) Request(ctx context.Context, method string, ep Endpoint, body, out any) error {
	return c.Do(ctx, &Request{Method: method, Endpoint: ep, Body: body}, out)
}
