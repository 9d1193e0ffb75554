// request_executor.go
// -------------------
// The requestExecutor runs the full lifecycle of one logical call:
// connectivity check, wire request assembly, transport send, status
// classification, bounded fixed-delay retries for transient failures, and
// the one-shot refresh-and-resend on the first 401. Retry state is local
// to a single call; a refresh resend does not consume an attempt slot.
package carelink

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type requestExecutor struct {
	client *Client
}

func newRequestExecutor(c *Client) *requestExecutor {
	return &requestExecutor{client: c}
}

func (re *requestExecutor) execute(ctx context.Context, req *Request, out any) error {
	c := re.client

	if !c.online.Load() {
		return newError(KindNoConnection, "device is offline", nil)
	}

	u, cerr := req.Endpoint.resolve(c.baseURL)
	if cerr != nil {
		return cerr
	}

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return newError(KindEncodingFailure, "cannot encode request body: "+err.Error(), err)
		}
	}

	requestID := uuid.NewString()
	log := c.logger.With().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.Endpoint.Path).
		Logger()

	attempt := 1
	refreshed := false
	for {
		httpReq, err := re.buildHTTPRequest(ctx, req, u, payload, requestID)
		if err != nil {
			return newError(KindInvalidURL, "cannot build request", err)
		}

		log.Debug().Int("attempt", attempt).Msg("sending request")
		resp, sendErr := re.send(httpReq)
		if sendErr != nil {
			if attempt < c.maxAttempts && transientKind(sendErr.Kind) {
				log.Debug().Err(sendErr).Int("attempt", attempt).Msg("transport failure, retrying")
				if werr := re.wait(ctx); werr != nil {
					return werr
				}
				attempt++
				continue
			}
			log.Debug().Err(sendErr).Msg("transport failure")
			return sendErr
		}

		c.limits.update(resp.Headers, time.Now())

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode <= 299:
			if derr := decodeBody(resp.Data, out); derr != nil {
				log.Debug().Err(derr).Msg("decode failed")
				return derr
			}
			log.Debug().Int("status", resp.StatusCode).Int("attempt", attempt).Msg("request succeeded")
			return nil

		case resp.StatusCode == http.StatusUnauthorized:
			if _, held := c.refreshToken(); held && !refreshed {
				if rerr := c.refreshCredentials(ctx); rerr != nil {
					log.Debug().Err(rerr).Msg("refresh failed, clearing credentials")
					c.ClearCredentials()
					return &Error{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Message: "session expired", Err: rerr}
				}
				// Resend with the fresh token; the one-time refresh
				// exception does not consume an attempt slot.
				refreshed = true
				log.Debug().Msg("retrying with refreshed token")
				continue
			}
			c.ClearCredentials()
			code, msg := serverMessage(resp.Data, resp.StatusCode)
			log.Debug().Msg("unauthorized, credentials cleared")
			return &Error{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Code: code, Message: msg}

		case resp.StatusCode == http.StatusForbidden:
			code, msg := serverMessage(resp.Data, resp.StatusCode)
			return &Error{Kind: KindForbidden, StatusCode: resp.StatusCode, Code: code, Message: msg}

		case resp.StatusCode == http.StatusNotFound:
			code, msg := serverMessage(resp.Data, resp.StatusCode)
			return &Error{Kind: KindNotFound, StatusCode: resp.StatusCode, Code: code, Message: msg}

		case resp.StatusCode == http.StatusTooManyRequests:
			// Never auto-retried; callers decide using the attached info.
			code, msg := serverMessage(resp.Data, resp.StatusCode)
			return &Error{
				Kind:       KindRateLimited,
				StatusCode: resp.StatusCode,
				Code:       code,
				Message:    msg,
				RateLimit:  c.limits.snapshot(),
			}

		case resp.StatusCode >= 500:
			if attempt < c.maxAttempts {
				log.Debug().Int("status", resp.StatusCode).Int("attempt", attempt).Msg("server error, retrying")
				if werr := re.wait(ctx); werr != nil {
					return werr
				}
				attempt++
				continue
			}
			code, msg := serverMessage(resp.Data, resp.StatusCode)
			log.Debug().Int("status", resp.StatusCode).Msg("server error, attempts exhausted")
			return &Error{Kind: KindServerError, StatusCode: resp.StatusCode, Code: code, Message: msg}

		default:
			code, msg := serverMessage(resp.Data, resp.StatusCode)
			return &Error{Kind: KindServerError, StatusCode: resp.StatusCode, Code: code, Message: msg}
		}
	}
}

// buildHTTPRequest assembles the wire request for one attempt: JSON
// headers, bearer token as held right now, then caller headers layered on
// top so they win on conflict.
func (re *requestExecutor) buildHTTPRequest(ctx context.Context, req *Request, u string, payload []byte, requestID string) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if access, ok := re.client.accessToken(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	return httpReq, nil
}

// send performs one transport round trip and drains the body.
func (re *requestExecutor) send(httpReq *http.Request) (*Response, *Error) {
	resp, err := re.client.transport.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindTransportFailure, "cannot read response body", err)
	}
	return &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Data: data}, nil
}

// wait sleeps the fixed retry delay, honoring context cancellation.
func (re *requestExecutor) wait(ctx context.Context) *Error {
	select {
	case <-ctx.Done():
		return classifyTransportError(ctx.Err())
	case <-time.After(re.client.retryDelay):
		return nil
	}
}

// transientKind reports whether a transport-level failure is worth an
// automatic retry: timeouts and lost/absent connections only.
func transientKind(kind ErrorKind) bool {
	return kind == KindTimeout || kind == KindNoConnection
}
