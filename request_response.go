// request_response.go
// -------------------
// Value types exchanged with the executor, plus the dual-path body decoder.
// The backend is inconsistent about wrapping payloads in the
// {success, data, error, metadata} envelope, so decoding tries the envelope
// first and falls back to the bare shape; callers must never assume either
// shape exclusively.
package carelink

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Request describes one logical outbound call. Each attempt (retry or
// post-refresh resend) rebuilds the wire request from this descriptor with
// a fresh Authorization header.
type Request struct {
	Method   string
	Endpoint Endpoint
	Headers  map[string]string // layered on top of the client's defaults
	Body     any               // JSON-encoded when non-nil
}

// Response is the raw classified transport result of one attempt.
type Response struct {
	StatusCode int
	Headers    http.Header
	Data       []byte
}

// ErrorBody is the error half of the backend envelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// envelope mirrors the backend success wrapper. Success is a pointer so an
// absent key distinguishes a bare payload from an enveloped one.
type envelope struct {
	Success  *bool           `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorBody      `json:"error"`
	Metadata json.RawMessage `json:"metadata"`
}

// decodeBody unmarshals a 2xx body into out. Envelope shape wins when the
// body is an object carrying a "success" key; anything else decodes as the
// bare payload. A nil out skips decoding entirely.
func decodeBody(data []byte, out any) *Error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return newError(KindNoData, "empty response body", nil)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Success != nil {
		if !*env.Success {
			msg := "request failed"
			code := ""
			if env.Error != nil {
				msg = env.Error.Message
				code = env.Error.Code
			}
			return &Error{Kind: KindUnknown, Code: code, Message: msg}
		}
		if len(bytes.TrimSpace(env.Data)) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
			return newError(KindNoData, "envelope carried no data", nil)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return newError(KindDecodingFailure, "cannot decode envelope data: "+err.Error(), err)
		}
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return newError(KindDecodingFailure, "cannot decode response body: "+err.Error(), err)
	}
	return nil
}

// serverMessage extracts a human-readable message from a non-2xx body,
// preferring the error envelope and falling back to the status text.
func serverMessage(data []byte, statusCode int) (code, message string) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return env.Error.Code, env.Error.Message
	}
	return "", http.StatusText(statusCode)
}
