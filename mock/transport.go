// Package mock provides a scripted transport for exercising the client
// without a live backend. Responses are served FIFO from a stub queue and
// every outbound request is recorded for assertions.
package mock

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Stub is one scripted transport outcome: either an HTTP response or a
// transport-level error.
type Stub struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Err        error // returned instead of a response when non-nil
}

// RecordedRequest captures one outbound request as the transport saw it.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Transport implements carelink.Doer against a FIFO queue of stubs.
// When the queue is empty it answers 200 with an empty success envelope.
type Transport struct {
	mu       sync.Mutex
	queue    []Stub
	requests []RecordedRequest
}

// Enqueue appends stubs to the response queue.
func (t *Transport) Enqueue(stubs ...Stub) {
	t.mu.Lock()
	t.queue = append(t.queue, stubs...)
	t.mu.Unlock()
}

// EnqueueJSON appends a JSON response stub.
func (t *Transport) EnqueueJSON(statusCode int, body string) {
	t.Enqueue(Stub{StatusCode: statusCode, Body: body})
}

// EnqueueError appends a transport-level failure.
func (t *Transport) EnqueueError(err error) {
	t.Enqueue(Stub{Err: err})
}

// Requests returns a copy of everything sent so far.
func (t *Transport) Requests() []RecordedRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]RecordedRequest, len(t.requests))
	copy(out, t.requests)
	return out
}

// Do pops the next stub and serves it.
func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	t.mu.Lock()
	t.requests = append(t.requests, RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})

	stub := Stub{StatusCode: http.StatusOK, Body: `{"success":true,"data":{}}`}
	if len(t.queue) > 0 {
		stub = t.queue[0]
		t.queue = t.queue[1:]
	}
	t.mu.Unlock()

	if stub.Err != nil {
		return nil, stub.Err
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	for k, v := range stub.Headers {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode: stub.StatusCode,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(stub.Body))),
		Request:    req,
	}, nil
}
