package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"
)

// fakeTransport records every send and holds its completion until the test
// calls complete.
type fakeTransport struct {
	mu       sync.Mutex
	requests []*Request
	pending  []func(*Response, error)
}

func (f *fakeTransport) Send(_ context.Context, req *Request, done func(*Response, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.pending = append(f.pending, done)
}

func (f *fakeTransport) sent() []*Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Request(nil), f.requests...)
}

func (f *fakeTransport) complete(t *testing.T, i int, resp *Response, err error) {
	t.Helper()
	f.mu.Lock()
	if i >= len(f.pending) {
		f.mu.Unlock()
		t.Fatalf("no send #%d (have %d)", i, len(f.pending))
	}
	done := f.pending[i]
	f.mu.Unlock()
	done(resp, err)
}

func jsonResponse(body string) *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

func accountResponse(baseURL string) *Response {
	return jsonResponse(`{"STATUS":"OK","account":{"URL":"` + baseURL + `","id":"1"}}`)
}

// newFakeClient returns a client whose bootstrap is send #0 on the returned
// transport, still unanswered.
func newFakeClient(t *testing.T, key string) (*Client, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{}
	c, err := New(key, WithTransport(ft))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c, ft
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}
