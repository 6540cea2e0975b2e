package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/teamwork/teamwork-cli/internal/debug"
)

// Request is a fully prepared outgoing call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Params are the coerced parameters; for GET they are already encoded
	// into URL, otherwise they are marshaled into Body.
	Params Params
	Body   []byte
}

// Response is a successful (2xx) reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 || v == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
	}
	return nil
}

// Get looks up a gjson path in the JSON body, e.g. "account.URL".
func (r *Response) Get(path string) gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Body, path)
}

// Transport delivers prepared requests. Send must call done exactly once,
// with either a response or an error, and may do so on another goroutine.
type Transport interface {
	Send(ctx context.Context, req *Request, done func(*Response, error))
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request, done func(*Response, error))

func (f TransportFunc) Send(ctx context.Context, req *Request, done func(*Response, error)) {
	f(ctx, req, done)
}

// HTTPTransport is the default Transport, backed by net/http.
// Each Send runs on its own goroutine.
type HTTPTransport struct {
	HTTP *http.Client
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport returns a transport with TLS 1.2+ and the given timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12
	transport.TLSClientConfig.InsecureSkipVerify = false

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPTransport{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Send performs the request asynchronously.
func (t *HTTPTransport) Send(ctx context.Context, req *Request, done func(*Response, error)) {
	go func() {
		done(t.RoundTrip(ctx, req))
	}()
}

// RoundTrip performs the request synchronously. Non-2xx replies are returned
// as *APIError. There is no retry.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	client := t.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		if debug.IsEnabled(ctx) {
			slog.Debug("request failed", "method", req.Method, "url", req.URL, "error", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if debug.IsEnabled(ctx) {
		slog.Debug("request complete", "method", req.Method, "url", req.URL, "status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       sanitizeErrorBody(string(respBody)),
			RequestID:  requestIDFromHeader(resp.Header),
			RateLimit:  parseRateLimitInfo(resp.Header, time.Now()),
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func requestIDFromHeader(header http.Header) string {
	if header == nil {
		return ""
	}
	if id := header.Get("X-Request-Id"); id != "" {
		return id
	}
	return header.Get("X-Amzn-Trace-Id")
}

// sanitizeErrorBody extracts a safe error message from an API error reply
// without echoing arbitrary response content.
func sanitizeErrorBody(body string) string {
	if !gjson.Valid(body) {
		return "API request failed (response body redacted for security)"
	}
	parsed := gjson.Parse(body)
	for _, key := range []string{"MESSAGE", "message", "error"} {
		if msg := parsed.Get(key).String(); msg != "" {
			return msg
		}
	}
	if errs := parsed.Get("errors"); errs.IsArray() {
		var lines []string
		for _, e := range errs.Array() {
			if s := e.String(); s != "" {
				lines = append(lines, "  "+s)
			}
		}
		if len(lines) > 0 {
			return "Validation errors:\n" + strings.Join(lines, "\n")
		}
	}
	return "API request failed (response body redacted for security)"
}
