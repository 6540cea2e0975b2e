package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second

	// DefaultBootstrapURL is the account discovery endpoint. Its reply
	// carries the account's own base URL under account.URL.
	DefaultBootstrapURL = "https://authenticate.teamworkpm.net/authenticate"

	// Teamwork accepts any password when the API key is the username.
	placeholderPassword = "xxx"
)

// Client is the Teamwork API client.
//
// New starts the account lookup right away. Requests issued before the
// lookup finishes are held and sent, in the order they were issued, once the
// base URL is known. If the lookup fails, every held request and every later
// request fails with a *BootstrapError.
type Client struct {
	apiKey       string
	authHeader   string
	transport    Transport
	userAgent    string
	bootstrapURL string
	ctx          context.Context
	logger       *slog.Logger
	gate         *authGate
	bootstrap    *Outcome
}

// Compile-time interface implementation check
var _ Requester = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport. Passing nil is a configuration error.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithHTTPClient uses hc through the default HTTP transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.transport = &HTTPTransport{HTTP: hc} }
}

// WithTimeout sets the timeout of the default HTTP transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.transport = NewHTTPTransport(d) }
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBootstrapURL overrides the account discovery endpoint.
func WithBootstrapURL(u string) Option {
	return func(c *Client) { c.bootstrapURL = u }
}

// WithContext sets the context used by Execute and its shortcuts.
func WithContext(ctx context.Context) Option {
	return func(c *Client) { c.ctx = ctx }
}

// WithLogger sets the logger for account lookup events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for apiKey and starts the account lookup.
func New(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		apiKey:       apiKey,
		transport:    NewHTTPTransport(DefaultTimeout),
		bootstrapURL: DefaultBootstrapURL,
		ctx:          context.Background(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if strings.TrimSpace(c.apiKey) == "" {
		return nil, &ConfigError{Field: "api key", Reason: "is required"}
	}
	if c.transport == nil {
		return nil, &ConfigError{Field: "transport", Reason: "is required"}
	}
	if strings.TrimSpace(c.bootstrapURL) == "" {
		return nil, &ConfigError{Field: "bootstrap URL", Reason: "is required"}
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(c.apiKey+":"+placeholderPassword))
	c.gate = newAuthGate()
	c.bootstrap = c.authenticate()
	return c, nil
}

// authenticate sends the account lookup straight to the transport, bypassing
// the gate, and resolves or rejects the gate with its result.
func (c *Client) authenticate() *Outcome {
	out := newOutcome()
	out.OnSuccess(func(resp *Response) {
		baseURL := strings.TrimSpace(resp.Get("account.URL").String())
		if baseURL == "" {
			c.reject(ErrMissingAccountURL)
			return
		}
		c.logger.Debug("account resolved", "base_url", baseURL, "queued", c.gate.Pending())
		c.gate.Resolve(baseURL)
	})
	out.OnFailure(c.reject)

	req, err := c.prepare(http.MethodGet, nil)
	if err != nil {
		go out.settle(nil, err)
		return out
	}
	req.URL = resolveURL("", c.bootstrapURL)
	c.transport.Send(c.ctx, req, out.settle)
	return out
}

func (c *Client) reject(cause error) {
	c.logger.Warn("account lookup failed", "error", cause, "queued", c.gate.Pending())
	c.gate.Reject(&BootstrapError{Err: cause})
}

// Bootstrap returns the outcome of the account lookup.
func (c *Client) Bootstrap() *Outcome {
	return c.bootstrap
}

// Ready blocks until the account lookup has finished, returning the
// *BootstrapError if it failed.
func (c *Client) Ready(ctx context.Context) error {
	select {
	case <-c.bootstrap.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return c.gate.Err()
}

// BaseURL returns the account base URL once it is known.
func (c *Client) BaseURL() (string, bool) {
	return c.gate.BaseURL()
}

// Pending returns the number of requests waiting for the account lookup.
func (c *Client) Pending() int {
	return c.gate.Pending()
}

// Execute dispatches a request and returns its outcome immediately.
//
// endpoint is a resource path such as "projects/42/tasks", or a full URL
// ("https://..." or "//host/..."), which is used without the base URL. A
// ".json" suffix is added. GET params go in the query string; other methods
// send them as a JSON body. The send itself waits for the account lookup.
func (c *Client) Execute(endpoint string, params Params, method string) *Outcome {
	return c.ExecuteContext(c.ctx, endpoint, params, method)
}

// ExecuteContext is Execute with an explicit context for the send.
func (c *Client) ExecuteContext(ctx context.Context, endpoint string, params Params, method string) *Outcome {
	method = strings.ToUpper(strings.TrimSpace(method))
	req, err := c.prepare(method, params)
	if err != nil {
		return failedOutcome(err)
	}
	out := newOutcome()
	query := ""
	if req.Method == http.MethodGet {
		query = encodeQuery(req.Params)
	}

	c.gate.Defer(func() {
		baseURL, _ := c.gate.BaseURL()
		req.URL = resolveURL(baseURL, endpoint)
		if query != "" {
			req.URL += "?" + query
		}
		c.transport.Send(ctx, req, out.settle)
	}, func(err error) {
		go out.settle(nil, err)
	})
	return out
}

// prepare builds everything about a request except its URL.
func (c *Client) prepare(method string, params Params) (*Request, error) {
	if method == "" {
		method = http.MethodGet
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	req := &Request{
		Method: method,
		Header: http.Header{},
		Params: coerceParams(params),
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if method != http.MethodGet && len(req.Params) > 0 {
		body, err := json.Marshal(req.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.Body = body
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// resolveURL joins baseURL and endpoint and adds the ".json" suffix.
// Endpoints that already carry a scheme, or start with "//", skip the base.
func resolveURL(baseURL, endpoint string) string {
	target := endpoint
	if !strings.HasSuffix(target, ".json") {
		target += ".json"
	}
	if strings.HasPrefix(target, "//") {
		return "https:" + target
	}
	if hasScheme(target) {
		return target
	}
	if baseURL == "" {
		return target
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(target, "/")
}

func hasScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// Get dispatches a GET request.
func (c *Client) Get(endpoint string, params Params) *Outcome {
	return c.Execute(endpoint, params, http.MethodGet)
}

// Post dispatches a POST request with params as the JSON body.
func (c *Client) Post(endpoint string, params Params) *Outcome {
	return c.Execute(endpoint, params, http.MethodPost)
}

// Put dispatches a PUT request with params as the JSON body.
func (c *Client) Put(endpoint string, params Params) *Outcome {
	return c.Execute(endpoint, params, http.MethodPut)
}

// Delete dispatches a DELETE request with params as the JSON body.
func (c *Client) Delete(endpoint string, params Params) *Outcome {
	return c.Execute(endpoint, params, http.MethodDelete)
}
