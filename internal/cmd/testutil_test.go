package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/99designs/keyring"

	"github.com/teamwork/teamwork-cli/internal/config"
	"github.com/teamwork/teamwork-cli/internal/iocontext"
)

const testAPIKey = "twp_test_key_123456"

// recordedRequest is what the fake Teamwork server saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// routeHandler routes "METHOD /path" to canned handlers and records every
// request. Unknown routes get a 404.
type routeHandler struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
}

func newRouteHandler() *routeHandler {
	return &routeHandler{routes: map[string]http.HandlerFunc{}}
}

func (h *routeHandler) On(method, path string, handler http.HandlerFunc) *routeHandler {
	h.routes[method+" "+path] = handler
	return h
}

func (h *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	h.mu.Lock()
	h.requests = append(h.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	handler, ok := h.routes[r.Method+" "+r.URL.Path]
	h.mu.Unlock()

	if !ok {
		jsonResponse(http.StatusNotFound, `{"MESSAGE":"Not found"}`)(w, r)
		return
	}
	handler(w, r)
}

// find returns the recorded requests for method and path.
func (h *routeHandler) find(method, path string) []recordedRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []recordedRequest
	for _, r := range h.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// setupTestEnvWithHandler starts a fake Teamwork server whose authenticate
// endpoint points the client back at itself, and configures the CLI to use
// it through the environment.
func setupTestEnvWithHandler(t *testing.T, handler *routeHandler) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	handler.On("GET", "/authenticate.json", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(http.StatusOK, `{"account":{"id":"1","URL":"`+server.URL+`/","name":"Acme"}}`)(w, r)
	})
	server = httptest.NewServer(handler)
	t.Cleanup(server.Close)

	isolateHome(t)
	t.Setenv("TEAMWORK_API_KEY", testAPIKey)
	t.Setenv("TEAMWORK_BOOTSTRAP_URL", server.URL+"/authenticate")
	return server
}

// isolateHome points HOME at an empty directory so ~/.teamwork/.env is
// never read from the developer machine.
func isolateHome(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TW_CACHE_DIR", home+"/cache")
}

// withFreshKeyring gives the test its own empty in-memory keyring.
func withFreshKeyring(t *testing.T) {
	t.Helper()
	ring := keyring.NewArrayKeyring(nil)
	restore := config.SetOpenKeyring(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	})
	t.Cleanup(restore)
}

// runCmd executes the CLI with buffered streams.
func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return runCmdWithInput(t, "", args...)
}

func runCmdWithInput(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ctx := iocontext.WithIO(context.Background(), &iocontext.IO{
		Out:    &out,
		ErrOut: &errOut,
		In:     strings.NewReader(input),
	})
	err = Execute(ctx, args)
	return out.String(), errOut.String(), err
}
