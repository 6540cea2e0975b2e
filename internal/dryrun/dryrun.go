// Package dryrun previews write requests instead of sending them.
package dryrun

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/teamwork/teamwork-cli/internal/api"
)

type contextKey string

const dryRunKey contextKey = "dry_run_enabled"

// WithDryRun returns a context with dry-run mode enabled/disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey, enabled)
}

// IsEnabled returns true if dry-run mode is enabled.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(dryRunKey).(bool); ok {
		return v
	}
	return false
}

// Preview describes a request that was not sent.
type Preview struct {
	Method   string
	URL      string
	Details  map[string]any
	Warnings []string
}

// Write outputs the preview to the writer. Details are printed in key order.
func (p *Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n[DRY-RUN] Would %s %s\n", p.Method, p.URL)
	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")

	if len(p.Details) > 0 {
		keys := make([]string, 0, len(p.Details))
		for k := range p.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "  %s: %v\n", k, p.Details[k])
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(p.Warnings) > 0 {
		_, _ = fmt.Fprintln(w, "Warnings:")
		for _, warning := range p.Warnings {
			_, _ = fmt.Fprintf(w, "  ! %s\n", warning)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")
	_, _ = fmt.Fprintln(w, "No changes made (dry-run mode)")
}

// Transport wraps another transport. GET requests pass through; anything
// else is written to Out as a Preview and completes with an empty 200 reply.
type Transport struct {
	Next api.Transport
	Out  io.Writer

	mu sync.Mutex
}

var _ api.Transport = (*Transport)(nil)

// Wrap returns next wrapped in a dry-run Transport writing previews to out.
func Wrap(next api.Transport, out io.Writer) *Transport {
	return &Transport{Next: next, Out: out}
}

func (t *Transport) Send(ctx context.Context, req *api.Request, done func(*api.Response, error)) {
	if req.Method == http.MethodGet {
		t.Next.Send(ctx, req, done)
		return
	}

	p := &Preview{Method: req.Method, URL: req.URL, Details: map[string]any{}}
	for k, v := range req.Params {
		p.Details[k] = v
	}
	if req.Method == http.MethodDelete {
		p.Warnings = append(p.Warnings, "This action is irreversible")
	}

	t.mu.Lock()
	p.Write(t.Out)
	t.mu.Unlock()

	go done(&api.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"X-Dry-Run": []string{"true"}},
		Body:       []byte(`{"STATUS":"OK","dryRun":true}`),
	}, nil)
}
