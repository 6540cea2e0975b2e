package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/config"
)

func TestExitCode(t *testing.T) {
	netErr := &url.Error{Op: "Get", URL: "https://authenticate.teamworkpm.net/authenticate.json", Err: errors.New("connection refused")}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"help", pflag.ErrHelp, exitOK},
		{"handled keeps its code", &handledError{err: errors.New("x"), exitCode: exitServer}, exitServer},
		{"not configured", fmt.Errorf("load: %w", config.ErrNotConfigured), exitAuth},
		{"401", &api.APIError{StatusCode: 401}, exitAuth},
		{"bootstrap rejected", &api.BootstrapError{Err: &api.APIError{StatusCode: 401}}, exitAuth},
		{"bootstrap missing url", &api.BootstrapError{Err: api.ErrMissingAccountURL}, exitAuth},
		{"bootstrap offline", &api.BootstrapError{Err: fmt.Errorf("request failed: %w", netErr)}, exitNetwork},
		{"403", &api.APIError{StatusCode: 403}, exitForbidden},
		{"404", &api.APIError{StatusCode: 404}, exitNotFound},
		{"422", &api.APIError{StatusCode: 422}, exitUsage},
		{"429", &api.APIError{StatusCode: 429}, exitRateLimited},
		{"503", &api.APIError{StatusCode: 503}, exitServer},
		{"config", &api.ConfigError{Field: "api key", Reason: "is required"}, exitUsage},
		{"timeout", fmt.Errorf("request failed: %w", context.DeadlineExceeded), exitNetwork},
		{"usage text", errors.New("--tasklist is required"), exitUsage},
		{"link to wrong resource", errors.New("URL points to a task, not a project"), exitUsage},
		{"network text", errors.New("dial tcp: lookup acme.teamwork.com: no such host"), exitNetwork},
		{"generic", errors.New("boom"), exitGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
