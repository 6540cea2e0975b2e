package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/config"
	"github.com/teamwork/teamwork-cli/internal/dryrun"
	"github.com/teamwork/teamwork-cli/internal/iocontext"
)

type clientFactory struct {
	timeout   time.Duration
	userAgent string
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		timeout:   flags.Timeout,
		userAgent: fmt.Sprintf("teamwork-cli/%s", version),
	}
}

func (f *clientFactory) account(ctx context.Context) (*api.Client, config.ClientConfig, error) {
	cfg, err := config.ResolveClientConfig()
	if err != nil {
		return nil, config.ClientConfig{}, err
	}
	client, err := f.newClient(ctx, cfg)
	if err != nil {
		return nil, config.ClientConfig{}, err
	}
	return client, cfg, nil
}

func (f *clientFactory) newClient(ctx context.Context, cfg config.ClientConfig) (*api.Client, error) {
	var transport api.Transport = api.NewHTTPTransport(f.timeout)
	if dryrun.IsEnabled(ctx) {
		transport = dryrun.Wrap(transport, iocontext.GetIO(ctx).ErrOut)
	}
	opts := []api.Option{
		api.WithTransport(transport),
		api.WithContext(ctx),
		api.WithLogger(slog.Default()),
	}
	if f.userAgent != "" {
		opts = append(opts, api.WithUserAgent(f.userAgent))
	}
	if cfg.BootstrapURL != "" {
		opts = append(opts, api.WithBootstrapURL(cfg.BootstrapURL))
	}
	return api.New(cfg.APIKey, opts...)
}
