package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
)

var accountColumns = []column{
	{"ID", "id"},
	{"NAME", "name"},
	{"URL", "URL"},
	{"COMPANY", "companyname"},
	{"PLAN", "plan-id"},
}

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"acct"},
		Short:   "Show account details",
	}

	cmd.AddCommand(newAccountGetCmd())
	cmd.AddCommand(newAccountMeCmd())
	cmd.AddCommand(newAccountAuthenticateCmd())

	return cmd
}

// fetch creates a client and waits for the outcome of call.
func fetch(cmd *cobra.Command, call func(client *api.Client) *api.Outcome) (*api.Response, error) {
	client, _, err := getClient(cmd)
	if err != nil {
		return nil, err
	}
	return call(client).Wait(cmd.Context())
}

func newAccountGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Get account details",
		Example: strings.TrimSpace(`
  tw account get
  tw account get --jq '.account.URL'
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.Account().Get(nil)
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, resp, "account", accountColumns)
		}),
	}
}

func newAccountMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the person that owns the API key",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.Account().Me(nil)
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, resp, "person", personColumns)
		}),
	}
}

func newAccountAuthenticateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "authenticate",
		Short: "Call the account discovery endpoint",
		Long:  "Query authenticate.teamworkpm.net with the current key. The reply names the account URL every other command talks to.",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.Account().Authentication(nil)
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, resp, "account", accountColumns)
		}),
	}
}
