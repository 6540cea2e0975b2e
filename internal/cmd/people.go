package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/resolve"
)

var personColumns = []column{
	{"ID", "id"},
	{"FIRST", "first-name"},
	{"LAST", "last-name"},
	{"EMAIL", "email-address"},
	{"COMPANY", "company-name"},
	{"TITLE", "title"},
}

func newPeopleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "people",
		Aliases: []string{"person", "ppl"},
		Short:   "List and inspect people",
	}

	cmd.AddCommand(newPeopleListCmd())
	cmd.AddCommand(newPeopleGetCmd())
	cmd.AddCommand(newPeopleAPIKeysCmd())

	return cmd
}

func newPeopleListCmd() *cobra.Command {
	var (
		project string
		company string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List people",
		Example: strings.TrimSpace(`
  tw people list
  tw people list --project 1234
  tw people list --company 55
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if project != "" && company != "" {
				return fmt.Errorf("--project conflicts with --company")
			}
			client, cfg, err := getClient(cmd)
			if err != nil {
				return err
			}

			var out *api.Outcome
			switch {
			case project != "":
				projectID, err := resolveProjectID(cmd, client, cfg.APIKey, project)
				if err != nil {
					return err
				}
				out = client.People().Project(projectID, nil)
			case company != "":
				if !resolve.IsID(company) {
					return fmt.Errorf("--company must be a numeric ID")
				}
				out = client.People().Company(company, nil)
			default:
				out = client.People().List(nil)
			}

			resp, err := out.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "people", "people", personColumns)
		}),
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Only people on this project (ID or name)")
	cmd.Flags().StringVar(&company, "company", "", "Only people in this company ID")
	flagAlias(cmd.Flags(), "project", "proj")

	return cmd
}

func newPeopleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <person-id>",
		Short: "Get a person",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if !resolve.IsID(args[0]) {
				return fmt.Errorf("invalid argument %q: must be a numeric ID", args[0])
			}
			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.People().Get(args[0], nil)
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, resp, "person", personColumns)
		}),
	}
}

func newPeopleAPIKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "api-keys",
		Short: "List everyone's API keys (site administrators only)",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.People().APIKeys(nil)
			})
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "people", "people", []column{
				{"ID", "id"},
				{"NAME", "name"},
				{"API KEY", "APIKey"},
			})
		}),
	}
}
