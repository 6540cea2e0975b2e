package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
)

var activityColumns = []column{
	{"ID", "id"},
	{"DATE", "datetime"},
	{"TYPE", "activitytype"},
	{"ITEM", "type"},
	{"USER", "fromusername"},
	{"DESCRIPTION", "description"},
}

func newActivityCmd() *cobra.Command {
	var (
		project  string
		maxItems int
		onlyStar bool
	)

	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Show latest activity",
		Example: strings.TrimSpace(`
  # Latest activity across all projects
  tw activity

  # Latest activity for one project, by ID or name
  tw activity --project "Website Redesign" --max 20
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := getClient(cmd)
			if err != nil {
				return err
			}

			params := api.Params{}
			if maxItems > 0 {
				params["maxItems"] = maxItems
			}
			if onlyStar {
				params["onlyStarred"] = true
			}

			var out *api.Outcome
			if project != "" {
				projectID, err := resolveProjectID(cmd, client, cfg.APIKey, project)
				if err != nil {
					return err
				}
				out = client.Activity().Project(projectID, params)
			} else {
				out = client.Activity().Latest(params)
			}

			resp, err := out.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "activity", "activity", activityColumns)
		}),
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID or name")
	cmd.Flags().IntVar(&maxItems, "max", 0, "Maximum number of items (default: server default)")
	cmd.Flags().BoolVar(&onlyStar, "starred", false, "Only starred projects")
	flagAlias(cmd.Flags(), "project", "proj")

	return cmd
}
