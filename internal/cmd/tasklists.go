package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/resolve"
)

var taskListColumns = []column{
	{"ID", "id"},
	{"NAME", "name"},
	{"PROJECT", "projectName"},
	{"OPEN", "uncompleted-count"},
	{"COMPLETE", "complete"},
}

func newTaskListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasklists",
		Aliases: []string{"tasklist", "tl"},
		Short:   "List and inspect task lists",
	}

	cmd.AddCommand(newTaskListsListCmd())
	cmd.AddCommand(newTaskListsGetCmd())

	return cmd
}

func newTaskListsListCmd() *cobra.Command {
	var (
		project string
		status  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the task lists of a project",
		Example: strings.TrimSpace(`
  tw tasklists list --project 1234
  tw tasklists list --project "Website Redesign" --status completed
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if project == "" {
				return fmt.Errorf("--project is required")
			}
			client, cfg, err := getClient(cmd)
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(cmd, client, cfg.APIKey, project)
			if err != nil {
				return err
			}

			params := api.Params{}
			if status != "" {
				params["status"] = strings.ToLower(status)
			}
			resp, err := client.TaskLists().Project(projectID, params).Wait(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "tasklists", "task lists", taskListColumns)
		}),
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID or name (required)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: active|completed|all")
	flagAlias(cmd.Flags(), "project", "proj")

	return cmd
}

func newTaskListsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <tasklist-id>",
		Short: "Get a task list",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if !resolve.IsID(args[0]) {
				return fmt.Errorf("invalid argument %q: must be a numeric ID", args[0])
			}
			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.TaskLists().Get(args[0], nil)
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, resp, "todo-list", taskListColumns)
		}),
	}
}
