package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/iocontext"
	"github.com/teamwork/teamwork-cli/internal/resolve"
)

var taskColumns = []column{
	{"ID", "id"},
	{"TASK", "content"},
	{"LIST", "todo-list-name"},
	{"PROJECT", "project-name"},
	{"ASSIGNEE", "responsible-party-names"},
	{"DUE", "due-date"},
	{"PRIORITY", "priority"},
}

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "List and update tasks",
	}

	cmd.AddCommand(newTasksListCmd())
	cmd.AddCommand(newTasksCreateCmd())
	cmd.AddCommand(newTasksCompleteCmd())

	return cmd
}

func newTasksListCmd() *cobra.Command {
	var (
		project  string
		taskList string
		filter   string
		from     string
		to       string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Example: strings.TrimSpace(`
  tw tasks list
  tw tasks list --project "Website Redesign" --filter overdue
  tw tasks list --tasklist 987 --from monday --to friday
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if project != "" && taskList != "" {
				return fmt.Errorf("--project conflicts with --tasklist")
			}
			params := api.Params{}
			if filter != "" {
				params["filter"] = filter
			}
			if err := dateRangeParams(params, from, to, "startdate", "enddate"); err != nil {
				return err
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
				out = client.Tasks().Project(projectID, params)
			case taskList != "":
				if !resolve.IsID(taskList) {
					return fmt.Errorf("--tasklist must be a numeric ID")
				}
				out = client.Tasks().TaskList(taskList, params)
			default:
				out = client.Tasks().List(params)
			}

			resp, err := out.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "todo-items", "tasks", taskColumns)
		}),
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Only tasks in this project (ID or name)")
	cmd.Flags().StringVar(&taskList, "tasklist", "", "Only tasks on this task list ID")
	cmd.Flags().StringVar(&filter, "filter", "", "Server filter: all|anytime|overdue|today|tomorrow|thisweek|within7|within14|within30|within365|nodate|noduedate|completed")
	cmd.Flags().StringVar(&from, "from", "", "Start date (e.g. monday, 2024-01-31, 7d ago)")
	cmd.Flags().StringVar(&to, "to", "", "End date")
	flagAlias(cmd.Flags(), "project", "proj")
	flagAlias(cmd.Flags(), "tasklist", "tl")

	return cmd
}

func newTasksCreateCmd() *cobra.Command {
	var (
		taskList    string
		description string
		due         string
		priority    string
	)

	cmd := &cobra.Command{
		Use:   "create <content>",
		Short: "Add a task to a task list",
		Example: strings.TrimSpace(`
  tw tasks create "Write release notes" --tasklist 987 --due friday
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if !resolve.IsID(taskList) {
				return fmt.Errorf("--tasklist is required and must be a numeric ID")
			}
			item := map[string]any{"content": args[0]}
			if description != "" {
				item["description"] = description
			}
			if priority != "" {
				switch priority {
				case "low", "medium", "high":
					item["priority"] = priority
				default:
					return fmt.Errorf("--priority must be one of low, medium, high")
				}
			}
			if due != "" {
				date, err := parseDateFlag("due", due)
				if err != nil {
					return err
				}
				item["due-date"] = api.FormatDate(date)
			}

			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.Tasks().Create(taskList, api.Params{"todo-item": item})
			})
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printRaw(cmd, resp)
			}
			printAction(cmd, "Created", "task", resp.Get("id").String())
			return nil
		}),
	}

	cmd.Flags().StringVar(&taskList, "tasklist", "", "Task list ID (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (e.g. friday, 2024-01-31)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low|medium|high")
	flagAlias(cmd.Flags(), "tasklist", "tl")

	return cmd
}

func newTasksCompleteCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:   "complete <task-id>...",
		Short: "Mark tasks complete",
		Example: strings.TrimSpace(`
  tw tasks complete 111
  tw tasks complete 111 222,333
  tw tasks complete https://acme.teamwork.com/#/tasks/111
`),
		Args: cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(args, "task")
			if err != nil {
				return err
			}
			client, _, err := getClient(cmd)
			if err != nil {
				return err
			}

			streams := iocontext.GetIO(cmd.Context())
			results := runBulkOperation(cmd.Context(), ids, concurrency, len(ids) > 1 && !isJSON(cmd) && !flags.Quiet, streams.ErrOut,
				func(ctx context.Context, id string) (string, error) {
					if _, err := client.Tasks().Complete(id).Wait(ctx); err != nil {
						return "", err
					}
					return id, nil
				})

			success, failure := countResults(results)
			if isJSON(cmd) {
				if err := printJSON(cmd, map[string]any{
					"results":   results,
					"succeeded": success,
					"failed":    failure,
				}); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if r.Success {
						printAction(cmd, "Completed", "task", r.ID)
					} else {
						_, _ = fmt.Fprintf(streams.ErrOut, "%s: %s\n", r.ID, r.Message)
					}
				}
			}
			if failure > 0 {
				return fmt.Errorf("%d of %d tasks failed: %w", failure, len(results), firstFailure(results))
			}
			return nil
		}),
	}

	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Maximum concurrent requests")

	return cmd
}
