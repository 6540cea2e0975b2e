package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/iocontext"
)

var projectColumns = []column{
	{"ID", "id"},
	{"NAME", "name"},
	{"STATUS", "status"},
	{"COMPANY", "company.name"},
	{"CATEGORY", "category.name"},
	{"UPDATED", "last-changed-on"},
}

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "proj", "p"},
		Short:   "List and inspect projects",
	}

	cmd.AddCommand(newProjectsListCmd())
	cmd.AddCommand(newProjectsGetCmd())

	return cmd
}

func newProjectsListCmd() *cobra.Command {
	var (
		status     string
		updatedAft string
		category   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Example: strings.TrimSpace(`
  tw projects list
  tw projects list --status archived
  tw projects list --json --jq '.projects[].name'
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			params := api.Params{}
			if status != "" {
				switch strings.ToUpper(status) {
				case "ALL", "ACTIVE", "ARCHIVED":
					params["status"] = strings.ToUpper(status)
				default:
					return fmt.Errorf("--status must be one of all, active, archived")
				}
			}
			if category != "" {
				params["catId"] = category
			}
			if updatedAft != "" {
				date, err := parseDateFlag("updated-after", updatedAft)
				if err != nil {
					return err
				}
				params["updatedAfterDate"] = date
			}

			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.Projects().List(params)
			})
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "projects", "projects", projectColumns)
		}),
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: all|active|archived")
	cmd.Flags().StringVar(&category, "category", "", "Filter by project category ID")
	cmd.Flags().StringVar(&updatedAft, "updated-after", "", "Only projects changed since this date (e.g. 7d ago, 2024-01-31)")
	flagAlias(cmd.Flags(), "status", "st")

	return cmd
}

func newProjectsGetCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:   "get <id-or-name>...",
		Short: "Get one or more projects",
		Long:  "Fetch projects by ID. Several IDs are fetched concurrently. A single argument may also be a project name.",
		Example: strings.TrimSpace(`
  tw projects get 1234
  tw projects get 1234 5678,9012
  tw projects get "Website Redesign"
  tw projects get https://acme.teamwork.com/#/projects/1234
`),
		Args: cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			client, cfg, err := getClient(cmd)
			if err != nil {
				return err
			}

			if len(args) == 1 && len(splitCommaList(args[0])) == 1 {
				projectID, err := resolveProjectID(cmd, client, cfg.APIKey, args[0])
				if err != nil {
					return err
				}
				resp, err := client.Projects().Get(projectID, nil).Wait(cmd.Context())
				if err != nil {
					return err
				}
				return printRecord(cmd, resp, "project", projectColumns)
			}

			ids, err := parseIDArgs(args, "project")
			if err != nil {
				return err
			}
			streams := iocontext.GetIO(cmd.Context())
			results := runBulkOperation(cmd.Context(), ids, concurrency, false, streams.ErrOut,
				func(ctx context.Context, id string) (gjson.Result, error) {
					resp, err := client.Projects().Get(id, nil).Wait(ctx)
					if err != nil {
						return gjson.Result{}, err
					}
					return resp.Get("project"), nil
				})
			return printBulkResults(cmd, results, projectColumns)
		}),
	}

	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Maximum concurrent requests")

	return cmd
}

// printBulkResults prints successful records as a table and failures on
// stderr. It returns an error when any ID failed.
func printBulkResults(cmd *cobra.Command, results []BulkResult, columns []column) error {
	success, failure := countResults(results)

	if isJSON(cmd) {
		items := make([]map[string]any, 0, len(results))
		for _, r := range results {
			item := map[string]any{"id": r.ID, "success": r.Success}
			if r.Success {
				if rec, ok := r.Data.(gjson.Result); ok {
					item["data"] = rec.Value()
				}
			} else {
				item["error"] = r.Message
			}
			items = append(items, item)
		}
		if err := printJSON(cmd, map[string]any{
			"results":   items,
			"succeeded": success,
			"failed":    failure,
		}); err != nil {
			return err
		}
	} else {
		headers := make([]string, len(columns))
		for i, c := range columns {
			headers[i] = c.Header
		}
		var rows [][]string
		streams := iocontext.GetIO(cmd.Context())
		for _, r := range results {
			if !r.Success {
				_, _ = fmt.Fprintf(streams.ErrOut, "%s: %s\n", r.ID, r.Message)
				continue
			}
			rec, _ := r.Data.(gjson.Result)
			row := make([]string, len(columns))
			for i, c := range columns {
				row[i] = cell(rec.Get(c.Path))
			}
			rows = append(rows, row)
		}
		if len(rows) > 0 {
			if err := formatter(cmd).Table(headers, rows); err != nil {
				return err
			}
		}
	}

	if failure > 0 {
		first := firstFailure(results)
		return fmt.Errorf("%d of %d requests failed: %w", failure, len(results), first)
	}
	return nil
}

func firstFailure(results []BulkResult) error {
	for _, r := range results {
		if !r.Success {
			return r.Error
		}
	}
	return nil
}
