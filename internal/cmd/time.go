package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/cli"
)

var timeEntryColumns = []column{
	{"ID", "id"},
	{"DATE", "date"},
	{"HOURS", "hours"},
	{"MINUTES", "minutes"},
	{"PERSON", "person-first-name"},
	{"PROJECT", "project-name"},
	{"TASK", "todo-item-name"},
	{"DESCRIPTION", "description"},
}

// now is replaced in tests.
var now = time.Now

func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "time",
		Aliases: []string{"time-entries", "te"},
		Short:   "List logged time",
	}

	cmd.AddCommand(newTimeListCmd())

	return cmd
}

func newTimeListCmd() *cobra.Command {
	var (
		project  string
		from     string
		to       string
		billable string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List time entries",
		Example: strings.TrimSpace(`
  tw time list --from "last monday" --to today
  tw time list --project 1234 --from 2024-01-01 --to 2024-01-31
  tw time list --from "7d ago" --json --jq '[.["time-entries"][].hours | tonumber] | add'
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			params := api.Params{}
			if err := dateRangeParams(params, from, to, "fromdate", "todate"); err != nil {
				return err
			}
			switch billable {
			case "":
			case "billable", "nonbillable", "all":
				params["billableType"] = billable
			default:
				return fmt.Errorf("--billable must be one of billable, nonbillable, all")
			}

			client, cfg, err := getClient(cmd)
			if err != nil {
				return err
			}

			var out *api.Outcome
			if project != "" {
				projectID, err := resolveProjectID(cmd, client, cfg.APIKey, project)
				if err != nil {
					return err
				}
				out = client.TimeEntries().Project(projectID, params)
			} else {
				out = client.TimeEntries().List(params)
			}

			resp, err := out.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "time-entries", "time entries", timeEntryColumns)
		}),
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Only entries in this project (ID or name)")
	cmd.Flags().StringVar(&from, "from", "", "Start date (e.g. yesterday, 2024-01-31, 2w ago)")
	cmd.Flags().StringVar(&to, "to", "", "End date")
	cmd.Flags().StringVar(&billable, "billable", "", "Filter: billable|nonbillable|all")
	flagAlias(cmd.Flags(), "project", "proj")

	return cmd
}

// parseDateFlag parses a relative or absolute date flag value.
func parseDateFlag(name, value string) (time.Time, error) {
	t, err := cli.ParseDate(value, now())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date for --%s: %w", name, err)
	}
	return t, nil
}

// dateRangeParams sets fromKey/toKey from --from/--to. Dates are sent as
// YYYYMMDD by the client.
func dateRangeParams(params api.Params, from, to, fromKey, toKey string) error {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = parseDateFlag("from", from); err != nil {
			return err
		}
		params[fromKey] = start
	}
	if to != "" {
		if end, err = parseDateFlag("to", to); err != nil {
			return err
		}
		params[toKey] = end
	}
	if from != "" && to != "" && end.Before(start) {
		return fmt.Errorf("--to must be on or after --from")
	}
	return nil
}
