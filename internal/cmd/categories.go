package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/resolve"
)

var categoryColumns = []column{
	{"ID", "id"},
	{"NAME", "name"},
	{"PARENT", "parent-id"},
	{"ITEMS", "count"},
}

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "List message, file, notebook, link and project categories",
	}

	cmd.AddCommand(newCategoriesListCmd())
	cmd.AddCommand(newCategoriesGetCmd())

	return cmd
}

func validateCategoryKind(kind string) (string, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !slices.Contains(api.CategoryKinds(), kind) {
		return "", fmt.Errorf("unknown category kind %q (valid: %s)", kind, strings.Join(api.CategoryKinds(), ", "))
	}
	return kind, nil
}

func newCategoriesListCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "list <kind>",
		Aliases: []string{"ls"},
		Short:   "List categories of a kind",
		Long:    "Kinds: " + strings.Join(api.CategoryKinds(), ", ") + ". Every kind except project needs --project.",
		Example: strings.TrimSpace(`
  tw categories list message --project 1234
  tw categories list project
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			kind, err := validateCategoryKind(args[0])
			if err != nil {
				return err
			}
			if kind != "project" && project == "" {
				return fmt.Errorf("--project is required for %s categories", kind)
			}

			client, cfg, err := getClient(cmd)
			if err != nil {
				return err
			}

			var out *api.Outcome
			if kind == "project" {
				out = client.Categories().Projects(nil)
			} else {
				projectID, err := resolveProjectID(cmd, client, cfg.APIKey, project)
				if err != nil {
					return err
				}
				out = client.Categories().Project(kind, projectID, nil)
			}

			resp, err := out.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd, resp, "categories", kind+" categories", categoryColumns)
		}),
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID or name")
	flagAlias(cmd.Flags(), "project", "proj")

	return cmd
}

func newCategoriesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <category-id>",
		Short: "Get a single category",
		Args:  cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			kind, err := validateCategoryKind(args[0])
			if err != nil {
				return err
			}
			if !resolve.IsID(args[1]) {
				return fmt.Errorf("invalid argument %q: must be a numeric ID", args[1])
			}
			resp, err := fetch(cmd, func(c *api.Client) *api.Outcome {
				return c.Categories().Get(kind, args[1], nil)
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, resp, "category", categoryColumns)
		}),
	}
}
