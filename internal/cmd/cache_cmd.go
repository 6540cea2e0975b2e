package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local lookup cache",
		Long:  "The project list used to resolve --project names is cached for a few minutes per API key.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached lookups",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			dir := resolveCacheDir()
			if dir == "" {
				return fmt.Errorf("no cache directory available")
			}
			cache.ClearAll(dir)
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"cleared": true, "dir": dir})
			}
			printAction(cmd, "Cleared", "cache", dir)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			dir := resolveCacheDir()
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"dir": dir})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		}),
	})

	return cmd
}
