package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

// updateChecker is replaced in tests.
var updateChecker = update.Checker{}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			result := updateChecker.Check(cmd.Context(), version)

			if isJSON(cmd) {
				payload := map[string]any{"version": version}
				if result != nil {
					payload["latest_version"] = result.LatestVersion
					payload["update_available"] = result.UpdateAvailable
					if result.UpdateAvailable {
						payload["update_url"] = result.UpdateURL
					}
				}
				return printJSON(cmd, payload)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "teamwork-cli version %s\n", version)
			if result != nil && result.UpdateAvailable {
				errOut := cmd.ErrOrStderr()
				_, _ = fmt.Fprintf(errOut, "\nUpdate available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
				_, _ = fmt.Fprintf(errOut, "Download: %s\n", result.UpdateURL)
			}
			return nil
		}),
	}
}
