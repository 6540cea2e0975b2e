package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/config"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		Aliases: []string{"au"},
		Short:   "Manage authentication credentials",
		Long:    "Configure and manage Teamwork API keys stored securely in your OS keychain.",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthProfilesCmd())
	cmd.AddCommand(newAuthSwitchCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		apiKey       string
		profile      string
		envFile      string
		bootstrapURL string
		noVerify     bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save an API key",
		Long: strings.TrimSpace(`
Save a Teamwork API key to your OS keychain.

The key is checked against the Teamwork authenticate endpoint, which also
tells the CLI which account URL to talk to. Use --no-verify to skip the check.

Your API key is under Profile > Edit My Details > API & Mobile in Teamwork.
`),
		Example: strings.TrimSpace(`
  # Save a key to the default profile
  tw auth login --api-key twp_abc123

  # Save to a named profile
  tw auth login --api-key twp_abc123 --profile work

  # Load TEAMWORK_API_KEY from a .env file
  tw auth login --env-file .env
`),
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				account, err := config.ReadEnvFile(envFile)
				if err != nil {
					if errors.Is(err, config.ErrNotConfigured) {
						return fmt.Errorf("--env-file %q has no TEAMWORK_API_KEY", envFile)
					}
					return fmt.Errorf("failed to read --env-file %q: %w", envFile, err)
				}
				if apiKey == "" {
					apiKey = account.APIKey
				}
				if bootstrapURL == "" {
					bootstrapURL = account.BootstrapURL
				}
			}

			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				return fmt.Errorf("--api-key is required")
			}

			account := config.Account{APIKey: apiKey, BootstrapURL: strings.TrimSpace(bootstrapURL)}

			if !noVerify {
				baseURL, err := verifyAPIKey(cmd.Context(), account)
				if err != nil {
					return err
				}
				account.BaseURL = baseURL
			}

			if err := config.SaveProfile(profile, account); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"saved":    true,
					"profile":  profile,
					"base_url": account.BaseURL,
				})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Authentication credentials saved successfully!")
			if account.BaseURL != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Account URL: %s\n", account.BaseURL)
			}
			if profile != "" && profile != "default" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Profile: %s\n", profile)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Teamwork API key")
	cmd.Flags().StringVar(&profile, "profile", "default", "Profile name to save credentials under")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Load TEAMWORK_API_KEY (and TEAMWORK_BOOTSTRAP_URL) from a .env file")
	cmd.Flags().StringVar(&bootstrapURL, "bootstrap-url", "", "Override the account discovery endpoint")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Save without checking the key")
	flagAlias(cmd.Flags(), "api-key", "key")
	flagAlias(cmd.Flags(), "profile", "pf")
	flagAlias(cmd.Flags(), "env-file", "env")

	return cmd
}

// verifyAPIKey runs the account lookup for account and returns the
// discovered base URL.
func verifyAPIKey(ctx context.Context, account config.Account) (string, error) {
	cfg := config.ClientConfig{APIKey: account.APIKey, BootstrapURL: account.BootstrapURL}
	client, err := newClientFactory().newClient(ctx, cfg)
	if err != nil {
		return "", err
	}
	if err := client.Ready(ctx); err != nil {
		return "", err
	}
	baseURL, _ := client.BaseURL()
	return baseURL, nil
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current authentication configuration",
		Long:  "Display the active API key source and profile. The key itself is masked.",
		Example: strings.TrimSpace(`
  tw auth status
  tw auth status --json
`),
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			usingEnv := strings.TrimSpace(os.Getenv("TEAMWORK_API_KEY")) != ""

			account, err := config.LoadAccount()
			if err != nil {
				if errors.Is(err, config.ErrNotConfigured) {
					if isJSON(cmd) {
						return printJSON(cmd, map[string]any{
							"authenticated": false,
							"message":       "Not authenticated. Run 'tw auth login' to configure credentials.",
						})
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not authenticated. Run 'tw auth login' to configure credentials.")
					return nil
				}
				return fmt.Errorf("failed to load credentials: %w", err)
			}

			source := "keychain"
			profile := ""
			if usingEnv {
				source = "environment"
			} else if profile, err = activeProfile(); err != nil {
				return err
			}

			if isJSON(cmd) {
				status := map[string]any{
					"authenticated": true,
					"source":        source,
					"api_key":       maskToken(account.APIKey),
				}
				if profile != "" {
					status["profile"] = profile
				}
				if account.BaseURL != "" {
					status["base_url"] = account.BaseURL
				}
				return printJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "Authenticated")
			_, _ = fmt.Fprintf(out, "  Source: %s\n", source)
			if profile != "" {
				_, _ = fmt.Fprintf(out, "  Profile: %s\n", profile)
			}
			_, _ = fmt.Fprintf(out, "  API key: %s\n", maskToken(account.APIKey))
			if account.BaseURL != "" {
				_, _ = fmt.Fprintf(out, "  Account URL: %s\n", account.BaseURL)
			}
			return nil
		}),
	}
}

func activeProfile() (string, error) {
	if profile := strings.TrimSpace(os.Getenv("TEAMWORK_PROFILE")); profile != "" {
		return profile, nil
	}
	return config.CurrentProfile()
}

func newAuthLogoutCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Example: strings.TrimSpace(`
  tw auth logout
  tw auth logout --profile work
`),
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if profile == "" {
				current, err := config.CurrentProfile()
				if err != nil {
					return err
				}
				profile = current
			}
			if err := config.DeleteProfile(profile); err != nil {
				return fmt.Errorf("failed to remove credentials: %w", err)
			}
			printAction(cmd, "Removed", "profile", profile)
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"removed": true, "profile": profile})
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Profile to remove (default: current profile)")
	flagAlias(cmd.Flags(), "profile", "pf")

	return cmd
}

// maskToken keeps the first and last four characters of long keys.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func newAuthProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List saved profiles",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}
			current, err := config.CurrentProfile()
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"current": current, "profiles": profiles})
			}
			if len(profiles) == 0 {
				formatter(cmd).Empty("No profiles saved. Run 'tw auth login' first.")
				return nil
			}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				marker := ""
				if p == current {
					marker = "*"
				}
				rows = append(rows, []string{marker, p})
			}
			return formatter(cmd).Table([]string{"CURRENT", "PROFILE"}, rows)
		}),
	}
}

func newAuthSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <profile>",
		Short: "Make a saved profile current",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			profile := strings.TrimSpace(args[0])
			if _, err := config.LoadProfile(profile); err != nil {
				if errors.Is(err, config.ErrNotConfigured) {
					return fmt.Errorf("profile %q not found", profile)
				}
				return err
			}
			if err := config.SetCurrentProfile(profile); err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"current": profile})
			}
			printAction(cmd, "Switched to", "profile", profile)
			return nil
		}),
	}
}
