package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/config"
	"github.com/teamwork/teamwork-cli/internal/resolve"
)

// HandleError processes an error and returns a user-friendly message with suggestions
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	var apiErr *api.APIError
	var bootErr *api.BootstrapError
	var cfgErr *api.ConfigError
	var ambErr *resolve.AmbiguousError

	switch {
	case errors.Is(err, config.ErrNotConfigured):
		msg.WriteString("Not logged in.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: tw auth login --api-key <key>\n")
		msg.WriteString("  - Or export TEAMWORK_API_KEY\n")

	case errors.As(err, &bootErr):
		fmt.Fprintf(&msg, "Could not find your Teamwork account: %v\n\n", bootErr.Err)
		msg.WriteString("Suggestions:\n")
		if api.IsAuthError(err) {
			msg.WriteString("  - Your API key may be invalid or revoked\n")
		}
		if errors.Is(err, api.ErrMissingAccountURL) {
			msg.WriteString("  - The authenticate reply had no account URL; check TEAMWORK_BOOTSTRAP_URL\n")
		}
		msg.WriteString("  - Run: tw auth login\n")
		msg.WriteString("  - Check your network connection\n")

	case errors.As(err, &apiErr):
		fmt.Fprintf(&msg, "API error (HTTP %d): %s\n\n", apiErr.StatusCode, apiErr.Body)
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode, apiErr.Body))
		if apiErr.RateLimit != nil && apiErr.RateLimit.ResetAt != nil {
			fmt.Fprintf(&msg, "  - Rate limit resets at %s\n", apiErr.RateLimit.ResetAt.Local().Format(time.Kitchen))
		}
		if apiErr.RequestID != "" {
			fmt.Fprintf(&msg, "\nRequest ID: %s\n", apiErr.RequestID)
		}

	case errors.As(err, &cfgErr):
		fmt.Fprintf(&msg, "Error: %s\n", cfgErr.Error())

	case errors.As(err, &ambErr):
		fmt.Fprintf(&msg, "Error: %s\n\n", ambErr.Error())
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Pass the numeric ID instead of a name\n")

	case strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check your network connection\n")
		msg.WriteString("  - Verify the account URL: tw account get\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check your DNS settings\n")
		msg.WriteString("  - Verify TEAMWORK_BOOTSTRAP_URL if you set one\n")

	case strings.Contains(err.Error(), "certificate"):
		msg.WriteString("TLS certificate error.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Verify the server's SSL certificate\n")
		msg.WriteString("  - Ensure you're using https:// correctly\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int, body string) string {
	var suggestions strings.Builder
	suggestions.WriteString("Suggestions:\n")

	switch code {
	case 400:
		suggestions.WriteString("  - Check your request parameters\n")
		suggestions.WriteString("  - Use --debug to see the full request\n")
		if strings.Contains(strings.ToLower(body), "required") {
			suggestions.WriteString("  - A required field may be missing\n")
		}

	case 401:
		suggestions.WriteString("  - Your API key may be invalid or revoked\n")
		suggestions.WriteString("  - Run: tw auth login\n")

	case 403:
		suggestions.WriteString("  - You don't have permission for this action\n")
		suggestions.WriteString("  - Some endpoints are limited to site administrators\n")

	case 404:
		suggestions.WriteString("  - The resource doesn't exist\n")
		suggestions.WriteString("  - Check the ID is correct\n")

	case 422:
		suggestions.WriteString("  - Validation failed\n")
		suggestions.WriteString("  - Check your input values\n")

	case 429:
		suggestions.WriteString("  - Too many requests\n")
		suggestions.WriteString("  - Wait and retry in a few seconds\n")

	case 500, 502, 503, 504:
		suggestions.WriteString("  - Server error - not your fault\n")
		suggestions.WriteString("  - Wait and retry\n")

	default:
		suggestions.WriteString("  - Use --debug for more details\n")
	}

	return suggestions.String()
}
