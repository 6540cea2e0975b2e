package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/iocontext"
)

func newAPICmd() *cobra.Command {
	var (
		method         string
		fields         []string
		rawFields      []string
		inputFile      string
		jsonBody       string
		silent         bool
		includeHeaders bool
	)

	cmd := &cobra.Command{
		Use:     "api [method] <endpoint>",
		Aliases: []string{"ap"},
		Short:   "Make raw requests to any Teamwork endpoint",
		Long: strings.TrimSpace(`
Make raw requests to any Teamwork endpoint.

The endpoint is relative to your account URL and ".json" is added for you,
so "projects/123/tasks" requests <account-url>/projects/123/tasks.json.
Full URLs and protocol-relative URLs ("//host/path") are used as given.

GET fields become query parameters. Other methods send them as a JSON body.
`),
		Example: strings.TrimSpace(`
  # GET request (default)
  tw api projects

  # Method as the first argument
  tw api PUT tasks/123/complete

  # Query parameters
  tw api time_entries -f fromdate=20240101 -f todate=20240131

  # POST with a nested JSON field
  tw api POST tasklists/987/tasks -F 'todo-item={"content":"Ship it"}'

  # Inline JSON body, or read it from stdin
  tw api POST projects -d '{"project":{"name":"New"}}'
  echo '{"project":{"name":"New"}}' | tw api POST projects -i -
`),
		Args: cobra.RangeArgs(1, 2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			endpoint := args[0]
			if len(args) == 2 {
				if flagOrAliasChanged(cmd, "method") {
					return fmt.Errorf("method given both as argument and --method")
				}
				method, endpoint = args[0], args[1]
			}

			method = strings.ToUpper(strings.TrimSpace(method))
			switch method {
			case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
			default:
				return fmt.Errorf("invalid HTTP method %q: must be one of GET, POST, PUT, DELETE", method)
			}
			if jsonBody != "" && inputFile != "" {
				return fmt.Errorf("--body conflicts with --input")
			}

			body, err := buildRequestBody(cmd, fields, rawFields, inputFile, jsonBody)
			if err != nil {
				return err
			}

			client, _, err := getClient(cmd)
			if err != nil {
				return err
			}
			resp, err := client.ExecuteContext(cmd.Context(), endpoint, body, method).Wait(cmd.Context())
			if err != nil {
				return err
			}

			if silent {
				return nil
			}
			if isJSON(cmd) {
				return printJSON(cmd, apiJSONPayload(resp, includeHeaders))
			}

			out := cmd.OutOrStdout()
			if includeHeaders {
				_, _ = fmt.Fprintf(out, "HTTP %d\n", resp.StatusCode)
				keys := make([]string, 0, len(resp.Header))
				for k := range resp.Header {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					for _, v := range resp.Header[k] {
						_, _ = fmt.Fprintf(out, "%s: %s\n", k, v)
					}
				}
				_, _ = fmt.Fprintln(out)
			}
			if len(resp.Body) > 0 {
				if json.Valid(resp.Body) {
					return printJSON(cmd, json.RawMessage(resp.Body))
				}
				_, _ = fmt.Fprintln(out, string(resp.Body))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method (GET, POST, PUT, DELETE)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Parameter as key=value (string)")
	cmd.Flags().StringArrayVarP(&rawFields, "raw-field", "F", nil, "Parameter as key=value (JSON parsed)")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read parameters from a JSON file (use - for stdin)")
	cmd.Flags().StringVarP(&jsonBody, "body", "d", "", "Parameters as an inline JSON object")
	cmd.Flags().BoolVarP(&silent, "silent", "s", false, "Suppress output")
	cmd.Flags().BoolVar(&includeHeaders, "include", false, "Include response status and headers in output")
	flagAlias(cmd.Flags(), "include", "inc")

	return cmd
}

func apiJSONPayload(resp *api.Response, includeHeaders bool) any {
	var body any
	if len(resp.Body) > 0 {
		if json.Valid(resp.Body) {
			body = json.RawMessage(resp.Body)
		} else {
			body = string(resp.Body)
		}
	}
	if !includeHeaders {
		if body == nil {
			return map[string]any{}
		}
		return body
	}
	payload := map[string]any{
		"status":  resp.StatusCode,
		"headers": resp.Header,
		"body":    body,
	}
	if meta := resp.RateLimit().Meta(); meta != nil {
		payload["rate_limit"] = meta
	}
	return payload
}

// buildRequestBody merges --body or --input with -f and -F fields. Fields
// win over keys from the JSON object.
func buildRequestBody(cmd *cobra.Command, fields, rawFields []string, inputFile, jsonBody string) (api.Params, error) {
	body := api.Params{}

	if jsonBody != "" {
		if err := json.Unmarshal([]byte(jsonBody), &body); err != nil {
			return nil, fmt.Errorf("failed to parse --body JSON: %w", err)
		}
	}

	if inputFile != "" {
		var data []byte
		var err error
		if inputFile == "-" {
			data, err = io.ReadAll(iocontext.GetIO(cmd.Context()).In)
		} else {
			data, err = os.ReadFile(inputFile)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, fmt.Errorf("failed to parse input JSON: %w", err)
		}
	}

	for _, field := range fields {
		key, value, err := parseField(field)
		if err != nil {
			return nil, err
		}
		body[key] = value
	}
	for _, field := range rawFields {
		key, value, err := parseRawField(field)
		if err != nil {
			return nil, err
		}
		body[key] = value
	}

	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

// parseField parses a key=value field where value is a string
func parseField(field string) (string, string, error) {
	key, value, ok := strings.Cut(field, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid field format %q: must be key=value", field)
	}
	return key, value, nil
}

// parseRawField parses a key=value field where value is JSON. Values that
// are not valid JSON are kept as strings.
func parseRawField(field string) (string, any, error) {
	key, raw, ok := strings.Cut(field, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid raw field format %q: must be key=value", field)
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return key, raw, nil
	}
	return key, value, nil
}
