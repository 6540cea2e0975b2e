package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/teamwork/teamwork-cli/internal/api"
	"github.com/teamwork/teamwork-cli/internal/cache"
	"github.com/teamwork/teamwork-cli/internal/config"
	"github.com/teamwork/teamwork-cli/internal/iocontext"
	"github.com/teamwork/teamwork-cli/internal/outfmt"
	"github.com/teamwork/teamwork-cli/internal/resolve"
	"github.com/teamwork/teamwork-cli/internal/urlparse"
)

// getJQQuery returns the active jq expression; --jq wins over --query.
func getJQQuery() string {
	if flags.JQ != "" {
		return flags.JQ
	}
	return flags.Query
}

// getClient creates an API client from stored credentials. The account
// lookup starts immediately.
func getClient(cmd *cobra.Command) (*api.Client, config.ClientConfig, error) {
	return newClientFactory().account(cmd.Context())
}

func isJSON(cmd *cobra.Command) bool {
	return outfmt.IsJSON(cmd.Context())
}

func formatter(cmd *cobra.Command) *outfmt.Formatter {
	streams := iocontext.GetIO(cmd.Context())
	return outfmt.NewFormatter(cmd.Context(), streams.Out, streams.ErrOut)
}

// printJSON outputs data as JSON with optional query filtering
func printJSON(cmd *cobra.Command, v any) error {
	streams := iocontext.GetIO(cmd.Context())
	return outfmt.WriteJSONFiltered(streams.Out, v, outfmt.GetQuery(cmd.Context()), outfmt.IsCompact(cmd.Context()))
}

func printJSONErr(cmd *cobra.Command, v any) error {
	streams := iocontext.GetIO(cmd.Context())
	return outfmt.WriteJSON(streams.ErrOut, v, outfmt.IsCompact(cmd.Context()))
}

// printRaw writes a reply body unchanged apart from query filtering.
func printRaw(cmd *cobra.Command, resp *api.Response) error {
	if resp == nil || len(resp.Body) == 0 {
		return printJSON(cmd, map[string]any{})
	}
	return printJSON(cmd, json.RawMessage(resp.Body))
}

func printAction(cmd *cobra.Command, action, resource, id string) {
	if flags.Quiet || isJSON(cmd) {
		return
	}
	streams := iocontext.GetIO(cmd.Context())
	message := fmt.Sprintf("%s %s", action, resource)
	if id != "" {
		message += " " + id
	}
	_, _ = fmt.Fprintln(streams.Out, message)
}

// column maps a table header to a gjson path inside one record.
type column struct {
	Header string
	Path   string
}

// printRecords renders the array under key as a table, or the whole reply
// in JSON mode.
func printRecords(cmd *cobra.Command, resp *api.Response, key, noun string, columns []column) error {
	if isJSON(cmd) {
		return printRaw(cmd, resp)
	}
	records := resp.Get(key)
	items := records.Array()
	if !records.IsArray() && records.Exists() {
		items = []gjson.Result{records}
	}
	f := formatter(cmd)
	if len(items) == 0 {
		f.Empty(fmt.Sprintf("No %s found", noun))
		return nil
	}
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = cell(item.Get(c.Path))
		}
		rows = append(rows, row)
	}
	return f.Table(headers, rows)
}

// printRecord renders one object under key as FIELD/VALUE pairs.
func printRecord(cmd *cobra.Command, resp *api.Response, key string, columns []column) error {
	if isJSON(cmd) {
		return printRaw(cmd, resp)
	}
	record := resp.Get(key)
	rows := make([][]string, 0, len(columns))
	for _, c := range columns {
		rows = append(rows, []string{c.Header, cell(record.Get(c.Path))})
	}
	return formatter(cmd).Table([]string{"FIELD", "VALUE"}, rows)
}

func cell(v gjson.Result) string {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}

func resolveCacheDir() string {
	if dir := os.Getenv("TW_CACHE_DIR"); dir != "" {
		return dir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return ""
	}
	return dir
}

// resolveProjectID accepts a numeric ID, a project link or a project name.
// Names are fuzzy matched against the project list, which is cached per API key.
func resolveProjectID(cmd *cobra.Command, client *api.Client, apiKey, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", fmt.Errorf("project is required")
	}
	if resolve.IsID(identifier) {
		return identifier, nil
	}
	if urlparse.IsURL(identifier) {
		return urlparse.ResourceID(identifier, "project")
	}

	var store *cache.Store
	if dir := resolveCacheDir(); dir != "" {
		store = cache.NewStore(dir, "projects", apiKey)
	}

	var projects []resolve.Named
	if store == nil || !store.Get(&projects) {
		resp, err := client.Projects().List(nil).Wait(cmd.Context())
		if err != nil {
			return "", fmt.Errorf("failed to list projects: %w", err)
		}
		projects = namedRecords(resp.Get("projects"))
		if store != nil {
			store.Put(projects)
		}
	}

	id, err := resolve.FuzzyMatch(identifier, projects)
	if err != nil {
		if errors.Is(err, resolve.ErrEmptyItems) {
			return "", fmt.Errorf("no project matches %q", identifier)
		}
		return "", err
	}
	return id, nil
}

func namedRecords(list gjson.Result) []resolve.Named {
	var out []resolve.Named
	for _, item := range list.Array() {
		id := item.Get("id").String()
		if id == "" {
			continue
		}
		out = append(out, resolve.Named{ID: id, Name: item.Get("name").String()})
	}
	return out
}

func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	var out []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// parseIDArgs flattens "1 2,3" style arguments into numeric IDs. Links to
// resourceType are accepted in place of an ID.
func parseIDArgs(args []string, resourceType string) ([]string, error) {
	var ids []string
	for _, arg := range args {
		for _, id := range splitCommaList(arg) {
			if urlparse.IsURL(id) {
				parsed, err := urlparse.ResourceID(id, resourceType)
				if err != nil {
					return nil, fmt.Errorf("invalid argument %q: %w", id, err)
				}
				id = parsed
			}
			if !resolve.IsID(id) {
				return nil, fmt.Errorf("invalid argument %q: must be a numeric ID", id)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one ID is required")
	}
	return ids, nil
}

// aliasBridgeValue marks the canonical flag as Changed when the alias is set.
type aliasBridgeValue struct {
	pflag.Value
	canonical *pflag.Flag
}

func (v *aliasBridgeValue) Set(s string) error {
	if err := v.Value.Set(s); err != nil {
		return err
	}
	v.canonical.Changed = true
	return nil
}

// flagAlias registers a hidden alias for an existing flag. Both names share
// one Value.
func flagAlias(fs *pflag.FlagSet, name, alias string) {
	f := fs.Lookup(name)
	if f == nil {
		panic(fmt.Sprintf("flagAlias: flag %q not found", name))
	}
	a := *f
	a.Name = alias
	a.Shorthand = ""
	a.Usage = ""
	a.Hidden = true
	a.Value = &aliasBridgeValue{Value: f.Value, canonical: f}
	a.Annotations = map[string][]string{"alias-of": {name}}
	fs.AddFlag(&a)
}

// flagOrAliasChanged returns true if the named flag or any of its
// hidden aliases was explicitly set by the user.
func flagOrAliasChanged(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) || cmd.InheritedFlags().Changed(name) {
		return true
	}
	aliasChanged := func(fs *pflag.FlagSet) bool {
		found := false
		fs.VisitAll(func(f *pflag.Flag) {
			if ann, ok := f.Annotations["alias-of"]; ok && len(ann) > 0 && ann[0] == name && fs.Changed(f.Name) {
				found = true
			}
		})
		return found
	}
	return aliasChanged(cmd.Flags()) || aliasChanged(cmd.InheritedFlags())
}

// errAlreadyHandled signals that RunE already printed the error.
var errAlreadyHandled = errors.New("error already handled")

type handledError struct {
	err      error
	exitCode int
}

func (e *handledError) Error() string {
	return e.err.Error()
}

func (e *handledError) Unwrap() error {
	return errAlreadyHandled
}

// Cause returns the original command error.
func (e *handledError) Cause() error {
	return e.err
}

// RunE wraps a command function with enhanced error handling
func RunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		if isJSON(cmd) {
			if structured := api.StructuredErrorFromError(err); structured != nil {
				_ = printJSONErr(cmd, structured)
			}
		} else {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), HandleError(err))
		}
		return &handledError{err: err, exitCode: ExitCode(err)}
	}
}
