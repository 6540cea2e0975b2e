// Package urlparse extracts resource IDs from Teamwork web URLs.
package urlparse

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// ParsedURL is a Teamwork web link broken into its parts.
type ParsedURL struct {
	BaseURL      string
	ResourceType string // singular: project, task, tasklist, person, ...
	ResourceID   string // empty when the link has no ID
}

// Plural path segment to resource type.
var resourceTypes = map[string]string{
	"projects":  "project",
	"tasks":     "task",
	"tasklists": "tasklist",
	"people":    "person",
	"messages":  "message",
	"notebooks": "notebook",
	"links":     "link",
	"files":     "file",
}

// routePattern matches the route part of a web link, such as
// "/projects/123/tasks" or "/tasks/456".
var routePattern = regexp.MustCompile(`^/([a-z]+)(?:/(\d+))?(?:/.*)?$`)

// Parse extracts the resource from a Teamwork link. Both the hash router
// form (https://acme.teamwork.com/#/projects/123) and the /app form
// (https://acme.teamwork.com/app/projects/123/tasks) are accepted.
func Parse(rawURL string) (*ParsedURL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("invalid URL: missing scheme (expected https://...)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q: expected http or https", parsed.Scheme)
	}

	route := parsed.Path
	if strings.HasPrefix(parsed.Fragment, "/") {
		route = parsed.Fragment
		if i := strings.IndexByte(route, '?'); i >= 0 {
			route = route[:i]
		}
	}
	route = strings.TrimPrefix(route, "/app")

	matches := routePattern.FindStringSubmatch(route)
	if matches == nil {
		return nil, fmt.Errorf("invalid Teamwork URL: expected /#/{resource}/{id} or /app/{resource}/{id}")
	}

	resourceType, ok := resourceTypes[matches[1]]
	if !ok {
		valid := make([]string, 0, len(resourceTypes))
		for k := range resourceTypes {
			valid = append(valid, k)
		}
		sort.Strings(valid)
		return nil, fmt.Errorf("unsupported resource type %q: expected one of %s", matches[1], strings.Join(valid, ", "))
	}

	return &ParsedURL{
		BaseURL:      fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host),
		ResourceType: resourceType,
		ResourceID:   matches[2],
	}, nil
}

// HasResourceID returns true if the parsed URL includes a resource ID.
func (p *ParsedURL) HasResourceID() bool {
	return p.ResourceID != ""
}

// IsURL reports whether s looks like an http(s) link rather than an ID or name.
func IsURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// ResourceID returns the ID of a link to resourceType.
func ResourceID(rawURL, resourceType string) (string, error) {
	parsed, err := Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.ResourceType != resourceType {
		return "", fmt.Errorf("URL points to a %s, not a %s", parsed.ResourceType, resourceType)
	}
	if !parsed.HasResourceID() {
		return "", fmt.Errorf("URL has no %s ID", resourceType)
	}
	return parsed.ResourceID, nil
}
