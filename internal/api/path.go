package api

import (
	"fmt"
	"sort"
	"strings"
)

// BuildPath substitutes "{key}" tokens in template with the bound values.
//
// Only the first occurrence of each token is replaced. Tokens with no binding
// are left as they are, and bindings with no token are ignored. Keys are
// applied in sorted order so the result does not depend on map iteration.
func BuildPath(template string, bindings map[string]any) string {
	if len(bindings) == 0 {
		return template
	}
	keys := make([]string, 0, len(bindings))
	for key := range bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	path := template
	for _, key := range keys {
		path = strings.Replace(path, "{"+key+"}", fmt.Sprint(bindings[key]), 1)
	}
	return path
}
