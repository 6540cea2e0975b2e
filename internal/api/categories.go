package api

import (
	"fmt"
	"sort"
)

// categoryKinds maps a category kind to its resource name.
var categoryKinds = map[string]string{
	"message":  "messageCategories",
	"file":     "fileCategories",
	"notebook": "notebookCategories",
	"link":     "linkCategories",
}

// CategoryKinds returns the category kinds accepted by Project and Get,
// plus "project" for project categories.
func CategoryKinds() []string {
	kinds := make([]string, 0, len(categoryKinds)+1)
	for kind := range categoryKinds {
		kinds = append(kinds, kind)
	}
	kinds = append(kinds, "project")
	sort.Strings(kinds)
	return kinds
}

// Get gets a single category of the given kind.
func (s CategoriesService) Get(kind string, categoryID any, params Params) *Outcome {
	if kind == "project" {
		return getResource(s, BuildPath("projectCategories/{id}", map[string]any{"id": categoryID}), params)
	}
	resource, err := categoryResource(kind)
	if err != nil {
		return failedOutcome(err)
	}
	return getResource(s, BuildPath(resource+"/{id}", map[string]any{"id": categoryID}), params)
}

// Project gets a project's categories of the given kind.
func (s CategoriesService) Project(kind string, projectID any, params Params) *Outcome {
	resource, err := categoryResource(kind)
	if err != nil {
		return failedOutcome(err)
	}
	return getResource(s, BuildPath("projects/{project_id}/"+resource, map[string]any{"project_id": projectID}), params)
}

// Projects gets the account's project categories.
func (s CategoriesService) Projects(params Params) *Outcome {
	return getResource(s, "projectCategories", params)
}

func categoryResource(kind string) (string, error) {
	resource, ok := categoryKinds[kind]
	if !ok {
		return "", fmt.Errorf("unknown category kind %q", kind)
	}
	return resource, nil
}

// failedOutcome returns an outcome that fails with err without sending.
func failedOutcome(err error) *Outcome {
	out := newOutcome()
	go out.settle(nil, err)
	return out
}
