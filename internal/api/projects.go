package api

import "net/http"

// List gets all projects.
func (s ProjectsService) List(params Params) *Outcome {
	return getResource(s, "projects", params)
}

// Get gets a single project.
func (s ProjectsService) Get(projectID any, params Params) *Outcome {
	return getResource(s, BuildPath("projects/{id}", map[string]any{"id": projectID}), params)
}

// Create creates a project. params is sent as the request body.
func (s ProjectsService) Create(params Params) *Outcome {
	return s.Execute("projects", params, http.MethodPost)
}

// Update updates a project.
func (s ProjectsService) Update(projectID any, params Params) *Outcome {
	return s.Execute(BuildPath("projects/{id}", map[string]any{"id": projectID}), params, http.MethodPut)
}

// Delete deletes a project.
func (s ProjectsService) Delete(projectID any) *Outcome {
	return s.Execute(BuildPath("projects/{id}", map[string]any{"id": projectID}), nil, http.MethodDelete)
}
