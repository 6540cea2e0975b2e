package api

// List gets time entries across all projects.
// Date params such as fromdate/todate accept time.Time values.
func (s TimeEntriesService) List(params Params) *Outcome {
	return getResource(s, "time_entries", params)
}

// Project gets the time entries of a project.
func (s TimeEntriesService) Project(projectID any, params Params) *Outcome {
	return getResource(s, BuildPath("projects/{project_id}/time_entries", map[string]any{"project_id": projectID}), params)
}
