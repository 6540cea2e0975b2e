package api

// Latest gets the latest activity across all projects.
func (s ActivityService) Latest(params Params) *Outcome {
	return getResource(s, "latestActivity", params)
}

// Project gets the latest activity for one project.
func (s ActivityService) Project(projectID any, params Params) *Outcome {
	return getResource(s, BuildPath("projects/{project_id}/latestActivity", map[string]any{"project_id": projectID}), params)
}
