package api

import "net/http"

// Get gets a single task list.
func (s TaskListsService) Get(taskListID any, params Params) *Outcome {
	return getResource(s, BuildPath("tasklists/{id}", map[string]any{"id": taskListID}), params)
}

// Project gets the task lists of a project.
func (s TaskListsService) Project(projectID any, params Params) *Outcome {
	return getResource(s, BuildPath("projects/{project_id}/tasklists", map[string]any{"project_id": projectID}), params)
}

// List gets all tasks across projects.
func (s TasksService) List(params Params) *Outcome {
	return getResource(s, "tasks", params)
}

// TaskList gets the tasks on a task list.
func (s TasksService) TaskList(taskListID any, params Params) *Outcome {
	return getResource(s, BuildPath("tasklists/{id}/tasks", map[string]any{"id": taskListID}), params)
}

// Project gets the tasks of a project.
func (s TasksService) Project(projectID any, params Params) *Outcome {
	return getResource(s, BuildPath("projects/{id}/tasks", map[string]any{"id": projectID}), params)
}

// Create adds a task to a task list. params is sent as the request body,
// usually {"todo-item": {...}}.
func (s TasksService) Create(taskListID any, params Params) *Outcome {
	return s.Execute(BuildPath("tasklists/{id}/tasks", map[string]any{"id": taskListID}), params, http.MethodPost)
}

// Complete marks a task complete.
func (s TasksService) Complete(taskID any) *Outcome {
	return s.Execute(BuildPath("tasks/{id}/complete", map[string]any{"id": taskID}), nil, http.MethodPut)
}
