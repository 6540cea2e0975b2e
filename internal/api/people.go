package api

// List gets all people visible to the API key.
func (s PeopleService) List(params Params) *Outcome {
	return getResource(s, "people", params)
}

// Project gets the people on a project.
func (s PeopleService) Project(projectID any, params Params) *Outcome {
	return getResource(s, BuildPath("projects/{project_id}/people", map[string]any{"project_id": projectID}), params)
}

// Company gets the people in a company.
func (s PeopleService) Company(companyID any, params Params) *Outcome {
	return getResource(s, BuildPath("companies/{company_id}/people", map[string]any{"company_id": companyID}), params)
}

// Get gets a single person.
func (s PeopleService) Get(personID any, params Params) *Outcome {
	return getResource(s, BuildPath("people/{person_id}", map[string]any{"person_id": personID}), params)
}

// APIKeys gets the API keys of all people (site administrators only).
func (s PeopleService) APIKeys(params Params) *Outcome {
	return getResource(s, "people/APIKeys", params)
}
