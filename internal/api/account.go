package api

import "net/http"

// authenticatePath is the account discovery endpoint as a protocol-relative URL.
const authenticatePath = "//authenticate.teamworkpm.net/authenticate"

// getResource is the GET helper shared by the read-only resource calls.
func getResource(r Requester, endpoint string, params Params) *Outcome {
	return r.Execute(endpoint, params, http.MethodGet)
}

// Get gets the account details.
func (s AccountService) Get(params Params) *Outcome {
	return getResource(s, "account", params)
}

// Authentication calls the account discovery endpoint through the normal
// dispatch path. It does not depend on the account base URL.
func (s AccountService) Authentication(params Params) *Outcome {
	return getResource(s, authenticatePath, params)
}

// Me gets the person that owns the API key.
func (s AccountService) Me(params Params) *Outcome {
	return getResource(s, "me", params)
}
