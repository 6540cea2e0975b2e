package api

import "context"

// Requester is the dispatch surface the resource helpers depend on.
//
// Resource helpers only build endpoint paths and parameters, so tests can
// drive them with a stub that records what would have been sent:
//
//	type recordingRequester struct{ endpoints []string }
//	func (r *recordingRequester) Execute(endpoint string, _ Params, _ string) *Outcome { ... }
type Requester interface {
	Execute(endpoint string, params Params, method string) *Outcome
	ExecuteContext(ctx context.Context, endpoint string, params Params, method string) *Outcome
}
