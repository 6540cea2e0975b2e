package api

import (
	"context"
	"sync"
)

// Outcome is the result handle for one dispatched request.
//
// Callbacks are grouped into three one-shot channels: success, failure and
// complete. When the request settles, the matching channel (success or
// failure) runs first, then complete. Every callback runs at most once, in
// registration order, on the goroutine that delivered the result.
//
// Known limitation: a callback registered after the outcome has settled is
// dropped and never runs. Callers that cannot guarantee registration before
// the response arrives should use Wait or Done instead.
type Outcome struct {
	mu       sync.Mutex
	success  []func(*Response)
	failure  []func(error)
	complete []func(*Response, error)
	settled  bool
	resp     *Response
	err      error
	done     chan struct{}
}

func newOutcome() *Outcome {
	return &Outcome{done: make(chan struct{})}
}

// OnSuccess registers fn to run with the response when the request succeeds.
func (o *Outcome) OnSuccess(fn func(*Response)) *Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.settled && fn != nil {
		o.success = append(o.success, fn)
	}
	return o
}

// OnFailure registers fn to run with the error when the request fails.
func (o *Outcome) OnFailure(fn func(error)) *Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.settled && fn != nil {
		o.failure = append(o.failure, fn)
	}
	return o
}

// OnComplete registers fn to run after the success or failure callbacks,
// whichever way the request settled.
func (o *Outcome) OnComplete(fn func(*Response, error)) *Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.settled && fn != nil {
		o.complete = append(o.complete, fn)
	}
	return o
}

// Done is closed once the outcome has settled and its callbacks have run.
func (o *Outcome) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the outcome settles or ctx is done.
// It must not be called from one of the outcome's own callbacks.
func (o *Outcome) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-o.done:
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.resp, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Decode waits for the outcome and unmarshals the response body into v.
func (o *Outcome) Decode(ctx context.Context, v any) error {
	resp, err := o.Wait(ctx)
	if err != nil {
		return err
	}
	return resp.Decode(v)
}

// settle records the result and fires the callbacks. Only the first call has
// any effect; every channel is exhausted afterwards.
func (o *Outcome) settle(resp *Response, err error) {
	o.mu.Lock()
	if o.settled {
		o.mu.Unlock()
		return
	}
	o.settled = true
	o.resp, o.err = resp, err
	success, failure, complete := o.success, o.failure, o.complete
	o.success, o.failure, o.complete = nil, nil, nil
	o.mu.Unlock()

	if err != nil {
		for _, fn := range failure {
			fn(err)
		}
	} else {
		for _, fn := range success {
			fn(resp)
		}
	}
	for _, fn := range complete {
		fn(resp, err)
	}
	close(o.done)
}
