package api

import (
	"sync"

	list "github.com/bahlo/generic-list-go"
)

type gateState int

const (
	gateResolving gateState = iota
	gateResolved
	gateRejected
)

func (s gateState) String() string {
	switch s {
	case gateResolved:
		return "resolved"
	case gateRejected:
		return "rejected"
	default:
		return "resolving"
	}
}

// session is the per-client record of the account lookup.
// baseURL is set exactly once, when the lookup succeeds.
type session struct {
	baseURL string
	state   gateState
	err     error
}

// pendingAction is a send captured while the account lookup is in flight.
type pendingAction struct {
	send   func()
	reject func(error)
}

// authGate holds outgoing sends until the account base URL is known.
//
// The queue is detached under the lock and drained outside it, so a queued
// action may call Defer again. Sends issued while a drain is running see the
// gate as resolved and go out immediately.
type authGate struct {
	mu      sync.Mutex
	session session
	queue   *list.List[pendingAction]
}

func newAuthGate() *authGate {
	return &authGate{queue: list.New[pendingAction]()}
}

// Defer runs send now if the gate is resolved, calls reject with the lookup
// error if it was rejected, and queues both otherwise.
func (g *authGate) Defer(send func(), reject func(error)) {
	g.mu.Lock()
	switch g.session.state {
	case gateResolving:
		g.queue.PushBack(pendingAction{send: send, reject: reject})
		g.mu.Unlock()
	case gateRejected:
		err := g.session.err
		g.mu.Unlock()
		if reject != nil {
			reject(err)
		}
	default:
		g.mu.Unlock()
		send()
	}
}

// Resolve records baseURL and replays queued sends in the order they were
// deferred. It reports false, and does nothing, if the gate has already been
// resolved or rejected.
func (g *authGate) Resolve(baseURL string) bool {
	g.mu.Lock()
	if g.session.state != gateResolving {
		g.mu.Unlock()
		return false
	}
	g.session.baseURL = baseURL
	g.session.state = gateResolved
	pending := g.detach()
	g.mu.Unlock()

	for e := pending.Front(); e != nil; e = pending.Front() {
		action := pending.Remove(e)
		action.send()
	}
	return true
}

// Reject fails every queued send with err, in queue order, and makes later
// Defer calls fail the same way. It reports false if the gate had already
// been resolved or rejected.
func (g *authGate) Reject(err error) bool {
	g.mu.Lock()
	if g.session.state != gateResolving {
		g.mu.Unlock()
		return false
	}
	g.session.state = gateRejected
	g.session.err = err
	pending := g.detach()
	g.mu.Unlock()

	for e := pending.Front(); e != nil; e = pending.Front() {
		action := pending.Remove(e)
		if action.reject != nil {
			action.reject(err)
		}
	}
	return true
}

func (g *authGate) detach() *list.List[pendingAction] {
	pending := g.queue
	g.queue = list.New[pendingAction]()
	return pending
}

// BaseURL returns the resolved base URL, if any.
func (g *authGate) BaseURL() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.baseURL, g.session.state == gateResolved
}

// Pending returns the number of queued sends.
func (g *authGate) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.queue.Len()
}

func (g *authGate) State() gateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.state
}

func (g *authGate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.err
}
