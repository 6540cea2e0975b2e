package api

import (
	"errors"
	"reflect"
	"testing"
)

func TestAuthGate_FIFOReplay(t *testing.T) {
	g := newAuthGate()
	var order []string
	for _, name := range []string{"A", "B", "C"} {
		name := name
		g.Defer(func() { order = append(order, name) }, nil)
	}

	if len(order) != 0 {
		t.Fatalf("actions ran before resolve: %v", order)
	}
	if g.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", g.Pending())
	}

	if !g.Resolve("https://acct.example.com/") {
		t.Fatal("Resolve() = false on first call")
	}

	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if g.Pending() != 0 {
		t.Errorf("Pending() = %d after drain", g.Pending())
	}
	if base, ok := g.BaseURL(); !ok || base != "https://acct.example.com/" {
		t.Errorf("BaseURL() = %q, %v", base, ok)
	}
}

func TestAuthGate_ResolveIsIdempotent(t *testing.T) {
	g := newAuthGate()
	runs := 0
	g.Defer(func() { runs++ }, nil)

	g.Resolve("https://first.example.com/")
	if g.Resolve("https://second.example.com/") {
		t.Error("second Resolve() = true")
	}

	if runs != 1 {
		t.Errorf("action ran %d times, want 1", runs)
	}
	if base, _ := g.BaseURL(); base != "https://first.example.com/" {
		t.Errorf("BaseURL() = %q, second Resolve must not overwrite", base)
	}
}

func TestAuthGate_DeferAfterResolveRunsImmediately(t *testing.T) {
	g := newAuthGate()
	g.Resolve("https://acct.example.com/")

	ran := false
	g.Defer(func() { ran = true }, nil)
	if !ran {
		t.Error("Defer after Resolve did not run synchronously")
	}
}

func TestAuthGate_DeferDuringDrainRunsImmediately(t *testing.T) {
	g := newAuthGate()
	var order []string
	g.Defer(func() {
		order = append(order, "A")
		g.Defer(func() { order = append(order, "A-child") }, nil)
	}, nil)
	g.Defer(func() { order = append(order, "B") }, nil)

	g.Resolve("https://acct.example.com/")

	if want := []string{"A", "A-child", "B"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestAuthGate_RejectFailsQueueInOrder(t *testing.T) {
	g := newAuthGate()
	boom := errors.New("lookup failed")
	var rejected []string
	sent := false
	for _, name := range []string{"A", "B"} {
		name := name
		g.Defer(func() { sent = true }, func(err error) {
			if !errors.Is(err, boom) {
				t.Errorf("reject got %v", err)
			}
			rejected = append(rejected, name)
		})
	}

	if !g.Reject(boom) {
		t.Fatal("Reject() = false on first call")
	}

	if sent {
		t.Error("send ran after reject")
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(rejected, want) {
		t.Errorf("rejected = %v, want %v", rejected, want)
	}
	if g.State() != gateRejected {
		t.Errorf("State() = %v", g.State())
	}

	var late error
	g.Defer(func() { sent = true }, func(err error) { late = err })
	if !errors.Is(late, boom) || sent {
		t.Errorf("Defer after Reject: late=%v sent=%v", late, sent)
	}

	if g.Resolve("https://acct.example.com/") {
		t.Error("Resolve() after Reject = true")
	}
}

func TestAuthGate_RejectAfterResolveIsNoop(t *testing.T) {
	g := newAuthGate()
	g.Resolve("https://acct.example.com/")
	if g.Reject(errors.New("late")) {
		t.Error("Reject() after Resolve = true")
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v", g.Err())
	}
}
