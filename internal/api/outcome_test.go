package api

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestOutcome_SuccessOrder(t *testing.T) {
	out := newOutcome()
	var calls []string
	out.OnSuccess(func(*Response) { calls = append(calls, "success-1") }).
		OnComplete(func(*Response, error) { calls = append(calls, "complete") }).
		OnFailure(func(error) { calls = append(calls, "failure") }).
		OnSuccess(func(*Response) { calls = append(calls, "success-2") })

	out.settle(jsonResponse(`{}`), nil)

	want := []string{"success-1", "success-2", "complete"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestOutcome_FailurePassesError(t *testing.T) {
	out := newOutcome()
	boom := errors.New("boom")
	var gotFailure, gotComplete error
	out.OnFailure(func(err error) { gotFailure = err })
	out.OnComplete(func(resp *Response, err error) {
		if resp != nil {
			t.Error("complete got a response on failure")
		}
		gotComplete = err
	})

	out.settle(nil, boom)

	if !errors.Is(gotFailure, boom) || !errors.Is(gotComplete, boom) {
		t.Errorf("failure=%v complete=%v, want boom", gotFailure, gotComplete)
	}
}

func TestOutcome_SettlesOnce(t *testing.T) {
	out := newOutcome()
	count := 0
	out.OnSuccess(func(*Response) { count++ })
	out.OnFailure(func(error) { count += 100 })

	out.settle(jsonResponse(`{}`), nil)
	out.settle(nil, errors.New("late"))
	out.settle(jsonResponse(`{}`), nil)

	if count != 1 {
		t.Errorf("callbacks ran %d times, want 1", count)
	}
}

func TestOutcome_LateRegistrationNeverFires(t *testing.T) {
	out := newOutcome()
	out.settle(nil, errors.New("boom"))

	fired := false
	out.OnFailure(func(error) { fired = true })
	out.OnComplete(func(*Response, error) { fired = true })
	out.OnSuccess(func(*Response) { fired = true })

	if fired {
		t.Error("callback registered after settle must not fire")
	}
}

func TestOutcome_Wait(t *testing.T) {
	out := newOutcome()
	go out.settle(jsonResponse(`{"projects":[{"id":"1"}]}`), nil)

	resp, err := out.Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if got := resp.Get("projects.0.id").String(); got != "1" {
		t.Errorf("projects.0.id = %q", got)
	}
}

func TestOutcome_WaitAfterSettle(t *testing.T) {
	out := newOutcome()
	boom := errors.New("boom")
	out.settle(nil, boom)

	if _, err := out.Wait(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Wait() error = %v, want boom", err)
	}
}

func TestOutcome_WaitContextDone(t *testing.T) {
	out := newOutcome()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := out.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want deadline exceeded", err)
	}
}

func TestOutcome_Decode(t *testing.T) {
	out := newOutcome()
	out.settle(jsonResponse(`{"account":{"URL":"https://acct.example.com/"}}`), nil)

	var body struct {
		Account struct {
			URL string `json:"URL"`
		} `json:"account"`
	}
	if err := out.Decode(context.Background(), &body); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if body.Account.URL != "https://acct.example.com/" {
		t.Errorf("URL = %q", body.Account.URL)
	}
}

func TestOutcome_DoneClosedAfterCallbacks(t *testing.T) {
	out := newOutcome()
	ran := false
	out.OnComplete(func(*Response, error) {
		select {
		case <-out.Done():
			t.Error("Done closed before callbacks finished")
		default:
		}
		ran = true
	})
	out.settle(jsonResponse(`{}`), nil)
	<-out.Done()
	if !ran {
		t.Error("complete callback did not run")
	}
}
