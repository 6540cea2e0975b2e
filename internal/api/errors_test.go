package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 404, Body: "Not found"}
	if err.Error() != "API error (status 404): Not found" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestBootstrapError_Unwrap(t *testing.T) {
	cause := &APIError{StatusCode: 401, Body: "Invalid API key"}
	err := fmt.Errorf("send: %w", &BootstrapError{Err: cause})

	if !IsBootstrapError(err) {
		t.Error("IsBootstrapError should see through wrapping")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr != cause {
		t.Error("BootstrapError should unwrap to its cause")
	}
	if !IsAuthError(err) {
		t.Error("a rejected key behind a bootstrap failure is an auth error")
	}
	if got := (&BootstrapError{Err: ErrMissingAccountURL}).Error(); got != "account lookup failed: authenticate response has no account URL" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "api key", Reason: "is required"}
	if err.Error() != "invalid client configuration: api key is required" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !IsConfigError(fmt.Errorf("wrap: %w", err)) {
		t.Error("IsConfigError should return true")
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&APIError{StatusCode: 401}, true},
		{&APIError{StatusCode: 403}, true},
		{&APIError{StatusCode: 404}, false},
		{errors.New("unauthorized"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsAuthError(tt.err); got != tt.want {
			t.Errorf("IsAuthError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&APIError{StatusCode: 404}, true},
		{&APIError{StatusCode: 400, Body: "Project not found"}, true},
		{&APIError{StatusCode: 500, Body: "oops"}, false},
		{errors.New("task not found"), true},
		{errors.New("boom"), false},
	}
	for _, tt := range tests {
		if got := IsNotFoundError(tt.err); got != tt.want {
			t.Errorf("IsNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
