package api

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodeFromStatus(t *testing.T) {
	tests := map[int]ErrorCode{
		400: ErrBadRequest,
		401: ErrUnauthorized,
		403: ErrForbidden,
		404: ErrNotFound,
		422: ErrValidation,
		429: ErrRateLimited,
		503: ErrServerError,
		302: ErrUnknown,
	}
	for status, want := range tests {
		if got := ErrorCodeFromStatus(status); got != want {
			t.Errorf("ErrorCodeFromStatus(%d) = %s, want %s", status, got, want)
		}
	}
}

func TestStructuredErrorFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"api error", &APIError{StatusCode: 404, Body: "Not found", RequestID: "r1"}, ErrNotFound},
		{"wrapped api error", fmt.Errorf("get project: %w", &APIError{StatusCode: 500}), ErrServerError},
		{"bootstrap unauthorized", &BootstrapError{Err: &APIError{StatusCode: 401}}, ErrBootstrap},
		{"bootstrap network", &BootstrapError{Err: errors.New("dial tcp: refused")}, ErrBootstrap},
		{"config", &ConfigError{Field: "api key", Reason: "is required"}, ErrConfig},
		{"timeout", fmt.Errorf("request failed: %w", context.DeadlineExceeded), ErrTimeout},
		{"other", errors.New("boom"), ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StructuredErrorFromError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("got %v, want nil", got)
				}
				return
			}
			if got.Code != tt.want {
				t.Errorf("Code = %s, want %s", got.Code, tt.want)
			}
			if got.Retryable != tt.want.IsRetryable() {
				t.Errorf("Retryable = %v", got.Retryable)
			}
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsNotFoundError(&APIError{StatusCode: 404}) {
		t.Error("IsNotFoundError(404) = false")
	}
	if IsAuthError(&APIError{StatusCode: 500}) {
		t.Error("IsAuthError(500) = true")
	}
	if !IsAuthError(fmt.Errorf("x: %w", &BootstrapError{Err: &APIError{StatusCode: 403}})) {
		t.Error("IsAuthError(wrapped 403) = false")
	}
	if !IsConfigError(&ConfigError{}) {
		t.Error("IsConfigError = false")
	}
	err := &BootstrapError{Err: errors.New("dial tcp")}
	if err.Error() != "account lookup failed: dial tcp" {
		t.Errorf("Error() = %q", err.Error())
	}
}
