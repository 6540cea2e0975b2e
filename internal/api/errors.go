package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
	RequestID  string
	// RateLimit is set when the reply carried rate limit headers.
	RateLimit *RateLimitInfo
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// BootstrapError means the account lookup failed, so no base URL is known.
// Every request issued on the client fails with it.
type BootstrapError struct {
	Err error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("account lookup failed: %v", e.Err)
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}

// ConfigError reports invalid client configuration at construction time.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid client configuration: %s %s", e.Field, e.Reason)
}

// ErrMissingAccountURL is the bootstrap failure cause when the authenticate
// reply carries no account URL.
var ErrMissingAccountURL = errors.New("authenticate response has no account URL")

// IsBootstrapError checks if the error came from a failed account lookup.
func IsBootstrapError(err error) bool {
	var e *BootstrapError
	return errors.As(err, &e)
}

// IsConfigError checks if the error is a configuration error.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsAuthError checks if the error is an authentication or authorization
// rejection, including one that failed the account lookup.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsNotFoundError checks if the error indicates a resource was not found.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound ||
			strings.Contains(strings.ToLower(apiErr.Body), "not found")
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
