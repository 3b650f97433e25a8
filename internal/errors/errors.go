// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines sentinel errors and typed errors for consistent error
// handling across the application. These errors map to specific exit codes in
// the CLI for proper scripting support.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrMissingBaseURL indicates no directory base URL was configured.
	// Maps to exit code 2.
	ErrMissingBaseURL = errors.New("directory base URL is not configured")

	// ErrInvalidConfig indicates a configuration value could not be used.
	// Maps to exit code 2.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFetchFailed indicates a directory list could not be retrieved.
	// Maps to exit code 3.
	ErrFetchFailed = errors.New("directory fetch failed")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrUnauthorized indicates the directory rejected the API key.
	// Maps to exit code 2.
	ErrUnauthorized = errors.New("directory rejected credentials")

	// ErrSelectionRequired indicates submit was attempted without both a
	// country and a state. Maps to exit code 2.
	ErrSelectionRequired = errors.New("selection required")
)

// Resource names used in FetchError.
const (
	ResourceCountries = "countries"
	ResourceStates    = "states"
)

// ConfigError reports a configuration problem detected at load time.
// It is fatal: callers surface it and stop.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FetchError reports a failed directory query. The message only names the
// resource; the status code or transport error is kept as the cause.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return "failed to fetch " + e.Resource
}

// Unwrap exposes both ErrFetchFailed and the underlying cause to errors.Is.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Err}
}

// NewFetchError wraps cause as a failed fetch of resource.
func NewFetchError(resource string, cause error) *FetchError {
	return &FetchError{Resource: resource, Err: cause}
}

// ValidationError reports a rejected submit.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return ErrSelectionRequired.Error()
	}
	return fmt.Sprintf("%s: missing %v", ErrSelectionRequired, e.Missing)
}

func (e *ValidationError) Unwrap() error { return ErrSelectionRequired }
