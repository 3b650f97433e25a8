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

package apierror

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind is a coarse classification of a directory failure.
type Kind string

const (
	KindAuth     Kind = "auth"
	KindNotFound Kind = "not_found"
	KindServer   Kind = "server"
	KindNetwork  Kind = "network"
	KindDecode   Kind = "decode"
	KindUnknown  Kind = "unknown"
)

// StatusError is returned when the directory answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *StatusError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *StatusError) IsNotFoundError() bool { return e.StatusCode == http.StatusNotFound }

func (e *StatusError) IsServerError() bool { return e.StatusCode >= 500 }

// DecodeError is returned when a 2xx body is not a JSON option list.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) IsDecodeError() bool { return true }

// Inspector defines methods for inspecting and classifying directory errors.
type Inspector interface {
	// IsAuthError returns true if the service rejected the API key.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the requested list does not exist.
	IsNotFoundError(err error) bool

	// IsServerError returns true if the service failed with a 5xx status.
	IsServerError(err error) bool

	// IsNetworkError returns true if the request never got a response.
	IsNetworkError(err error) bool

	// IsDecodeError returns true if the response body was not understood.
	IsDecodeError(err error) bool
}

// MessageInspector implements Inspector by looking at error text. It is the
// fallback for errors produced outside this package.
type MessageInspector struct{}

// NewInspector creates a new MessageInspector.
func NewInspector() Inspector {
	return &MessageInspector{}
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *MessageInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "status 401") ||
		strings.Contains(errStr, "status 403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "invalid api key")
}

// IsNotFoundError checks if the error is a not found error.
func (i *MessageInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "status 404") ||
		strings.Contains(errStr, "not found")
}

// IsServerError checks if the error came from a failing service.
func (i *MessageInspector) IsServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "status 500") ||
		strings.Contains(errStr, "status 502") ||
		strings.Contains(errStr, "status 503") ||
		strings.Contains(errStr, "status 504") ||
		strings.Contains(errStr, "internal server error")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *MessageInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsDecodeError checks if the error came from parsing a response body.
func (i *MessageInspector) IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "decode response") ||
		strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "cannot unmarshal")
}

// ErrorChainInspector wraps a base inspector and adds support for checking errors
// in the error chain using errors.As.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector creates a new ErrorChainInspector that checks both
// the error chain and falls back to string-based inspection.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// IsAuthError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsAuthError(err error) bool {
	var authErr interface{ IsAuthError() bool }
	if errors.As(err, &authErr) {
		return authErr.IsAuthError()
	}
	return e.base.IsAuthError(err)
}

// IsNotFoundError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	var notFoundErr interface{ IsNotFoundError() bool }
	if errors.As(err, &notFoundErr) {
		return notFoundErr.IsNotFoundError()
	}
	return e.base.IsNotFoundError(err)
}

// IsServerError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsServerError(err error) bool {
	var serverErr interface{ IsServerError() bool }
	if errors.As(err, &serverErr) {
		return serverErr.IsServerError()
	}
	return e.base.IsServerError(err)
}

// IsNetworkError checks for net.Error in the chain, then falls back to base inspector.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return e.base.IsNetworkError(err)
}

// IsDecodeError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsDecodeError(err error) bool {
	var decodeErr interface{ IsDecodeError() bool }
	if errors.As(err, &decodeErr) && decodeErr.IsDecodeError() {
		return true
	}
	return e.base.IsDecodeError(err)
}

// Classify returns the first matching Kind for err.
func Classify(in Inspector, err error) Kind {
	switch {
	case err == nil:
		return ""
	case in.IsNetworkError(err):
		return KindNetwork
	case in.IsAuthError(err):
		return KindAuth
	case in.IsNotFoundError(err):
		return KindNotFound
	case in.IsServerError(err):
		return KindServer
	case in.IsDecodeError(err):
		return KindDecode
	default:
		return KindUnknown
	}
}
