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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct missing base url",
			err:      ErrMissingBaseURL,
			sentinel: ErrMissingBaseURL,
			want:     true,
		},
		{
			name:     "config error wraps sentinel",
			err:      &ConfigError{Field: "directory.base_url", Err: ErrMissingBaseURL},
			sentinel: ErrMissingBaseURL,
			want:     true,
		},
		{
			name:     "fetch error matches ErrFetchFailed",
			err:      NewFetchError(ResourceCountries, errors.New("status 500")),
			sentinel: ErrFetchFailed,
			want:     true,
		},
		{
			name:     "fetch error keeps its cause",
			err:      NewFetchError(ResourceStates, fmt.Errorf("dial: %w", ErrNetworkFailure)),
			sentinel: ErrNetworkFailure,
			want:     true,
		},
		{
			name:     "validation error matches ErrSelectionRequired",
			err:      &ValidationError{Missing: []string{"state"}},
			sentinel: ErrSelectionRequired,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrFetchFailed,
			sentinel: ErrMissingBaseURL,
			want:     false,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrFetchFailed,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewFetchError(ResourceCountries, errors.New("HTTP 500 Internal Server Error")), "failed to fetch countries"},
		{NewFetchError(ResourceStates, nil), "failed to fetch states"},
		{&ConfigError{Field: "directory.base_url", Err: ErrMissingBaseURL}, "configuration error: directory.base_url: directory base URL is not configured"},
		{&ConfigError{Err: ErrInvalidConfig}, "configuration error: invalid configuration"},
		{&ValidationError{}, "selection required"},
		{&ValidationError{Missing: []string{"country", "state"}}, "selection required: missing [country state]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestFetchErrorAs(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewFetchError(ResourceStates, errors.New("boom")))

	var fe *FetchError
	if assert.True(t, errors.As(err, &fe)) {
		assert.Equal(t, ResourceStates, fe.Resource)
		assert.NotContains(t, fe.Error(), "boom")
	}
}
