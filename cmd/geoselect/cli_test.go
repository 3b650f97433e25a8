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

package main

import (
	"net/http"
	"testing"

	"github.com/sirseerhq/geoselect/test/testutil"
)

// These tests build the binary and check the process contract: output
// streams and exit codes.

func TestCLI_ExitCodes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary tests in short mode")
	}

	server := testutil.NewDirectoryServer(t,
		testutil.WithStatus("/countries/3/states", http.StatusServiceUnavailable),
	)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "submit success",
			args:       []string{"submit", "--country", "1", "--state", "11"},
			wantCode:   0,
			wantStdout: "Ontario, Canada",
		},
		{
			name:       "submit without selection",
			args:       []string{"submit"},
			wantCode:   2,
			wantStderr: "selection required",
		},
		{
			name:       "states fetch failure",
			args:       []string{"states", "3"},
			wantCode:   3,
			wantStderr: "failed to fetch states",
		},
		{
			name:     "unknown command",
			args:     []string{"frobnicate"},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunWithDirectory(t, server.Server, tt.args...)
			if tt.wantCode == 0 {
				testutil.AssertCLISuccess(t, result)
			} else {
				testutil.AssertExitCode(t, result, tt.wantCode)
			}
			if tt.wantStdout != "" {
				testutil.AssertContainsString(t, result.Stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" {
				testutil.AssertContainsString(t, result.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestCLI_UndecodableBody(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary tests in short mode")
	}

	server := testutil.NewMalformedServer(t)

	result := testutil.RunWithDirectory(t, server.Server, "countries")
	testutil.AssertCLIError(t, result, "failed to fetch countries")
	testutil.AssertExitCode(t, result, 3)
}

func TestCLI_MissingBaseURL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary tests in short mode")
	}

	result := testutil.RunCLI(t, []string{"countries"}, map[string]string{
		"GEOSELECT_API_BASE_URL": "",
		"VITE_API_BASE_URL":      "",
	})

	testutil.AssertCLIError(t, result, "base URL")
	testutil.AssertExitCode(t, result, 2)
	testutil.AssertNotContainsString(t, result.Stdout, "{")
}
