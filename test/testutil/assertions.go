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

package testutil

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirseerhq/geoselect/internal/directory"
)

// ParseNDJSONOptions decodes NDJSON output into options, failing the test
// on any line that is not a valid option.
func ParseNDJSONOptions(t *testing.T, output string) []directory.Option {
	t.Helper()

	var opts []directory.Option
	scanner := bufio.NewScanner(strings.NewReader(output))
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var raw map[string]any
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			t.Fatalf("Line %d: invalid JSON: %v", line, err)
		}
		for _, field := range []string{"id", "value"} {
			if _, ok := raw[field]; !ok {
				t.Errorf("Line %d: missing required field '%s'", line, field)
			}
		}

		var o directory.Option
		if err := json.Unmarshal([]byte(text), &o); err != nil {
			t.Fatalf("Line %d: not an option: %v", line, err)
		}
		opts = append(opts, o)
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading output: %v", err)
	}

	return opts
}

// AssertOptionValues checks the display values of opts, in order.
func AssertOptionValues(t *testing.T, opts []directory.Option, want ...string) {
	t.Helper()

	got := make([]string, len(opts))
	for i, o := range opts {
		got[i] = o.Value
	}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Option values mismatch\nGot:  %q\nWant: %q", got, want)
	}
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}
