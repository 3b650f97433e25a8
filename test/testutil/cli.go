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
	"bytes"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// geoselectBinary compiles cmd/geoselect into a temporary directory the
// first time it is called and returns the same path afterwards.
var geoselectBinary = sync.OnceValues(func() (string, error) {
	gomod, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", fmt.Errorf("locate go.mod: %w", err)
	}
	root := filepath.Dir(strings.TrimSpace(string(gomod)))

	dir, err := os.MkdirTemp("", "geoselect-bin")
	if err != nil {
		return "", err
	}
	bin := filepath.Join(dir, "geoselect")

	build := exec.Command("go", "build", "-o", bin, "./cmd/geoselect")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\n%s", err, out)
	}
	return bin, nil
})

// CLIResult is the outcome of one geoselect process.
type CLIResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// RunCLI runs geoselect with args in an empty working directory whose path
// is also HOME, so no config or .env file from the host is read. env is
// added on top of the inherited environment.
func RunCLI(t *testing.T, args []string, env map[string]string) CLIResult {
	t.Helper()

	bin, err := geoselectBinary()
	if err != nil {
		t.Fatalf("Failed to build geoselect: %v", err)
	}

	dir := t.TempDir()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir)
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	res := CLIResult{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Failed to run geoselect: %v", err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	res.Stdout, res.Stderr = stdout.String(), stderr.String()
	return res
}

// RunWithDirectory runs the CLI with GEOSELECT_API_BASE_URL pointing at server
func RunWithDirectory(t *testing.T, server *httptest.Server, args ...string) CLIResult {
	t.Helper()
	return RunCLI(t, args, map[string]string{"GEOSELECT_API_BASE_URL": server.URL})
}

// AssertCLISuccess checks that the process exited with status 0
func AssertCLISuccess(t *testing.T, res CLIResult) {
	t.Helper()
	if res.ExitCode != 0 {
		t.Fatalf("Expected success, got exit code %d\nStderr: %s", res.ExitCode, res.Stderr)
	}
}

// AssertCLIError checks for a non-zero exit whose stderr mentions want
func AssertCLIError(t *testing.T, res CLIResult, want string) {
	t.Helper()
	if res.ExitCode == 0 {
		t.Fatalf("Expected failure, but the command succeeded\nStdout: %s", res.Stdout)
	}
	if want != "" && !strings.Contains(res.Stderr, want) {
		t.Errorf("Expected stderr to contain %q, got: %s", want, res.Stderr)
	}
}

// AssertExitCode checks the process exit code
func AssertExitCode(t *testing.T, res CLIResult, want int) {
	t.Helper()
	if res.ExitCode != want {
		t.Errorf("Expected exit code %d, got %d\nStderr: %s", want, res.ExitCode, res.Stderr)
	}
}
