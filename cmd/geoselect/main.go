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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
	"github.com/sirseerhq/geoselect/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand(newApp())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geoselect",
		Short: "Pick a country and state from a remote directory",
		Long: `geoselect presents a cascading country and state selector backed by a
REST directory service. Choosing a country loads its states; submitting
reports the combined selection as "State, Country".

The directory base URL is required. Set it with --base-url, the
GEOSELECT_API_BASE_URL environment variable, a .env file, or the
directory.base_url key of a config file.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "Path to config file (default: .geoselect.yaml or ~/.geoselect/config.yaml)")
	flags.StringVar(&a.flags.envFile, "env-file", "", "Path to .env file (default: .env if present)")
	flags.StringVar(&a.flags.overrides.BaseURL, "base-url", "", "Directory service base URL (overrides GEOSELECT_API_BASE_URL)")
	flags.StringVar(&a.flags.overrides.APIKey, "api-key", "", "Directory service API key (overrides GEOSELECT_API_KEY)")
	flags.StringVar(&a.flags.overrides.Locale, "locale", "", "BCP 47 locale used to sort options (overrides GEOSELECT_LOCALE)")
	flags.StringVar(&a.flags.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")
	flags.StringVar(&a.flags.overrides.LogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(
		newSelectCommand(a),
		newCountriesCommand(a),
		newStatesCommand(a),
		newSubmitCommand(a),
	)

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	var cfgErr *geoerrors.ConfigError
	if errors.As(err, &cfgErr) ||
		errors.Is(err, geoerrors.ErrMissingBaseURL) ||
		errors.Is(err, geoerrors.ErrInvalidConfig) ||
		errors.Is(err, geoerrors.ErrUnauthorized) ||
		errors.Is(err, geoerrors.ErrSelectionRequired) {
		return 2 // Configuration, credential or validation errors
	}

	if errors.Is(err, geoerrors.ErrFetchFailed) ||
		errors.Is(err, geoerrors.ErrNetworkFailure) {
		return 3 // Fetch errors
	}

	return 1 // General error
}
