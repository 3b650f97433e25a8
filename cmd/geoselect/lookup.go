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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/geoselect/internal/directory"
	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
	"github.com/sirseerhq/geoselect/internal/output"
)

// outputFlags are shared by the commands that write records.
type outputFlags struct {
	file   string
	format string
}

func (o *outputFlags) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVar(&o.file, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&o.format, "format", defaultFormat, "Output format: ndjson or text")
}

// open creates the record writer selected by the flags.
func (o *outputFlags) open(cmd *cobra.Command) (output.RecordWriter, error) {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}

	if o.file == "" {
		return output.NewWriter(cmd.OutOrStdout(), format), nil
	}

	w, err := output.NewFileWriter(o.file, format)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func newCountriesCommand(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the countries known to the directory",
		Long: `Fetch the country list from the directory service and write it sorted
by name, one option per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, &out, geoerrors.ResourceCountries, func(ctx context.Context, c directory.Client) ([]directory.Option, error) {
				return c.ListCountries(ctx)
			})
		},
	}

	out.register(cmd, string(output.FormatNDJSON))
	return cmd
}

func newStatesCommand(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "states <countryID>",
		Short: "List the states of a country",
		Long: `Fetch the states of one country from the directory service and write
them sorted by name, one option per line.

The country is identified by its numeric id as printed by the countries
command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			countryID, err := parseCountryID(args[0])
			if err != nil {
				return err
			}
			return a.runList(cmd, &out, geoerrors.ResourceStates, func(ctx context.Context, c directory.Client) ([]directory.Option, error) {
				return c.ListStates(ctx, countryID)
			})
		},
	}

	out.register(cmd, string(output.FormatNDJSON))
	return cmd
}

// parseCountryID validates a country id argument
func parseCountryID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid country id. Expected a non-negative integer, got: %s", arg)
	}
	return id, nil
}

// runList executes a directory lookup and streams the result
func (a *app) runList(cmd *cobra.Command, out *outputFlags, resource string, fetch func(context.Context, directory.Client) ([]directory.Option, error)) error {
	s, err := a.open(cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer s.close()

	writer, err := out.open(cmd)
	if err != nil {
		return err
	}
	defer writer.Close()

	opts, err := fetch(cmd.Context(), s.client)
	if err != nil {
		return err
	}

	for _, o := range opts {
		if err := writer.Write(o); err != nil {
			return fmt.Errorf("failed to write %s: %w", resource, err)
		}
	}

	if len(opts) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No %s found\n", resource)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Fetched %d %s\n", len(opts), resource)
	}

	return writer.Close()
}
