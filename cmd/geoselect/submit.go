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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/geoselect/internal/output"
	"github.com/sirseerhq/geoselect/internal/selector"
)

func newSubmitCommand(a *app) *cobra.Command {
	var (
		country string
		state   string
		out     outputFlags
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Resolve a country and state without the interactive form",
		Long: `Run the selection flow non-interactively: load countries, choose
--country, load its states, choose --state, and submit.

Both ids are required. The combined selection is printed as "State, Country";
use --format ndjson for the resolved ids and values.`,
		Example: `  geoselect submit --country 840 --state 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSubmit(cmd, country, state, &out)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country id")
	cmd.Flags().StringVar(&state, "state", "", "State id")
	out.register(cmd, string(output.FormatText))

	return cmd
}

// runSubmit executes the submit command
func (a *app) runSubmit(cmd *cobra.Command, country, state string, out *outputFlags) error {
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

	sub, err := selector.Run(cmd.Context(), selector.New(), s.client, country, state)
	if err != nil {
		return err
	}

	if sub.Country.NotFound || sub.State.NotFound {
		s.log.Warn().
			Str("country", sub.Country.Key).
			Bool("country_found", !sub.Country.NotFound).
			Str("state", sub.State.Key).
			Bool("state_found", !sub.State.NotFound).
			Msg("selection refers to an id missing from the directory")
	}

	if err := writer.Write(sub); err != nil {
		return fmt.Errorf("failed to write selection: %w", err)
	}
	return writer.Close()
}
