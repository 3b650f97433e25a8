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
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/geoselect/internal/tui"
)

func newSelectCommand(a *app) *cobra.Command {
	var exitOnSubmit bool

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Choose a country and state interactively",
		Long: `Open the interactive form. Pick a country, then one of its states, and
submit with ctrl+s.

Keys:
  tab / shift+tab   move between fields
  up / down         move within a list
  enter / space     choose the highlighted option
  esc               clear the focused field
  q / ctrl+c        quit

The form is drawn on stderr. The last submitted selection is printed to
stdout when the program exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSelect(cmd, exitOnSubmit)
		},
	}

	cmd.Flags().BoolVar(&exitOnSubmit, "exit-on-submit", false, "Quit as soon as a selection is submitted")

	return cmd
}

// runSelect executes the select command
func (a *app) runSelect(cmd *cobra.Command, exitOnSubmit bool) error {
	s, err := a.open(cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := tui.New(ctx, s.client, tui.Options{
		UI:           s.cfg.UI,
		Logger:       s.log,
		ExitOnSubmit: exitOnSubmit,
	})

	if err := a.runForm(ctx, m, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("interactive form failed: %w", err)
	}

	if sub := m.Submitted(); sub != nil {
		fmt.Fprintln(cmd.OutOrStdout(), sub.Message)
	}
	return nil
}

// runProgram runs the form as a full-screen Bubble Tea program.
func runProgram(ctx context.Context, m *tui.Model, stdin io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if stdin != os.Stdin {
		opts = append(opts, tea.WithInput(stdin))
	}
	if out != os.Stdout {
		opts = append(opts, tea.WithOutput(out))
	}

	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
