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

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sirseerhq/geoselect/internal/directory"
)

// optionItem adapts a directory.Option to list.Item.
type optionItem struct {
	directory.Option
}

func (i optionItem) FilterValue() string { return i.Value }

func toItems(opts []directory.Option) []list.Item {
	items := make([]list.Item, 0, len(opts))
	for _, o := range opts {
		items = append(items, optionItem{o})
	}
	return items
}

// optionDelegate renders one option per line, marking the cursor and the
// currently selected option.
type optionDelegate struct {
	chosen func() string
}

func (d optionDelegate) Height() int                             { return 1 }
func (d optionDelegate) Spacing() int                            { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(optionItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = cursorStyle.Render("> ")
	}

	mark := " "
	if d.chosen != nil && d.chosen() == it.Key() {
		mark = "✓"
	}

	fmt.Fprintf(w, "%s%s %s", cursor, mark, it.Value)
}
