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

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("205")
	mutedColor  = lipgloss.Color("244")
	errorColor  = lipgloss.Color("196")
	okColor     = lipgloss.Color("42")

	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	focusedLabel  = labelStyle.Foreground(accentColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder())
	focusedButton  = buttonStyle.BorderForeground(accentColor).Foreground(accentColor).Bold(true)
	disabledButton = buttonStyle.BorderForeground(mutedColor).Foreground(mutedColor)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			MarginTop(1)

	errorNotice = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	infoNotice  = lipgloss.NewStyle().Foreground(okColor).Bold(true)

	cursorStyle = lipgloss.NewStyle().Foreground(accentColor)
)
