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
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sirseerhq/geoselect/internal/config"
	"github.com/sirseerhq/geoselect/internal/directory"
	"github.com/sirseerhq/geoselect/internal/selector"
)

type field int

const (
	fieldCountry field = iota
	fieldState
	fieldSubmit
	fieldCount
)

// Options configures a Model.
type Options struct {
	UI           config.UIConfig
	Logger       zerolog.Logger
	ExitOnSubmit bool
}

// Model is the Bubble Tea model for the form.
type Model struct {
	ctx    context.Context
	client directory.Client
	sel    *selector.Selector
	log    zerolog.Logger

	countries list.Model
	states    list.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap

	focus field

	// cancelStates aborts the states fetch in flight, if any.
	cancelStates context.CancelFunc

	notice    *selector.Notice
	noticeID  int
	noticeTTL time.Duration

	submitted    *selector.Submission
	exitOnSubmit bool
}

// New creates a form backed by client. ctx bounds every fetch the form
// issues.
func New(ctx context.Context, client directory.Client, opts Options) *Model {
	sel := selector.New()

	height := opts.UI.ListHeight
	if height < 1 {
		height = 8
	}
	ttl := opts.UI.NoticeDuration
	if ttl <= 0 {
		ttl = 4 * time.Second
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return &Model{
		ctx:          ctx,
		client:       client,
		sel:          sel,
		log:          opts.Logger,
		countries:    newOptionList("Countries", sel.CountryKey, height),
		states:       newOptionList("States", sel.StateKey, height),
		spinner:      sp,
		help:         help.New(),
		keys:         defaultKeyMap(),
		noticeTTL:    ttl,
		exitOnSubmit: opts.ExitOnSubmit,
	}
}

func newOptionList(title string, chosen func() string, height int) list.Model {
	l := list.New(nil, optionDelegate{chosen: chosen}, 40, height)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// Submitted returns the last successful submission, or nil.
func (m *Model) Submitted() *selector.Submission {
	return m.submitted
}

// Init mounts the selector and starts loading countries.
func (m *Model) Init() tea.Cmd {
	if !m.sel.Mount() {
		return nil
	}
	m.log.Debug().Msg("loading countries")
	return tea.Batch(fetchCountries(m.ctx, m.client), m.spinner.Tick)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w < 20 {
			w = 20
		}
		m.countries.SetWidth(w)
		m.states.SetWidth(w)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case countriesMsg:
		notice := m.sel.ApplyCountries(msg.result)
		if msg.result.Err != nil {
			m.log.Warn().Err(msg.result.Err).Msg("countries unavailable")
		}
		cmd := m.countries.SetItems(toItems(m.sel.View().Countries.Items))
		m.countries.ResetSelected()
		return m, tea.Batch(cmd, m.showNotice(notice))

	case statesMsg:
		applied, notice := m.sel.ApplyStates(msg.result)
		if !applied {
			m.log.Debug().
				Str("country", msg.result.Request.CountryKey).
				Uint64("generation", msg.result.Request.Generation).
				Msg("dropped superseded states response")
			return m, nil
		}
		m.cancelStates = nil
		if msg.result.Err != nil {
			m.log.Warn().Err(msg.result.Err).Str("country", msg.result.Request.CountryKey).Msg("states unavailable")
		}
		cmd := m.states.SetItems(toItems(m.sel.View().States.Items))
		m.states.ResetSelected()
		return m, tea.Batch(cmd, m.showNotice(notice))

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = nil
		}
		return m, nil

	case spinner.TickMsg:
		if countries, states := m.sel.Loading(); !countries && !states {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.abortStates()
		return tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return nil

	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return nil

	case key.Matches(msg, m.keys.Clear):
		return m.chooseCountry("")

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Choose):
		switch m.focus {
		case fieldCountry:
			if it, ok := m.countries.SelectedItem().(optionItem); ok {
				return m.chooseCountry(it.Key())
			}
		case fieldState:
			if it, ok := m.states.SelectedItem().(optionItem); ok {
				m.sel.SelectState(it.Key())
			}
		case fieldSubmit:
			return m.submit()
		}
		return nil
	}

	// Everything else navigates the focused list.
	var cmd tea.Cmd
	switch m.focus {
	case fieldCountry:
		if !m.sel.View().CountryDisabled {
			m.countries, cmd = m.countries.Update(msg)
		}
	case fieldState:
		if !m.sel.View().StateDisabled {
			m.states, cmd = m.states.Update(msg)
		}
	}
	return cmd
}

// chooseCountry applies a country change and starts the states fetch it
// requires, aborting the one it supersedes.
func (m *Model) chooseCountry(k string) tea.Cmd {
	req, fetch := m.sel.SelectCountry(k)
	if k != "" && !fetch {
		return nil
	}

	m.abortStates()
	cmd := m.states.SetItems(nil)
	if !fetch {
		return cmd
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelStates = cancel
	m.log.Debug().Str("country", k).Uint64("generation", req.Generation).Msg("loading states")

	m.focus = fieldState
	return tea.Batch(cmd, fetchStates(ctx, m.client, req), m.spinner.Tick)
}

func (m *Model) abortStates() {
	if m.cancelStates != nil {
		m.cancelStates()
		m.cancelStates = nil
	}
}

func (m *Model) submit() tea.Cmd {
	sub, notice, err := m.sel.Submit()
	if err != nil {
		return m.showNotice(notice)
	}

	m.submitted = &sub
	m.log.Info().
		Str("country", sub.Country.Key).
		Str("state", sub.State.Key).
		Msg(sub.Message)

	if m.exitOnSubmit {
		return tea.Quit
	}
	return m.showNotice(notice)
}

// showNotice replaces the visible notice and schedules its removal.
func (m *Model) showNotice(n *selector.Notice) tea.Cmd {
	if n == nil {
		return nil
	}
	m.noticeID++
	id := m.noticeID
	m.notice = n
	return tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// moveFocus moves to the next enabled field in direction dir.
func (m *Model) moveFocus(dir int) {
	v := m.sel.View()
	disabled := map[field]bool{
		fieldCountry: v.CountryDisabled,
		fieldState:   v.StateDisabled,
		fieldSubmit:  v.SubmitDisabled,
	}

	next := m.focus
	for i := 0; i < int(fieldCount); i++ {
		next = field((int(next) + dir + int(fieldCount)) % int(fieldCount))
		if !disabled[next] {
			m.focus = next
			return
		}
	}
}

func fetchCountries(ctx context.Context, client directory.Client) tea.Cmd {
	return func() tea.Msg {
		return countriesMsg{result: selector.LoadCountries(ctx, client)}
	}
}

func fetchStates(ctx context.Context, client directory.Client, req selector.StatesRequest) tea.Cmd {
	return func() tea.Msg {
		return statesMsg{result: selector.LoadStates(ctx, client, req)}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	v := m.sel.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Country & State Selector"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Select a country to view its available states"))
	b.WriteString("\n\n")

	b.WriteString(m.label("Country", fieldCountry, v.CountryDisabled))
	b.WriteString("  ")
	b.WriteString(current(v.Countries.Items, v.CountryKey, v.CountryPlaceholder))
	b.WriteString("\n")
	b.WriteString(m.listBody(v.Countries, m.countries, "Loading countries...", "No countries available"))
	b.WriteString("\n\n")

	b.WriteString(m.label("State", fieldState, v.StateDisabled))
	b.WriteString("  ")
	b.WriteString(current(v.States.Items, v.StateKey, v.StatePlaceholder))
	b.WriteString("\n")
	if v.CountryKey == "" {
		b.WriteString(mutedStyle.Render("  Select a country first"))
	} else {
		b.WriteString(m.listBody(v.States, m.states, "Loading states...", "No states available"))
	}
	b.WriteString("\n\n")

	switch {
	case v.SubmitDisabled:
		b.WriteString(disabledButton.Render("Submit Selection"))
	case m.focus == fieldSubmit:
		b.WriteString(focusedButton.Render("Submit Selection"))
	default:
		b.WriteString(buttonStyle.Render("Submit Selection"))
	}
	b.WriteString("\n")

	if v.Summary != nil {
		b.WriteString(summaryStyle.Render(
			labelStyle.Render("Current Selection") + "\n" +
				"Country: " + v.Summary.Country.Label() + "\n" +
				"State: " + v.Summary.State.Label(),
		))
		b.WriteString("\n")
	}

	if m.notice != nil {
		style := infoNotice
		if m.notice.Level == selector.LevelError {
			style = errorNotice
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.notice.Title+": ") + m.notice.Message)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) label(name string, f field, disabled bool) string {
	switch {
	case disabled:
		return mutedStyle.Render(name)
	case m.focus == f:
		return focusedLabel.Render(name)
	default:
		return labelStyle.Render(name)
	}
}

// current shows the chosen value, or the placeholder when nothing is chosen.
func current(opts []directory.Option, selected, placeholder string) string {
	if selected == "" {
		return mutedStyle.Render(placeholder)
	}
	if o, ok := directory.Find(opts, selected); ok {
		return o.Value
	}
	return mutedStyle.Render("not found")
}

func (m *Model) listBody(ls selector.ListState, l list.Model, loading, empty string) string {
	switch ls.Kind {
	case selector.ListLoading:
		return "  " + m.spinner.View() + " " + loading
	case selector.ListEmpty:
		return mutedStyle.Render("  " + empty)
	default:
		return l.View()
	}
}
