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

package selector

import "github.com/sirseerhq/geoselect/internal/directory"

// ListKind says which of the three list presentations applies.
type ListKind int

const (
	ListLoading ListKind = iota
	ListEmpty
	ListPopulated
)

func (k ListKind) String() string {
	switch k {
	case ListLoading:
		return "loading"
	case ListEmpty:
		return "empty"
	case ListPopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// ListState is the render state of one option list. Items is only set for
// ListPopulated.
type ListState struct {
	Kind  ListKind
	Items []directory.Option
}

// Render maps a loading flag and the held items to a ListState.
func Render(loading bool, items []directory.Option) ListState {
	switch {
	case loading:
		return ListState{Kind: ListLoading}
	case len(items) == 0:
		return ListState{Kind: ListEmpty}
	default:
		return ListState{Kind: ListPopulated, Items: items}
	}
}

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is a transient message for the user. It is not part of the
// selector state.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// StatesRequest describes a states fetch issued by SelectCountry.
type StatesRequest struct {
	CountryKey string
	Generation uint64
}

// CountriesResult carries the outcome of a countries fetch back to the loop.
type CountriesResult struct {
	Options []directory.Option
	Err     error
}

// StatesResult carries the outcome of a states fetch back to the loop.
type StatesResult struct {
	Request StatesRequest
	Options []directory.Option
	Err     error
}

// Resolved is a selected id together with its display value in the
// currently held list.
type Resolved struct {
	Key      string `json:"id"`
	Value    string `json:"value"`
	NotFound bool   `json:"not_found,omitempty"`
}

// Label returns the display value, or "not found" when the id is no longer
// in the list.
func (r Resolved) Label() string {
	if r.NotFound {
		return "not found"
	}
	return r.Value
}

// Summary is the current selection, resolved against the current lists.
type Summary struct {
	Country Resolved
	State   Resolved
}

// Submission is the result of a successful Submit.
type Submission struct {
	Country Resolved `json:"country"`
	State   Resolved `json:"state"`

	// Message is "{state}, {country}".
	Message string `json:"message"`
}

// String returns Message. The text output format prints submissions with it.
func (s Submission) String() string { return s.Message }

// View is the derived form state. It is computed on demand and never stored.
type View struct {
	CountryKey string
	StateKey   string

	Countries ListState
	States    ListState

	CountryDisabled bool
	StateDisabled   bool
	SubmitDisabled  bool

	CountryPlaceholder string
	StatePlaceholder   string

	// Summary is nil unless both a country and a state are selected.
	Summary *Summary
}
