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

import (
	"github.com/sirseerhq/geoselect/internal/directory"
	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
)

// Notice texts shown to the user.
const (
	countriesFailedMsg = "Failed to load countries. Please try again."
	statesFailedMsg    = "Failed to load states. Please try again."
	selectionNeededMsg = "Please select both a country and a state."
)

// Selector is the cascading selection state machine.
type Selector struct {
	mounted bool

	countries []directory.Option
	states    []directory.Option

	countryKey string
	stateKey   string

	countriesLoading bool
	statesLoading    bool

	// generation identifies the most recent country change.
	generation uint64
}

// New returns an unmounted Selector with an empty selection.
func New() *Selector {
	return &Selector{}
}

// Mount starts loading countries. It returns true the first time it is
// called, meaning the caller must fetch countries and pass the result to
// ApplyCountries. Later calls do nothing and return false.
func (s *Selector) Mount() bool {
	if s.mounted {
		return false
	}
	s.mounted = true
	s.countriesLoading = true
	return true
}

// ApplyCountries stores the result of the countries fetch started by Mount.
// A failure leaves an empty list and returns an error notice. Results that
// arrive when no countries fetch is pending are ignored.
func (s *Selector) ApplyCountries(res CountriesResult) *Notice {
	if !s.countriesLoading {
		return nil
	}
	s.countriesLoading = false

	if res.Err != nil {
		s.countries = nil
		return &Notice{Level: LevelError, Title: "Error", Message: countriesFailedMsg}
	}
	s.countries = res.Options
	return nil
}

// SelectCountry changes the selected country. Re-selecting the current
// country is a no-op. Any other change clears the selected state and the
// state list; a non-empty key also returns a StatesRequest that the caller
// must fetch and pass to ApplyStates. An empty key deselects the country
// and needs no fetch.
func (s *Selector) SelectCountry(key string) (StatesRequest, bool) {
	if key == s.countryKey {
		return StatesRequest{}, false
	}

	s.generation++
	s.countryKey = key
	s.stateKey = ""
	s.states = nil

	if key == "" {
		s.statesLoading = false
		return StatesRequest{}, false
	}

	s.statesLoading = true
	return StatesRequest{CountryKey: key, Generation: s.generation}, true
}

// ApplyStates stores the result of a states fetch. It returns false when the
// result belongs to a superseded country change and was dropped. A failure
// for the current country leaves an empty list and returns an error notice.
func (s *Selector) ApplyStates(res StatesResult) (bool, *Notice) {
	if res.Request.Generation != s.generation || res.Request.CountryKey != s.countryKey || !s.statesLoading {
		return false, nil
	}
	s.statesLoading = false

	if res.Err != nil {
		s.states = nil
		return true, &Notice{Level: LevelError, Title: "Error", Message: statesFailedMsg}
	}
	s.states = res.Options
	return true, nil
}

// SelectState records the selected state. It returns false and changes
// nothing while the state control is disabled.
func (s *Selector) SelectState(key string) bool {
	if s.stateDisabled() {
		return false
	}
	s.stateKey = key
	return true
}

// Submit reports the current selection. When either field is empty it
// returns a *errors.ValidationError and a "Selection Required" notice and
// leaves the state untouched.
func (s *Selector) Submit() (Submission, *Notice, error) {
	var missing []string
	if s.countryKey == "" {
		missing = append(missing, "country")
	}
	if s.stateKey == "" {
		missing = append(missing, "state")
	}
	if len(missing) > 0 {
		return Submission{},
			&Notice{Level: LevelError, Title: "Selection Required", Message: selectionNeededMsg},
			&geoerrors.ValidationError{Missing: missing}
	}

	sum := s.summary()
	sub := Submission{
		Country: sum.Country,
		State:   sum.State,
		Message: sum.State.Label() + ", " + sum.Country.Label(),
	}
	return sub, &Notice{Level: LevelInfo, Title: "Selection Complete", Message: "You selected " + sub.Message}, nil
}

// View derives the form state from the current selector state.
func (s *Selector) View() View {
	v := View{
		CountryKey:      s.countryKey,
		StateKey:        s.stateKey,
		Countries:       Render(s.countriesLoading, s.countries),
		States:          Render(s.statesLoading, s.states),
		CountryDisabled: s.countriesLoading,
		StateDisabled:   s.stateDisabled(),
		SubmitDisabled:  s.countryKey == "" || s.stateKey == "",
	}

	if s.countriesLoading {
		v.CountryPlaceholder = "Loading countries..."
	} else {
		v.CountryPlaceholder = "Select a country"
	}

	switch {
	case s.countryKey == "":
		v.StatePlaceholder = "Select a country first"
	case s.statesLoading:
		v.StatePlaceholder = "Loading states..."
	case len(s.states) == 0:
		v.StatePlaceholder = "No states available"
	default:
		v.StatePlaceholder = "Select a state"
	}

	if s.countryKey != "" && s.stateKey != "" {
		sum := s.summary()
		v.Summary = &sum
	}
	return v
}

// CountryKey returns the selected country id, or "".
func (s *Selector) CountryKey() string { return s.countryKey }

// StateKey returns the selected state id, or "".
func (s *Selector) StateKey() string { return s.stateKey }

// Loading reports whether a countries or states fetch is pending.
func (s *Selector) Loading() (countries, states bool) {
	return s.countriesLoading, s.statesLoading
}

func (s *Selector) stateDisabled() bool {
	return s.countryKey == "" || s.statesLoading
}

func (s *Selector) summary() Summary {
	return Summary{
		Country: resolve(s.countries, s.countryKey),
		State:   resolve(s.states, s.stateKey),
	}
}

func resolve(opts []directory.Option, key string) Resolved {
	o, ok := directory.Find(opts, key)
	if !ok {
		return Resolved{Key: key, NotFound: true}
	}
	return Resolved{Key: key, Value: o.Value}
}
