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

package directory

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/language"

	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
)

// MockClient is an in-memory Client for tests. It honors the sorting and
// error contract of the HTTP client and records every call.
type MockClient struct {
	mu sync.Mutex

	// Countries to return
	Countries []Option

	// States to return, by country id
	States map[int][]Option

	// Errors to return. They are wrapped in a FetchError.
	CountriesErr error
	StatesErr    map[int]error

	// Gates hold ListStates for a country until the channel is closed.
	Gates map[int]chan struct{}

	// Track calls for verification
	CountryCalls int
	StateCalls   []int
}

// NewMockClient returns a MockClient with a small fixed directory.
func NewMockClient(opts ...MockClientOption) *MockClient {
	m := &MockClient{
		Countries: []Option{
			{ID: 3, Value: "United States"},
			{ID: 1, Value: "Canada"},
			{ID: 2, Value: "Mexico"},
		},
		States: map[int][]Option{
			1: {{ID: 11, Value: "Ontario"}, {ID: 10, Value: "Alberta"}, {ID: 12, Value: "Quebec"}},
			2: {{ID: 21, Value: "Jalisco"}, {ID: 20, Value: "Chiapas"}},
			3: {{ID: 31, Value: "Texas"}, {ID: 30, Value: "California"}, {ID: 32, Value: "Ohio"}},
		},
		StatesErr: map[int]error{},
		Gates:     map[int]chan struct{}{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ListCountries implements Client.
func (m *MockClient) ListCountries(ctx context.Context) ([]Option, error) {
	m.mu.Lock()
	m.CountryCalls++
	err := m.CountriesErr
	out := cloneSorted(m.Countries)
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, geoerrors.NewFetchError(geoerrors.ResourceCountries, ctx.Err())
	default:
	}

	if err != nil {
		return nil, geoerrors.NewFetchError(geoerrors.ResourceCountries, err)
	}
	return out, nil
}

// ListStates implements Client.
func (m *MockClient) ListStates(ctx context.Context, countryID int) ([]Option, error) {
	m.mu.Lock()
	m.StateCalls = append(m.StateCalls, countryID)
	err := m.StatesErr[countryID]
	gate := m.Gates[countryID]
	states, known := m.States[countryID]
	out := cloneSorted(states)
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, geoerrors.NewFetchError(geoerrors.ResourceStates, ctx.Err())
		}
	}

	if err != nil {
		return nil, geoerrors.NewFetchError(geoerrors.ResourceStates, err)
	}
	if !known {
		return nil, geoerrors.NewFetchError(geoerrors.ResourceStates, fmt.Errorf("country %d not found", countryID))
	}
	return out, nil
}

// StateCallCount returns how many times ListStates was called.
func (m *MockClient) StateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StateCalls)
}

func cloneSorted(in []Option) []Option {
	out := make([]Option, len(in))
	copy(out, in)
	SortOptions(out, language.Und)
	return out
}

// MockClientOption configures a MockClient.
type MockClientOption func(*MockClient)

// WithCountries replaces the country list.
func WithCountries(opts []Option) MockClientOption {
	return func(m *MockClient) {
		m.Countries = opts
	}
}

// WithStates sets the states of one country.
func WithStates(countryID int, opts []Option) MockClientOption {
	return func(m *MockClient) {
		m.States[countryID] = opts
	}
}

// WithCountriesError makes ListCountries fail.
func WithCountriesError(err error) MockClientOption {
	return func(m *MockClient) {
		m.CountriesErr = err
	}
}

// WithStatesError makes ListStates fail for one country.
func WithStatesError(countryID int, err error) MockClientOption {
	return func(m *MockClient) {
		m.StatesErr[countryID] = err
	}
}

// WithGate holds ListStates for countryID until gate is closed.
func WithGate(countryID int, gate chan struct{}) MockClientOption {
	return func(m *MockClient) {
		m.Gates[countryID] = gate
	}
}
