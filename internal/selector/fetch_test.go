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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/geoselect/internal/directory"
	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("full session", func(t *testing.T) {
		mock := directory.NewMockClient()

		sub, err := Run(ctx, New(), mock, "1", "11")
		require.NoError(t, err)
		assert.Equal(t, "Ontario, Canada", sub.Message)
		assert.Equal(t, 1, mock.CountryCalls)
		assert.Equal(t, []int{1}, mock.StateCalls)
	})

	t.Run("countries failure", func(t *testing.T) {
		mock := directory.NewMockClient(directory.WithCountriesError(errors.New("down")))

		_, err := Run(ctx, New(), mock, "1", "11")
		require.Error(t, err)
		assert.Equal(t, "failed to fetch countries", err.Error())
		assert.Empty(t, mock.StateCalls)
	})

	t.Run("states failure", func(t *testing.T) {
		mock := directory.NewMockClient(directory.WithStatesError(1, errors.New("down")))

		_, err := Run(ctx, New(), mock, "1", "11")
		require.Error(t, err)
		assert.Equal(t, "failed to fetch states", err.Error())
	})

	t.Run("missing state", func(t *testing.T) {
		_, err := Run(ctx, New(), directory.NewMockClient(), "2", "")
		assert.True(t, errors.Is(err, geoerrors.ErrSelectionRequired))
	})

	t.Run("missing country", func(t *testing.T) {
		mock := directory.NewMockClient()
		_, err := Run(ctx, New(), mock, "", "11")
		assert.True(t, errors.Is(err, geoerrors.ErrSelectionRequired))
		assert.Empty(t, mock.StateCalls)
	})

	t.Run("unknown state id", func(t *testing.T) {
		sub, err := Run(ctx, New(), directory.NewMockClient(), "3", "999")
		require.NoError(t, err)
		assert.True(t, sub.State.NotFound)
		assert.Equal(t, "not found, United States", sub.Message)
	})
}

// TestConcurrentFetches runs fetches on goroutines and applies their results
// on a single loop, the way an event loop does, with the slow response for
// the first country arriving last.
func TestConcurrentFetches(t *testing.T) {
	ctx := context.Background()
	slowCanada := make(chan struct{})
	mock := directory.NewMockClient(directory.WithGate(1, slowCanada))

	s := New()
	require.True(t, s.Mount())
	s.ApplyCountries(LoadCountries(ctx, mock))

	results := make(chan StatesResult, 2)
	fetch := func(req StatesRequest) {
		go func() { results <- LoadStates(ctx, mock, req) }()
	}

	reqCanada, ok := s.SelectCountry("1")
	require.True(t, ok)
	fetch(reqCanada)

	reqMexico, ok := s.SelectCountry("2")
	require.True(t, ok)
	fetch(reqMexico)

	// Mexico answers first.
	select {
	case res := <-results:
		applied, _ := s.ApplyStates(res)
		assert.True(t, applied)
		assert.Equal(t, "2", res.Request.CountryKey)
	case <-time.After(time.Second):
		t.Fatal("no states response")
	}

	close(slowCanada)
	select {
	case res := <-results:
		applied, _ := s.ApplyStates(res)
		assert.False(t, applied, "Canada was superseded by Mexico")
	case <-time.After(time.Second):
		t.Fatal("no stale response")
	}

	v := s.View()
	require.Equal(t, ListPopulated, v.States.Kind)
	assert.Equal(t, []directory.Option{{ID: 20, Value: "Chiapas"}, {ID: 21, Value: "Jalisco"}}, v.States.Items)
}
