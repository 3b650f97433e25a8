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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
)

// Compile-time check that MockClient implements Client
var _ Client = (*MockClient)(nil)

func TestMockClient_ListCountries(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sorted default data", func(t *testing.T) {
		mock := NewMockClient()

		got, err := mock.ListCountries(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Canada", "Mexico", "United States"}, values(got))
		assert.Equal(t, 1, mock.CountryCalls)
	})

	t.Run("returns configured error as FetchError", func(t *testing.T) {
		mock := NewMockClient(WithCountriesError(errors.New("boom")))

		_, err := mock.ListCountries(ctx)
		require.Error(t, err)
		assert.Equal(t, "failed to fetch countries", err.Error())
		assert.True(t, errors.Is(err, geoerrors.ErrFetchFailed))
	})
}

func TestMockClient_ListStates(t *testing.T) {
	ctx := context.Background()

	t.Run("records calls", func(t *testing.T) {
		mock := NewMockClient()

		got, err := mock.ListStates(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alberta", "Ontario", "Quebec"}, values(got))

		_, _ = mock.ListStates(ctx, 3)
		assert.Equal(t, []int{1, 3}, mock.StateCalls)
		assert.Equal(t, 2, mock.StateCallCount())
	})

	t.Run("unknown country", func(t *testing.T) {
		_, err := NewMockClient().ListStates(ctx, 99)
		require.Error(t, err)
		assert.Equal(t, "failed to fetch states", err.Error())
	})

	t.Run("per-country error", func(t *testing.T) {
		mock := NewMockClient(WithStatesError(2, errors.New("down")))

		_, err := mock.ListStates(ctx, 2)
		require.Error(t, err)
		_, err = mock.ListStates(ctx, 1)
		require.NoError(t, err)
	})

	t.Run("gate holds the response", func(t *testing.T) {
		gate := make(chan struct{})
		mock := NewMockClient(WithGate(1, gate))

		done := make(chan []Option, 1)
		go func() {
			got, _ := mock.ListStates(ctx, 1)
			done <- got
		}()

		select {
		case <-done:
			t.Fatal("response arrived before the gate opened")
		case <-time.After(20 * time.Millisecond):
		}

		close(gate)
		select {
		case got := <-done:
			assert.Len(t, got, 3)
		case <-time.After(time.Second):
			t.Fatal("response never arrived")
		}
	})

	t.Run("gate respects cancellation", func(t *testing.T) {
		mock := NewMockClient(WithGate(1, make(chan struct{})))
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := mock.ListStates(cctx, 1)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestFind(t *testing.T) {
	opts := []Option{{ID: 1, Value: "A"}, {ID: 22, Value: "B"}}

	got, ok := Find(opts, "22")
	assert.True(t, ok)
	assert.Equal(t, "B", got.Value)

	_, ok = Find(opts, "3")
	assert.False(t, ok)

	_, ok = Find(nil, "")
	assert.False(t, ok)
}
