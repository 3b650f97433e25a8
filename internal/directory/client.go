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

import "context"

// Client defines the interface for querying the directory service.
// This abstraction allows the selector and CLI to be tested without a
// network by substituting MockClient.
type Client interface {
	// ListCountries returns all countries sorted by display value.
	ListCountries(ctx context.Context) ([]Option, error)

	// ListStates returns the states of countryID sorted by display value.
	ListStates(ctx context.Context, countryID int) ([]Option, error)
}
