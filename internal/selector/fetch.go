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
	"fmt"
	"strconv"

	"github.com/sirseerhq/geoselect/internal/directory"
	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
)

// LoadCountries performs the fetch requested by Mount.
func LoadCountries(ctx context.Context, client directory.Client) CountriesResult {
	opts, err := client.ListCountries(ctx)
	return CountriesResult{Options: opts, Err: err}
}

// LoadStates performs the fetch described by req. A country key that is not
// a number fails locally without contacting the directory.
func LoadStates(ctx context.Context, client directory.Client, req StatesRequest) StatesResult {
	id, err := strconv.Atoi(req.CountryKey)
	if err != nil {
		return StatesResult{
			Request: req,
			Err:     geoerrors.NewFetchError(geoerrors.ResourceStates, fmt.Errorf("invalid country id %q: %w", req.CountryKey, err)),
		}
	}

	opts, err := client.ListStates(ctx, id)
	return StatesResult{Request: req, Options: opts, Err: err}
}

// Run drives s through a complete headless session: mount, select the
// country, select the state, submit. Fetch failures are returned as-is
// rather than recovered, since there is no user to retry.
func Run(ctx context.Context, s *Selector, client directory.Client, countryKey, stateKey string) (Submission, error) {
	if s.Mount() {
		res := LoadCountries(ctx, client)
		s.ApplyCountries(res)
		if res.Err != nil {
			return Submission{}, res.Err
		}
	}

	if req, ok := s.SelectCountry(countryKey); ok {
		res := LoadStates(ctx, client, req)
		s.ApplyStates(res)
		if res.Err != nil {
			return Submission{}, res.Err
		}
	}

	s.SelectState(stateKey)

	sub, _, err := s.Submit()
	return sub, err
}
