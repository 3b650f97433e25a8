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

import "github.com/sirseerhq/geoselect/internal/selector"

// countriesMsg delivers the result of the countries fetch.
type countriesMsg struct {
	result selector.CountriesResult
}

// statesMsg delivers the result of a states fetch. It may be stale.
type statesMsg struct {
	result selector.StatesResult
}

// noticeExpiredMsg clears the notice with the same id, if still shown.
type noticeExpiredMsg struct {
	id int
}
