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

// Package selector implements the cascading country/state selection state
// machine. It holds the current selection and option lists, decides when a
// fetch is needed, and derives everything a form needs to render.
//
// The Selector is not safe for concurrent use. It is meant to be owned by a
// single event loop: transitions run on the loop, fetches run elsewhere and
// their results are handed back to the loop with ApplyCountries and
// ApplyStates.
//
// Transitions:
//
//	Mount          -> countries loading, returns true once
//	SelectCountry  -> state cleared, states loading, returns a StatesRequest
//	SelectState    -> state recorded, no fetch
//	Submit         -> Submission, or a ValidationError when a field is empty
//
// Every StatesRequest carries the generation current when it was issued.
// ApplyStates drops results whose generation is no longer current, so a slow
// response for a country the user has moved away from never overwrites the
// list of the country now selected.
package selector
