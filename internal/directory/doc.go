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

// Package directory provides the client for the remote country/state
// directory service. It owns all network I/O in geoselect.
//
// Two read-only queries are supported:
//
//	GET {base}/countries
//	GET {base}/countries/{countryID}/states
//
// Both return a JSON array of {"id": number, "value": string}. Results are
// sorted by value with locale-aware collation before they are returned.
// Every call issues exactly one request: there is no caching, retrying or
// deduplication of identical in-flight calls.
//
// Failures are logged and returned as *errors.FetchError naming the resource
// ("countries" or "states"); the status code or transport error is kept in
// the unwrap chain and can be classified with the apierror package.
package directory
