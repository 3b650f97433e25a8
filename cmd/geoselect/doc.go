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

// Package main implements the geoselect command-line interface.
// It presents a cascading country and state form backed by a REST
// directory service, and exposes the same directory lookups as
// non-interactive commands that write NDJSON.
//
// Usage:
//
//	geoselect select [--exit-on-submit]
//	geoselect countries [--output file] [--format ndjson|text]
//	geoselect states <countryID> [--output file] [--format ndjson|text]
//	geoselect submit --country ID --state ID
//
// Example:
//
//	export GEOSELECT_API_BASE_URL=https://directory.example.com/api
//	geoselect states 840 --format text
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Configuration, credential or validation error
//   - 3: Fetch failure
package main
