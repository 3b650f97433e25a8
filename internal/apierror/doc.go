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

// Package apierror classifies failures returned by the directory service
// transport. The directory client wraps every failure in a FetchError whose
// message only names the resource; this package looks at the cause underneath
// (HTTP status, dial failure, malformed body) so callers can log it and pick
// an exit code without string-matching user-facing messages.
package apierror
