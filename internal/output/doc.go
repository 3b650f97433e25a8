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

// Package output writes directory records for the non-interactive commands.
// The default format is NDJSON (one JSON object per line) so option lists
// can be piped into jq or other line-oriented tools; a plain text format
// prints one human-readable line per record.
//
// Example usage:
//
//	w, err := output.NewFileWriter("countries.ndjson", output.FormatNDJSON)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	for _, c := range countries {
//	    if err := w.Write(c); err != nil {
//	        return err
//	    }
//	}
package output
