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
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Option is an identified, human-readable entry representing a country or a
// state.
type Option struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// Key returns the option id in the string form used by selections.
func (o Option) Key() string {
	return strconv.Itoa(o.ID)
}

// String formats the option as "id<TAB>value".
func (o Option) String() string {
	return fmt.Sprintf("%d\t%s", o.ID, o.Value)
}

// SortOptions sorts opts in place by Value using the collation rules of tag.
// Options with equal values keep their relative order.
func SortOptions(opts []Option, tag language.Tag) {
	// A Collator is not safe for concurrent use, so each sort gets its own.
	c := collate.New(tag)
	sort.SliceStable(opts, func(i, j int) bool {
		return c.CompareString(opts[i].Value, opts[j].Value) < 0
	})
}

// Find returns the option whose Key equals key.
func Find(opts []Option, key string) (Option, bool) {
	for _, o := range opts {
		if o.Key() == key {
			return o, true
		}
	}
	return Option{}, false
}
