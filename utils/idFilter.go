// Copyright 2025 The mapboot authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import "sort"

// IDFilter is a selection of task names. An empty filter selects everything.
type IDFilter map[string]struct{}

func NewIDFilter(selectedIDs []string) IDFilter {
	filter := make(IDFilter)
	for _, id := range selectedIDs {
		filter[id] = struct{}{}
	}
	return filter
}

// SelectsAll reports whether this is the select-everything filter.
func (f IDFilter) SelectsAll() bool {
	return len(f) == 0
}

func (f IDFilter) Selects(id string) bool {
	if f.SelectsAll() {
		return true
	}
	_, isSelected := f[id]
	return isSelected
}

// Missing returns the selected ids that are not among the given ones, sorted
// for stable error messages.
func (f IDFilter) Missing(ids []string) []string {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	missing := []string{}
	for id := range f {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}
