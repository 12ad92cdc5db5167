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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFilterSelectsAll(t *testing.T) {
	filter := NewIDFilter(nil)
	assert.True(t, filter.SelectsAll())
	assert.True(t, filter.Selects("anything"))

	filter = NewIDFilter([]string{"a"})
	assert.False(t, filter.SelectsAll())
	assert.True(t, filter.Selects("a"))
	assert.False(t, filter.Selects("b"))
}

func TestIDFilterMissing(t *testing.T) {
	filter := NewIDFilter([]string{"c", "a", "b"})
	assert.Equal(t, []string{"a", "c"}, filter.Missing([]string{"b", "d"}))
	assert.Empty(t, filter.Missing([]string{"a", "b", "c"}))
	assert.Empty(t, NewIDFilter(nil).Missing([]string{"a"}))
	assert.Empty(t, NewIDFilter(nil).Missing(nil))
}
