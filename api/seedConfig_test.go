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

package api

import (
	"testing"

	"github.com/openlyinc/pointy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaultSeedConfig(t *testing.T) {
	proxyConfig := CreateDefaultProxyConfig()
	seedConfig := CreateDefaultSeedConfig()

	assert.Contains(t, seedConfig.Seeds, "osm_seed")
	assert.Contains(t, seedConfig.Cleanups, "old_osm_tiles")
	assert.Empty(t, seedConfig.Validate(proxyConfig))
}

func TestSeedConfigParse(t *testing.T) {
	yamlContent := `
seeds:
  roads_seed:
    caches: [roads_cache]
    grids: [webmercator]
    levels:
      from: 0
      to: 5
    refresh_before:
      days: 7

cleanups:
  stale:
    caches: [roads_cache]
    remove_before:
      weeks: 2
`

	seedConfig, err := createSeedConfigFromYamlContent([]byte(yamlContent))
	require.NoError(t, err)

	require.Contains(t, seedConfig.Seeds, "roads_seed")
	seed := seedConfig.Seeds["roads_seed"]
	assert.Equal(t, []string{"roads_cache"}, seed.Caches)
	require.NotNil(t, seed.Levels)
	assert.Equal(t, 0, *seed.Levels.From)
	assert.Equal(t, 5, *seed.Levels.To)
	require.NotNil(t, seed.RefreshBefore)
	assert.Equal(t, 7, *seed.RefreshBefore.Days)

	require.Contains(t, seedConfig.Cleanups, "stale")
	assert.Equal(t, 2, *seedConfig.Cleanups["stale"].RemoveBefore.Weeks)
}

func TestSeedConfigCheckReferences(t *testing.T) {
	proxyConfig := &ProxyConfig{
		Services: map[string]interface{}{"wms": nil},
		Layers:   []*Layer{{Name: "l", Sources: []string{"a_cache"}}},
		Caches: map[string]*Cache{
			"a_cache": {Grids: []string{"webmercator"}, Sources: []string{"s"}},
		},
		Sources: map[string]*Source{"s": {Type: "wms"}},
		Grids: map[string]*Grid{
			"webmercator": {Base: "GLOBAL_WEBMERCATOR"},
		},
	}
	seedConfig := &SeedConfig{
		Seeds: map[string]*SeedTask{
			"ok":      {Caches: []string{"a_cache"}, Grids: []string{"webmercator"}},
			"missing": {Caches: []string{"other_cache"}},
		},
	}

	broken := []Reference{}
	for _, reference := range seedConfig.CheckReferences(proxyConfig) {
		if !reference.OK {
			broken = append(broken, reference)
		}
	}

	require.Len(t, broken, 1)
	assert.Equal(t, "seed cache", broken[0].Kind)
	assert.Equal(t, "missing", broken[0].Owner)
	assert.Equal(t, "other_cache", broken[0].Target)
}

func TestSeedConfigValidate(t *testing.T) {
	proxyConfig := CreateDefaultProxyConfig()

	var tests = []struct {
		name        string
		config      *SeedConfig
		expectedErr string
	}{
		{
			"empty",
			&SeedConfig{},
			"no seeds and no cleanups defined",
		},
		{
			"seed without caches",
			&SeedConfig{Seeds: map[string]*SeedTask{"s": {}}},
			`seed "s" has no caches`,
		},
		{
			"inverted levels",
			&SeedConfig{Seeds: map[string]*SeedTask{
				"s": {
					Caches: []string{"osm_cache"},
					Levels: &SeedLevels{From: pointy.Int(8), To: pointy.Int(3)},
				},
			}},
			`seed "s" has an inverted levels range (8 > 3)`,
		},
		{
			"empty remove_before",
			&SeedConfig{Cleanups: map[string]*CleanupTask{
				"c": {
					Caches:       []string{"osm_cache"},
					RemoveBefore: &TimeDelta{},
				},
			}},
			`cleanup "c" has an empty remove_before`,
		},
		{
			"unknown cache",
			&SeedConfig{Seeds: map[string]*SeedTask{
				"s": {Caches: []string{"never_defined"}},
			}},
			`seed cache "never_defined" of "s" is not defined`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.config.Validate(proxyConfig)
			require.NotEmpty(t, errs)

			messages := []string{}
			for _, err := range errs {
				messages = append(messages, err.Error())
			}
			assert.Contains(t, messages, tt.expectedErr)
		})
	}
}
