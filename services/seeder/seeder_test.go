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

package seeder

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapboot/mapboot/api"
	"github.com/mapboot/mapboot/utils"
)

func TestExtendDefaultOptions(t *testing.T) {
	extended, err := ExtendDefaultOptions(&Options{})
	require.NoError(t, err)
	assert.Equal(t, "/mapproxy", extended.Dir)
	assert.Equal(t, "mapproxy.yaml", extended.ProxyConfigFile)
	assert.Equal(t, "seed.yaml", extended.SeedConfigFile)
	assert.Equal(t, uint(2), extended.Concurrency)
	assert.Equal(t, utils.DefaultBackoffStart, extended.Backoff.Start)

	extended, err = ExtendDefaultOptions(&Options{
		Concurrency: 8,
		Backoff:     utils.Backoff{Start: time.Second, MaxAttempts: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(8), extended.Concurrency)
	assert.Equal(t, time.Second, extended.Backoff.Start)
	assert.Equal(t, 3, extended.Backoff.MaxAttempts)
}

func TestSeedTask(t *testing.T) {
	options, err := ExtendDefaultOptions(&Options{})
	require.NoError(t, err)

	task, err := SeedTask(options)
	require.NoError(t, err)
	assert.Equal(t, "mapproxy-seed", task.Name)
	assert.Equal(t, []string{
		"mapproxy-seed",
		"-f", "mapproxy.yaml",
		"-s", "seed.yaml",
		"-c", "2",
	}, task.Args)
	assert.Equal(t, "/mapproxy", task.Dir)
}

func TestSeedTaskSelection(t *testing.T) {
	task, err := SeedTask(&Options{
		BinDir:          "/opt/venv/bin",
		ProxyConfigFile: "mapproxy.yaml",
		SeedConfigFile:  "seed.yaml",
		Seeds:           []string{"osm_seed"},
		Cleanups:        []string{"old_osm_tiles"},
		DryRun:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/opt/venv/bin/mapproxy-seed",
		"-f", "mapproxy.yaml",
		"-s", "seed.yaml",
		"--seed", "osm_seed",
		"--cleanup", "old_osm_tiles",
		"--dry-run",
	}, task.Args)
}

func TestSeedTaskResume(t *testing.T) {
	task, err := SeedTask(&Options{
		ProxyConfigFile: "mapproxy.yaml",
		SeedConfigFile:  "seed.yaml",
		Continue:        true,
		ProgressFile:    ".seed_progress",
		ReseedFile:      "reseed.time",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mapproxy-seed",
		"-f", "mapproxy.yaml",
		"-s", "seed.yaml",
		"--continue",
		"--progress-file", ".seed_progress",
		"--reseed-file", "reseed.time",
	}, task.Args)
}

func TestCheckSelection(t *testing.T) {
	seedConfig := api.CreateDefaultSeedConfig()

	require.NoError(t, CheckSelection(&Options{}, seedConfig))
	require.NoError(t, CheckSelection(&Options{
		Seeds:    []string{"osm_seed"},
		Cleanups: []string{"old_osm_tiles"},
	}, seedConfig))

	err := CheckSelection(&Options{Seeds: []string{"osm_seed", "nope"}}, seedConfig)
	require.Error(t, err)
	assert.Equal(t, "unknown seeds selected: nope", err.Error())

	err = CheckSelection(&Options{Cleanups: []string{"b", "a"}}, seedConfig)
	require.Error(t, err)
	assert.Equal(t, "unknown cleanups selected: a, b", err.Error())
}

func TestCacheSize(t *testing.T) {
	fs := afero.NewMemMapFs()

	size, err := CacheSize(fs, "/mapproxy/cache_data")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), size)

	require.NoError(t, afero.WriteFile(fs, "/mapproxy/cache_data/a/1.png", make([]byte, 100), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/mapproxy/cache_data/a/2.png", make([]byte, 50), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/mapproxy/cache_data/b/3.png", make([]byte, 7), 0o644))

	size, err = CacheSize(fs, "/mapproxy/cache_data")
	require.NoError(t, err)
	assert.Equal(t, uint64(157), size)
}
