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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeEnvInheritsProcessEnv(t *testing.T) {
	t.Setenv("MAPBOOT_TEST_INHERITED", "yes")

	env, err := ComposeEnv()
	require.NoError(t, err)
	assert.Contains(t, env, "MAPBOOT_TEST_INHERITED=yes")
}

func TestComposeEnvFileOverrides(t *testing.T) {
	t.Setenv("MAPBOOT_TEST_OVERRIDDEN", "process")

	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("MAPBOOT_TEST_OVERRIDDEN=first\nMAPBOOT_TEST_EXTRA=1\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("MAPBOOT_TEST_OVERRIDDEN=second\n"), 0o644))

	env, err := ComposeEnv(first, second)
	require.NoError(t, err)
	assert.Contains(t, env, "MAPBOOT_TEST_OVERRIDDEN=second")
	assert.Contains(t, env, "MAPBOOT_TEST_EXTRA=1")
	assert.NotContains(t, env, "MAPBOOT_TEST_OVERRIDDEN=process")
}

func TestComposeEnvMissingFile(t *testing.T) {
	_, err := ComposeEnv(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
}
