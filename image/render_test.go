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

package image

import (
	"testing"

	"github.com/bradleyjkemp/cupaloy"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDockerfileDefault(t *testing.T) {
	content, err := RenderDockerfile(DefaultParams())
	require.NoError(t, err)

	assert.Contains(t, content, "ARG MAPPROXY_VERSION="+DefaultMapproxyVersion)
	assert.Contains(t, content, "MapProxy==${MAPPROXY_VERSION}")

	cupaloy.SnapshotT(t, content)
}

func TestRenderedDockerfileMatchesRepository(t *testing.T) {
	upToDate, err := CheckDockerfile(afero.NewOsFs(), "..", DefaultParams())
	require.NoError(t, err)
	assert.True(t, upToDate, "the committed Dockerfile drifted, run `mapboot image render`")
}

func TestRenderDockerfileIsDeterministic(t *testing.T) {
	params := Params{MapproxyVersion: "1.16.0", UwsgiVersion: "2.0.23", PythonVersion: "3.11"}

	first, err := RenderDockerfile(params)
	require.NoError(t, err)
	second, err := RenderDockerfile(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "ARG MAPPROXY_VERSION=1.16.0")
	assert.Contains(t, first, "FROM python:3.11-slim-bullseye")
}

func TestWriteDockerfile(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, WriteDockerfile(fs, "/work", DefaultParams()))

	upToDate, err := CheckDockerfile(fs, "/work", DefaultParams())
	require.NoError(t, err)
	assert.True(t, upToDate)

	exists, err := afero.Exists(fs, "/work/.dockerignore")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCheckDockerfileDetectsDrift(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, WriteDockerfile(fs, "/work", DefaultParams()))

	otherParams := DefaultParams()
	otherParams.MapproxyVersion = "1.16.0"
	upToDate, err := CheckDockerfile(fs, "/work", otherParams)
	require.NoError(t, err)
	assert.False(t, upToDate)

	require.NoError(t, afero.WriteFile(fs, "/work/Dockerfile", []byte("FROM scratch\n"), 0o644))
	upToDate, err = CheckDockerfile(fs, "/work", DefaultParams())
	require.NoError(t, err)
	assert.False(t, upToDate)
}

func TestCheckDockerfileMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := CheckDockerfile(fs, "/work", DefaultParams())
	require.Error(t, err)
}
