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

package initialization

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapboot/mapboot/templates"
)

func TestEnsureFilesCreatesEverything(t *testing.T) {
	fs := afero.NewMemMapFs()

	created, err := EnsureFiles(fs, "/mapproxy")
	require.NoError(t, err)
	assert.Equal(t, []string{"mapproxy.yaml", "seed.yaml", "app.py", "uwsgi.ini"}, created)

	content, err := afero.ReadFile(fs, "/mapproxy/mapproxy.yaml")
	require.NoError(t, err)
	assert.Equal(t, templates.MAPPROXY_YML, string(content))

	missing, err := Missing(fs, "/mapproxy")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestEnsureFilesIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := EnsureFiles(fs, "/mapproxy")
	require.NoError(t, err)

	created, err := EnsureFiles(fs, "/mapproxy")
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestEnsureFilesNeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()

	customContent := "services:\n  wms:\n"
	require.NoError(t, afero.WriteFile(fs, "/mapproxy/mapproxy.yaml", []byte(customContent), 0o644))

	created, err := EnsureFiles(fs, "/mapproxy")
	require.NoError(t, err)
	assert.Equal(t, []string{"seed.yaml", "app.py", "uwsgi.ini"}, created)

	content, err := afero.ReadFile(fs, "/mapproxy/mapproxy.yaml")
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content))
}

func TestMissingReportsAbsentFiles(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/mapproxy/app.py", []byte("application = None\n"), 0o644))

	missing, err := Missing(fs, "/mapproxy")
	require.NoError(t, err)
	assert.Equal(t, []string{"mapproxy.yaml", "seed.yaml", "uwsgi.ini"}, missing)
}
