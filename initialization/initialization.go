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
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mapboot/mapboot/templates"
)

// DefaultFile is one workspace file mapboot knows how to materialize.
type DefaultFile struct {
	Name     string
	Template string
}

// DefaultFiles lists the files a runnable mapproxy workspace is made of, in
// creation order.
func DefaultFiles() []DefaultFile {
	return []DefaultFile{
		{Name: "mapproxy.yaml", Template: templates.MAPPROXY_YML},
		{Name: "seed.yaml", Template: templates.SEED_YML},
		{Name: "app.py", Template: templates.APP_PY},
		{Name: "uwsgi.ini", Template: templates.UWSGI_INI},
	}
}

// Missing returns the names of the workspace files that do not exist yet
// under dir.
func Missing(fs afero.Fs, dir string) ([]string, error) {
	missing := []string{}
	for _, file := range DefaultFiles() {
		exists, err := afero.Exists(fs, filepath.Join(dir, file.Name))
		if err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, file.Name)
		}
	}
	return missing, nil
}

// EnsureFiles creates every missing workspace file under dir from its default
// template and returns the names of the files it created. Existing files are
// left untouched, whatever their content.
func EnsureFiles(fs afero.Fs, dir string) ([]string, error) {
	created := []string{}
	for _, file := range DefaultFiles() {
		outputPath := filepath.Join(dir, file.Name)
		exists, err := afero.Exists(fs, outputPath)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := templates.GenerateFromTemplate(fs, file.Template, nil, outputPath); err != nil {
			return created, fmt.Errorf("unable to create %q: %w", outputPath, err)
		}
		created = append(created, file.Name)
	}
	return created, nil
}
