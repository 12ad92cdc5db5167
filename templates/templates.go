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

package templates

import (
	"bytes"
	"path/filepath"
	"text/template"

	"github.com/spf13/afero"
)

// Render renders a template string with the given data. Missing keys are
// errors so a template never silently renders "<no value>".
func Render(name string, tmpl string, data interface{}) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", err
	}

	buf := bytes.Buffer{}
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// GenerateFromTemplate renders a template and writes the result at outputPath,
// creating parent directories as needed.
func GenerateFromTemplate(fs afero.Fs, tmpl string, data interface{}, outputPath string) error {
	content, err := Render(filepath.Base(outputPath), tmpl, data)
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	return afero.WriteFile(fs, outputPath, []byte(content), 0o644)
}
