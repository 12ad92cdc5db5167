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
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mapboot/mapboot/templates"
)

const (
	DefaultMapproxyVersion = "1.15.1"
	DefaultUwsgiVersion    = "2.0.21"
	DefaultPythonVersion   = "3.10"
)

// Params are the build parameters baked into the rendered Dockerfile. They
// only provide the defaults of the ARG instructions, `docker build
// --build-arg` can still override them at build time.
type Params struct {
	MapproxyVersion string
	UwsgiVersion    string
	PythonVersion   string
}

func DefaultParams() Params {
	return Params{
		MapproxyVersion: DefaultMapproxyVersion,
		UwsgiVersion:    DefaultUwsgiVersion,
		PythonVersion:   DefaultPythonVersion,
	}
}

// RenderDockerfile renders the image Dockerfile for the given build
// parameters. The same parameters always produce the same content.
func RenderDockerfile(params Params) (string, error) {
	return templates.Render("Dockerfile", templates.DOCKERFILE, params)
}

// WriteDockerfile renders the Dockerfile and the .dockerignore next to it
// under dir, overwriting previous renders.
func WriteDockerfile(fs afero.Fs, dir string, params Params) error {
	if err := templates.GenerateFromTemplate(
		fs, templates.DOCKERFILE, params, filepath.Join(dir, "Dockerfile"),
	); err != nil {
		return err
	}
	return templates.GenerateFromTemplate(
		fs, templates.DOCKERIGNORE, nil, filepath.Join(dir, ".dockerignore"),
	)
}

// CheckDockerfile reports whether the Dockerfile under dir matches what
// RenderDockerfile produces for the given build parameters.
func CheckDockerfile(fs afero.Fs, dir string, params Params) (bool, error) {
	expected, err := RenderDockerfile(params)
	if err != nil {
		return false, err
	}
	content, err := afero.ReadFile(fs, filepath.Join(dir, "Dockerfile"))
	if err != nil {
		return false, err
	}
	return string(content) == expected, nil
}
