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
	"os"
	"path/filepath"

	ignore "github.com/codeskyblue/dockerignore"
	"github.com/spf13/afero"
)

// ContextPatterns reads the .dockerignore patterns of the build context under
// dir. A missing .dockerignore means no pattern at all.
func ContextPatterns(fs afero.Fs, dir string) ([]string, error) {
	file, err := fs.Open(filepath.Join(dir, ".dockerignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	defer file.Close()
	return ignore.ReadIgnore(file)
}

// ListContext lists the files under dir that a docker build would send to the
// daemon, honoring the .dockerignore patterns.
func ListContext(fs afero.Fs, dir string) ([]string, error) {
	patterns, err := ContextPatterns(fs, dir)
	if err != nil {
		return nil, err
	}

	files := []string{}
	err = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relativePath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if relativePath == "." {
			return nil
		}

		isIgnored, err := ignore.Matches(relativePath, patterns)
		if err != nil {
			return err
		}
		if isIgnored {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() {
			files = append(files, relativePath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
