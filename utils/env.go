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
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// ComposeEnv builds the environment for a child process: the current process
// environment, extended by the given dotenv files in order (later files win).
func ComposeEnv(envFiles ...string) ([]string, error) {
	merged := map[string]string{}
	for _, entry := range os.Environ() {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		merged[name] = value
	}

	for _, file := range envFiles {
		if file == "" {
			continue
		}
		vars, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read env file %q: %w", file, err)
		}
		for name, value := range vars {
			merged[name] = value
		}
	}

	result := make([]string, 0, len(merged))
	for name, value := range merged {
		result = append(result, name+"="+value)
	}
	sort.Strings(result)
	return result, nil
}
