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

package launcher

import (
	"regexp"

	"github.com/mapboot/mapboot/utils"
)

// Task describes one foreground process to supervise.
type Task struct {
	// Name identifies the task in log lines
	Name string
	// Args is the full command line, Args[0] is the executable
	Args []string
	// Dir is the working directory, empty means the current one
	Dir string
	// Environment for the process, nil means inherit
	Environment []string
	// ReadyRegex, when set, is matched against every output line to trigger Ready
	ReadyRegex *regexp.Regexp
	// Ready is set once ReadyRegex matched, a task without regex is ready at start
	Ready *utils.ReadySignal
	// Quiet drops the process output instead of relaying it
	Quiet bool
}
