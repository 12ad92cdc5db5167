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
	"bytes"
	"fmt"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/spf13/afero"
)

// Stage is one FROM instruction of the Dockerfile.
type Stage struct {
	Image string
	Name  string
}

// BuildArg is one ARG instruction, with its default value when the
// instruction declares one.
type BuildArg struct {
	Name    string
	Default string
}

// Copied is one COPY instruction: the staged sources, their destination and
// the stage they come from when --from is used.
type Copied struct {
	Sources     []string
	Destination string
	From        string
}

// Inspection is the build surface of a Dockerfile: its stages, the build
// parameters it accepts, the staged artifacts and the runtime interface of
// the final image.
type Inspection struct {
	Stages     []Stage
	BuildArgs  []BuildArg
	Copies     []Copied
	Exposed    []string
	Entrypoint []string
	Cmd        []string
}

// BuildArgDefault returns the default value of the named ARG instruction.
func (i *Inspection) BuildArgDefault(name string) (string, bool) {
	for _, arg := range i.BuildArgs {
		if arg.Name == name {
			return arg.Default, true
		}
	}
	return "", false
}

func nodeArgs(node *parser.Node) []string {
	args := []string{}
	for n := node.Next; n != nil; n = n.Next {
		args = append(args, n.Value)
	}
	return args
}

// InspectContent parses a Dockerfile and collects its build surface.
func InspectContent(content []byte) (*Inspection, error) {
	ast, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("unable to parse Dockerfile: %w", err)
	}

	inspection := &Inspection{}
	for _, child := range ast.AST.Children {
		args := nodeArgs(child)
		switch strings.ToUpper(child.Value) {
		case "FROM":
			stage := Stage{}
			if len(args) > 0 {
				stage.Image = args[0]
			}
			if len(args) == 3 && strings.EqualFold(args[1], "AS") {
				stage.Name = args[2]
			}
			inspection.Stages = append(inspection.Stages, stage)
		case "ARG":
			for _, arg := range args {
				buildArg := BuildArg{Name: arg}
				if idx := strings.Index(arg, "="); idx >= 0 {
					buildArg.Name = arg[:idx]
					buildArg.Default = arg[idx+1:]
				}
				inspection.BuildArgs = append(inspection.BuildArgs, buildArg)
			}
		case "COPY":
			if len(args) < 2 {
				continue
			}
			copied := Copied{
				Sources:     args[:len(args)-1],
				Destination: args[len(args)-1],
			}
			for _, flag := range child.Flags {
				if strings.HasPrefix(flag, "--from=") {
					copied.From = strings.TrimPrefix(flag, "--from=")
				}
			}
			inspection.Copies = append(inspection.Copies, copied)
		case "EXPOSE":
			inspection.Exposed = append(inspection.Exposed, args...)
		case "ENTRYPOINT":
			inspection.Entrypoint = args
		case "CMD":
			inspection.Cmd = args
		}
	}
	return inspection, nil
}

// Inspect reads and parses the Dockerfile at path.
func Inspect(fs afero.Fs, path string) (*Inspection, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return InspectContent(content)
}
