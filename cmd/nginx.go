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

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// The nginx mode is declared so the dispatcher names it explicitly instead of
// treating it as an unknown mode. It has never been wired to a supervised
// process and starting it is an error.
var nginxCmd = &cobra.Command{
	Use:   "nginx",
	Short: "Unsupported mode, kept declared and disabled",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		return errors.New("the nginx mode is disabled, use base or development")
	},
}
