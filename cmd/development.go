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
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mapboot/mapboot/launcher"
	"github.com/mapboot/mapboot/services/mapproxy"
	"github.com/mapboot/mapboot/version"
)

const (
	developmentDirKey     = "dir"
	developmentDirEnv     = "MAPBOOT_CONFIG_DIR"
	developmentBinDirKey  = "bin_dir"
	developmentBinDirEnv  = "MAPBOOT_BIN_DIR"
	developmentEnvFileKey = "env_file"
	developmentEnvFileEnv = "MAPBOOT_ENV_FILE"
	developmentNoInitKey  = "no_init"
	developmentNoInitEnv  = "MAPBOOT_NO_INIT"
)

var developmentViper = viper.New()

var developmentCmd = &cobra.Command{
	Use:   "development",
	Short: "Run the reloading mapproxy development server on port 8080",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"version": version.Version,
			"hash":    version.Hash,
		}).Info("Starting mapboot in development mode")

		options := mapproxy.Options{
			Dir:      developmentViper.GetString(developmentDirKey),
			BinDir:   developmentViper.GetString(developmentBinDirKey),
			SkipInit: developmentViper.GetBool(developmentNoInitKey),
		}
		if envFile := developmentViper.GetString(developmentEnvFileKey); envFile != "" {
			options.EnvironmentFiles = []string{envFile}
		}

		ctx := launcher.ContextWithUserTermination(context.Background())
		return mapproxy.RunDevelopment(ctx, options)
	},
}

func init() {
	developmentViper.AllowEmptyEnv(true)

	developmentViper.SetDefault(developmentDirKey, mapproxy.DefaultOptions.Dir)
	_ = developmentViper.BindEnv(developmentDirKey, developmentDirEnv)
	developmentCmd.Flags().String(
		developmentDirKey,
		developmentViper.GetString(developmentDirKey),
		"The mapproxy working directory",
	)

	developmentViper.SetDefault(developmentBinDirKey, mapproxy.DefaultOptions.BinDir)
	_ = developmentViper.BindEnv(developmentBinDirKey, developmentBinDirEnv)
	developmentCmd.Flags().String(
		developmentBinDirKey,
		developmentViper.GetString(developmentBinDirKey),
		"Directory of the uwsgi and mapproxy executables, empty means the PATH",
	)

	_ = developmentViper.BindEnv(developmentEnvFileKey, developmentEnvFileEnv)
	developmentCmd.Flags().String(
		developmentEnvFileKey,
		developmentViper.GetString(developmentEnvFileKey),
		"Dotenv file layered over the child process environment",
	)

	_ = developmentViper.BindEnv(developmentNoInitKey, developmentNoInitEnv)
	developmentCmd.Flags().Bool(
		developmentNoInitKey,
		developmentViper.GetBool(developmentNoInitKey),
		"Do not materialize missing default configuration files",
	)

	// Don't sort alphabetically, keep insertion order
	developmentCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = developmentViper.BindPFlags(developmentCmd.Flags())
}
