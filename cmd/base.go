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
	baseDirKey     = "dir"
	baseDirEnv     = "MAPBOOT_CONFIG_DIR"
	baseBinDirKey  = "bin_dir"
	baseBinDirEnv  = "MAPBOOT_BIN_DIR"
	baseEnvFileKey = "env_file"
	baseEnvFileEnv = "MAPBOOT_ENV_FILE"
	baseNoInitKey  = "no_init"
	baseNoInitEnv  = "MAPBOOT_NO_INIT"
)

var baseViper = viper.New()

var baseCmd = &cobra.Command{
	Use:   "base",
	Short: "Run mapproxy under uwsgi, the production mode",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"version": version.Version,
			"hash":    version.Hash,
		}).Info("Starting mapboot in base mode")

		options := mapproxy.Options{
			Dir:      baseViper.GetString(baseDirKey),
			BinDir:   baseViper.GetString(baseBinDirKey),
			SkipInit: baseViper.GetBool(baseNoInitKey),
		}
		if envFile := baseViper.GetString(baseEnvFileKey); envFile != "" {
			options.EnvironmentFiles = []string{envFile}
		}

		ctx := launcher.ContextWithUserTermination(context.Background())
		return mapproxy.RunBase(ctx, options)
	},
}

func init() {
	baseViper.AllowEmptyEnv(true)

	baseViper.SetDefault(baseDirKey, mapproxy.DefaultOptions.Dir)
	_ = baseViper.BindEnv(baseDirKey, baseDirEnv)
	baseCmd.Flags().String(
		baseDirKey,
		baseViper.GetString(baseDirKey),
		"The mapproxy working directory",
	)

	baseViper.SetDefault(baseBinDirKey, mapproxy.DefaultOptions.BinDir)
	_ = baseViper.BindEnv(baseBinDirKey, baseBinDirEnv)
	baseCmd.Flags().String(
		baseBinDirKey,
		baseViper.GetString(baseBinDirKey),
		"Directory of the uwsgi and mapproxy executables, empty means the PATH",
	)

	_ = baseViper.BindEnv(baseEnvFileKey, baseEnvFileEnv)
	baseCmd.Flags().String(
		baseEnvFileKey,
		baseViper.GetString(baseEnvFileKey),
		"Dotenv file layered over the child process environment",
	)

	_ = baseViper.BindEnv(baseNoInitKey, baseNoInitEnv)
	baseCmd.Flags().Bool(
		baseNoInitKey,
		baseViper.GetBool(baseNoInitKey),
		"Do not materialize missing default configuration files",
	)

	// Don't sort alphabetically, keep insertion order
	baseCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = baseViper.BindPFlags(baseCmd.Flags())
}
