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
	"github.com/mapboot/mapboot/services/seeder"
	"github.com/mapboot/mapboot/version"
)

const (
	seedDirKey          = "dir"
	seedDirEnv          = "MAPBOOT_CONFIG_DIR"
	seedBinDirKey       = "bin_dir"
	seedBinDirEnv       = "MAPBOOT_BIN_DIR"
	seedEnvFileKey      = "env_file"
	seedEnvFileEnv      = "MAPBOOT_ENV_FILE"
	seedProxyConfigKey  = "proxy_config"
	seedSeedConfigKey   = "seed_config"
	seedSeedsKey        = "seeds"
	seedSeedsEnv        = "MAPBOOT_SEEDS"
	seedCleanupsKey     = "cleanups"
	seedCleanupsEnv     = "MAPBOOT_CLEANUPS"
	seedConcurrencyKey  = "concurrency"
	seedConcurrencyEnv  = "MAPBOOT_SEED_CONCURRENCY"
	seedDryRunKey       = "dry_run"
	seedContinueKey     = "continue"
	seedProgressFileKey = "progress_file"
	seedReseedFileKey   = "reseed_file"
	seedRetryKey        = "retry"
	seedRetryEnv        = "MAPBOOT_SEED_RETRY"
)

var seedViper = viper.New()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run mapproxy-seed over the workspace seed configuration",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"version": version.Version,
			"hash":    version.Hash,
		}).Info("Starting seeding")

		options := seeder.Options{
			Dir:             seedViper.GetString(seedDirKey),
			BinDir:          seedViper.GetString(seedBinDirKey),
			ProxyConfigFile: seedViper.GetString(seedProxyConfigKey),
			SeedConfigFile:  seedViper.GetString(seedSeedConfigKey),
			Seeds:           seedViper.GetStringSlice(seedSeedsKey),
			Cleanups:        seedViper.GetStringSlice(seedCleanupsKey),
			Concurrency:     seedViper.GetUint(seedConcurrencyKey),
			DryRun:          seedViper.GetBool(seedDryRunKey),
			Continue:        seedViper.GetBool(seedContinueKey),
			ProgressFile:    seedViper.GetString(seedProgressFileKey),
			ReseedFile:      seedViper.GetString(seedReseedFileKey),
			Retry:           seedViper.GetBool(seedRetryKey),
		}
		if envFile := seedViper.GetString(seedEnvFileKey); envFile != "" {
			options.EnvironmentFiles = []string{envFile}
		}

		ctx := launcher.ContextWithUserTermination(context.Background())
		return seeder.Run(ctx, options)
	},
}

func init() {
	seedViper.AllowEmptyEnv(true)

	seedViper.SetDefault(seedDirKey, seeder.DefaultOptions.Dir)
	_ = seedViper.BindEnv(seedDirKey, seedDirEnv)
	seedCmd.Flags().String(
		seedDirKey,
		seedViper.GetString(seedDirKey),
		"The mapproxy working directory",
	)

	seedViper.SetDefault(seedBinDirKey, seeder.DefaultOptions.BinDir)
	_ = seedViper.BindEnv(seedBinDirKey, seedBinDirEnv)
	seedCmd.Flags().String(
		seedBinDirKey,
		seedViper.GetString(seedBinDirKey),
		"Directory of the mapproxy-seed executable, empty means the PATH",
	)

	_ = seedViper.BindEnv(seedEnvFileKey, seedEnvFileEnv)
	seedCmd.Flags().String(
		seedEnvFileKey,
		seedViper.GetString(seedEnvFileKey),
		"Dotenv file layered over the child process environment",
	)

	seedViper.SetDefault(seedProxyConfigKey, seeder.DefaultOptions.ProxyConfigFile)
	seedCmd.Flags().String(
		seedProxyConfigKey,
		seedViper.GetString(seedProxyConfigKey),
		"The mapproxy configuration file, relative to the working directory",
	)

	seedViper.SetDefault(seedSeedConfigKey, seeder.DefaultOptions.SeedConfigFile)
	seedCmd.Flags().String(
		seedSeedConfigKey,
		seedViper.GetString(seedSeedConfigKey),
		"The seeding configuration file, relative to the working directory",
	)

	_ = seedViper.BindEnv(seedSeedsKey, seedSeedsEnv)
	seedCmd.Flags().StringSlice(
		seedSeedsKey,
		seedViper.GetStringSlice(seedSeedsKey),
		"Seed only the named tasks, repeatable, empty means all",
	)

	_ = seedViper.BindEnv(seedCleanupsKey, seedCleanupsEnv)
	seedCmd.Flags().StringSlice(
		seedCleanupsKey,
		seedViper.GetStringSlice(seedCleanupsKey),
		"Run only the named cleanup tasks, repeatable, empty means all",
	)

	seedViper.SetDefault(seedConcurrencyKey, seeder.DefaultOptions.Concurrency)
	_ = seedViper.BindEnv(seedConcurrencyKey, seedConcurrencyEnv)
	seedCmd.Flags().Uint(
		seedConcurrencyKey,
		seedViper.GetUint(seedConcurrencyKey),
		"Number of concurrent seeding processes",
	)

	seedCmd.Flags().Bool(
		seedDryRunKey,
		seedViper.GetBool(seedDryRunKey),
		"Simulate the seeding without writing tiles",
	)

	seedCmd.Flags().Bool(
		seedContinueKey,
		seedViper.GetBool(seedContinueKey),
		"Resume an interrupted seeding from the progress file",
	)

	seedCmd.Flags().String(
		seedProgressFileKey,
		seedViper.GetString(seedProgressFileKey),
		"Where mapproxy-seed tracks its progress",
	)

	seedCmd.Flags().String(
		seedReseedFileKey,
		seedViper.GetString(seedReseedFileKey),
		"Refresh tiles older than this file's timestamp",
	)

	_ = seedViper.BindEnv(seedRetryKey, seedRetryEnv)
	seedCmd.Flags().Bool(
		seedRetryKey,
		seedViper.GetBool(seedRetryKey),
		"Rerun a failed seeding with exponentially growing waits",
	)

	// Don't sort alphabetically, keep insertion order
	seedCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = seedViper.BindPFlags(seedCmd.Flags())
}
