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
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mapboot/mapboot/launcher"
)

var cfgFile string

// rootViper represents the logging configuration shared by every command
var rootViper = viper.New()

var rootLogLevelKey = "log_level"
var rootLogFileKey = "log_file"
var rootLogFormatKey = "log_format"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "mapboot",
	Short:         "Run and supervise mapproxy in a container",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the dispatcher and maps the outcome to the process exit code:
// 0 on a clean stop, the child's own exit code when the wrapped service
// failed, 1 for everything else.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(launcher.ExitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.mapboot.yaml)")

	rootViper.SetDefault(rootLogLevelKey, logrus.InfoLevel.String())
	_ = rootViper.BindEnv(rootLogLevelKey, "MAPBOOT_LOG_LEVEL")
	rootCmd.PersistentFlags().String(
		rootLogLevelKey,
		rootViper.GetString(rootLogLevelKey),
		fmt.Sprintf("Minimum logging level as one of %v", expectedLogLevels),
	)

	_ = rootViper.BindEnv(rootLogFileKey, "MAPBOOT_LOG_FILE")
	rootCmd.PersistentFlags().String(
		rootLogFileKey,
		rootViper.GetString(rootLogFileKey),
		"Log file output",
	)

	_ = rootViper.BindEnv(rootLogFormatKey, "MAPBOOT_LOG_FORMAT")
	rootCmd.PersistentFlags().String(
		rootLogFormatKey,
		rootViper.GetString(rootLogFormatKey),
		fmt.Sprintf(
			"Log format as one of %v, default is %q, when a log file is specified it is %q",
			expectedLogFormats, text, json,
		),
	)

	// Don't sort alphabetically, keep insertion order
	rootCmd.PersistentFlags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = rootViper.BindPFlags(rootCmd.PersistentFlags())

	// Modes
	rootCmd.AddCommand(baseCmd)
	rootCmd.AddCommand(developmentCmd)
	rootCmd.AddCommand(nginxCmd)

	// Operations
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in the optional config file.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		rootViper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".mapboot" (without extension).
		rootViper.AddConfigPath(home)
		rootViper.SetConfigName(".mapboot")
	}

	// If a config file is found, read it in.
	if err := rootViper.ReadInConfig(); err == nil {
		log.WithField("file", rootViper.ConfigFileUsed()).Debug("Using config file")
	}
}
