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
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mapboot/mapboot/api"
	"github.com/mapboot/mapboot/initialization"
	"github.com/mapboot/mapboot/services/mapproxy"
)

const (
	configDirKey = "dir"
	configDirEnv = "MAPBOOT_CONFIG_DIR"
)

var configViper = viper.New()

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the mapproxy configuration files",
	Args:  cobra.NoArgs,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration files that are missing",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		dir := configViper.GetString(configDirKey)
		created, err := initialization.EnsureFiles(afero.NewOsFs(), dir)
		if err != nil {
			return err
		}
		for _, name := range created {
			log.WithField("file", name).Info("Created default configuration file")
		}
		if len(created) == 0 {
			log.WithField("dir", dir).Info("All configuration files are already present")
		}
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate mapproxy.yaml and seed.yaml without starting anything",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		dir := configViper.GetString(configDirKey)
		proxyConfig, err := api.CreateProxyConfigFromYaml(filepath.Join(dir, "mapproxy.yaml"))
		if err != nil {
			return err
		}
		seedConfig, err := api.CreateSeedConfigFromYaml(filepath.Join(dir, "seed.yaml"))
		if err != nil {
			return err
		}

		references := proxyConfig.CheckReferences()
		references = append(references, seedConfig.CheckReferences(proxyConfig)...)

		broken := 0
		table := tablewriter.NewWriter(os.Stdout)
		table.SetBorder(false)
		table.SetHeader([]string{"kind", "owner", "target", "resolved"})
		for _, reference := range references {
			resolved := "yes"
			if !reference.OK {
				resolved = "NO"
				broken++
			}
			table.Append([]string{reference.Kind, reference.Owner, reference.Target, resolved})
		}
		table.SetCaption(true, fmt.Sprintf("%d references checked, %d broken", len(references), broken))
		table.Render()

		issues := proxyConfig.Validate()
		issues = append(issues, seedConfig.Validate(proxyConfig)...)
		for _, issue := range issues {
			log.WithField("issue", issue).Error("Configuration issue")
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d configuration issues found", len(issues))
		}
		return nil
	},
}

func init() {
	configViper.AllowEmptyEnv(true)

	configViper.SetDefault(configDirKey, mapproxy.DefaultDir)
	_ = configViper.BindEnv(configDirKey, configDirEnv)
	configCmd.PersistentFlags().String(
		configDirKey,
		configViper.GetString(configDirKey),
		"The mapproxy working directory",
	)

	// Don't sort alphabetically, keep insertion order
	configCmd.PersistentFlags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = configViper.BindPFlags(configCmd.PersistentFlags())

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
}
