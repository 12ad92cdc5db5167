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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mapboot/mapboot/launcher"
	"github.com/mapboot/mapboot/probe"
	"github.com/mapboot/mapboot/utils"
)

const (
	waitURLKey     = "url"
	waitURLEnv     = "MAPBOOT_URL"
	waitTimeoutKey = "timeout"
	waitTimeoutEnv = "MAPBOOT_WAIT_TIMEOUT"
)

const waitDefaultTimeout = 60 * time.Second

var waitViper = viper.New()

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until the local mapproxy answers",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		baseURL := waitViper.GetString(waitURLKey)
		timeout := waitViper.GetDuration(waitTimeoutKey)

		ctx := launcher.ContextWithUserTermination(context.Background())
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		log.WithField("url", baseURL).Info("Waiting for mapproxy")

		client := probe.NewClient(baseURL)
		backoff := utils.Backoff{
			Start:       time.Second,
			Max:         10 * time.Second,
			MaxAttempts: 100,
		}
		err = probe.WaitReady(ctx, client, probe.DemoEndpoint, backoff)
		if err != nil {
			return err
		}

		log.Info("mapproxy is ready")
		return nil
	},
}

func init() {
	waitViper.AllowEmptyEnv(true)

	waitViper.SetDefault(waitURLKey, probe.DefaultURL)
	_ = waitViper.BindEnv(waitURLKey, waitURLEnv)
	waitCmd.Flags().String(
		waitURLKey,
		waitViper.GetString(waitURLKey),
		"Base URL of the mapproxy instance to wait for",
	)

	waitViper.SetDefault(waitTimeoutKey, waitDefaultTimeout)
	_ = waitViper.BindEnv(waitTimeoutKey, waitTimeoutEnv)
	waitCmd.Flags().Duration(
		waitTimeoutKey,
		waitViper.GetDuration(waitTimeoutKey),
		"Give up after this delay",
	)

	// Don't sort alphabetically, keep insertion order
	waitCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = waitViper.BindPFlags(waitCmd.Flags())
}
