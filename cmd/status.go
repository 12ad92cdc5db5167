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
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/go-resty/resty/v2"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/mapboot/mapboot/probe"
	"github.com/mapboot/mapboot/utils"
)

const (
	statusURLKey = "url"
	statusURLEnv = "MAPBOOT_URL"
)

var statusViper = viper.New()

type statusRow struct {
	Check   string
	Target  string
	Healthy bool
	Detail  string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the local mapproxy and report its health",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		baseURL := statusViper.GetString(statusURLKey)
		address, err := statusAddress(baseURL)
		if err != nil {
			return err
		}

		client := probe.NewClient(baseURL)
		rows := runStatusChecks(context.Background(), client, address)

		var output []string
		header := []string{"CHECK", "TARGET", "STATUS"}
		output = append(output, strings.Join(header, "|"))

		failed := 0
		for _, row := range rows {
			status := color.GreenString("OK")
			if !row.Healthy {
				status = color.RedString("FAIL")
				failed++
			}
			if row.Detail != "" {
				status = fmt.Sprintf("%s (%s)", status, row.Detail)
			}
			output = append(output, strings.Join([]string{row.Check, row.Target, status}, "|"))
		}
		fmt.Println(columnize.SimpleFormat(output))

		if failed > 0 {
			return fmt.Errorf("%d of %d checks failed", failed, len(rows))
		}
		return nil
	},
}

// statusAddress derives the "host:port" to TCP check from the base URL.
func statusAddress(baseURL string) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", baseURL, err)
	}
	if parsedURL.Host == "" {
		return "", fmt.Errorf("invalid url %q: no host", baseURL)
	}
	if parsedURL.Port() == "" {
		return net.JoinHostPort(parsedURL.Hostname(), "80"), nil
	}
	return parsedURL.Host, nil
}

// runStatusChecks probes the TCP listener and the HTTP endpoints, all in
// parallel. An unhealthy answer is a row, not an error.
func runStatusChecks(ctx context.Context, client *resty.Client, address string) []statusRow {
	rows := make([]statusRow, 3)
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		row := statusRow{Check: "tcp", Target: address, Healthy: true}
		if err := utils.CheckTCP(address, probe.DefaultTimeout); err != nil {
			row.Healthy = false
			row.Detail = "no listener"
		}
		rows[0] = row
		return nil
	})

	endpoints := []struct {
		index    int
		check    string
		endpoint string
	}{
		{1, "demo", probe.DemoEndpoint},
		{2, "wms", probe.CapabilitiesEndpoint},
	}
	for _, target := range endpoints {
		target := target
		group.Go(func() error {
			row := statusRow{Check: target.check, Target: target.endpoint}
			statusCode, err := probe.Check(ctx, client, target.endpoint)
			if err != nil {
				row.Detail = "unreachable"
			} else {
				row.Healthy = probe.Healthy(statusCode)
				row.Detail = fmt.Sprintf("%d", statusCode)
			}
			rows[target.index] = row
			return nil
		})
	}

	_ = group.Wait()
	return rows
}

func init() {
	statusViper.AllowEmptyEnv(true)

	statusViper.SetDefault(statusURLKey, probe.DefaultURL)
	_ = statusViper.BindEnv(statusURLKey, statusURLEnv)
	statusCmd.Flags().String(
		statusURLKey,
		statusViper.GetString(statusURLKey),
		"Base URL of the mapproxy instance to probe",
	)

	// Don't sort alphabetically, keep insertion order
	statusCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = statusViper.BindPFlags(statusCmd.Flags())
}
