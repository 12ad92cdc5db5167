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

package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mapboot/mapboot/utils"
)

const DefaultTimeout = 5 * time.Second

// DefaultURL is where a container-local mapproxy answers, both under uwsgi
// and under the development server.
const DefaultURL = "http://localhost:8080"

// The endpoints a running mapproxy instance answers on when the matching
// service is enabled in mapproxy.yaml.
const (
	DemoEndpoint         = "/demo/"
	CapabilitiesEndpoint = "/service?REQUEST=GetCapabilities&SERVICE=WMS&VERSION=1.1.1"
)

func NewClient(baseURL string) *resty.Client {
	client := resty.New()
	client.SetHostURL(baseURL)
	client.SetTimeout(DefaultTimeout)
	return client
}

// Check requests the endpoint and returns its HTTP status code. A transport
// failure, a refused connection typically, is returned as an error.
func Check(ctx context.Context, client *resty.Client, endpoint string) (int, error) {
	resp, err := client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

// Healthy tells whether a status code counts as a live answer.
func Healthy(statusCode int) bool {
	return statusCode >= 200 && statusCode < 400
}

// WaitReady polls the endpoint until it answers healthily, retrying with the
// given backoff. It returns the last failure when the attempts are exhausted
// and the context error when cancelled first.
func WaitReady(ctx context.Context, client *resty.Client, endpoint string, backoff utils.Backoff) error {
	return utils.RetryWithBackoff(ctx, backoff, func() error {
		statusCode, err := Check(ctx, client, endpoint)
		if err != nil {
			return err
		}
		if !Healthy(statusCode) {
			return fmt.Errorf("%q answered with status %d", endpoint, statusCode)
		}
		return nil
	})
}
