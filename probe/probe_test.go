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
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapboot/mapboot/utils"
)

func TestHealthy(t *testing.T) {
	var tests = []struct {
		statusCode int
		expected   bool
	}{
		{200, true},
		{302, true},
		{400, false},
		{404, false},
		{503, false},
		{0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, Healthy(tt.statusCode))
		})
	}
}

func TestCheck(t *testing.T) {
	client := NewClient("http://localhost:8080")

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DemoEndpoint,
		httpmock.NewStringResponder(200, "<html>demo</html>"))
	httpmock.RegisterResponder("GET", "/service",
		httpmock.NewStringResponder(404, "not found"))

	statusCode, err := Check(context.Background(), client, DemoEndpoint)
	require.NoError(t, err)
	assert.Equal(t, 200, statusCode)
	assert.True(t, Healthy(statusCode))

	statusCode, err = Check(context.Background(), client, CapabilitiesEndpoint)
	require.NoError(t, err)
	assert.Equal(t, 404, statusCode)
	assert.False(t, Healthy(statusCode))
}

func TestCheckTransportFailure(t *testing.T) {
	client := NewClient("http://localhost:8080")

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	// No responder registered, the transport refuses the request.
	_, err := Check(context.Background(), client, DemoEndpoint)
	require.Error(t, err)
}

func TestWaitReady(t *testing.T) {
	client := NewClient("http://localhost:8080")

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("GET", DemoEndpoint,
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return httpmock.NewStringResponse(503, "starting up"), nil
			}
			return httpmock.NewStringResponse(200, "<html>demo</html>"), nil
		})

	backoff := utils.Backoff{Start: time.Millisecond, MaxAttempts: 5}
	err := WaitReady(context.Background(), client, DemoEndpoint, backoff)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitReadyExhausted(t *testing.T) {
	client := NewClient("http://localhost:8080")

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DemoEndpoint,
		httpmock.NewStringResponder(503, "still starting"))

	backoff := utils.Backoff{Start: time.Millisecond, MaxAttempts: 3}
	err := WaitReady(context.Background(), client, DemoEndpoint, backoff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestWaitReadyCancelled(t *testing.T) {
	client := NewClient("http://localhost:8080")

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DemoEndpoint,
		httpmock.NewStringResponder(503, "still starting"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitReady(ctx, client, DemoEndpoint, utils.DefaultBackoff())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
