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
	"net"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapboot/mapboot/probe"
)

func TestStatusAddress(t *testing.T) {
	var tests = []struct {
		url      string
		expected string
		hasErr   bool
	}{
		{"http://localhost:8080", "localhost:8080", false},
		{"http://tiles.example.com", "tiles.example.com:80", false},
		{"https://tiles.example.com:8443/wms", "tiles.example.com:8443", false},
		// Without a scheme the host part is not recognized.
		{"localhost:8080", "", true},
		{"not a url at all", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			address, err := statusAddress(tt.url)
			if tt.hasErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, address)
		})
	}
}

func TestRunStatusChecks(t *testing.T) {
	// A live listener makes the tcp row healthy.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	client := probe.NewClient("http://localhost:8080")

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", probe.DemoEndpoint,
		httpmock.NewStringResponder(200, "<html>demo</html>"))
	httpmock.RegisterResponder("GET", "/service",
		httpmock.NewStringResponder(500, "internal error"))

	rows := runStatusChecks(context.Background(), client, listener.Addr().String())
	require.Len(t, rows, 3)

	assert.Equal(t, "tcp", rows[0].Check)
	assert.True(t, rows[0].Healthy)

	assert.Equal(t, "demo", rows[1].Check)
	assert.True(t, rows[1].Healthy)
	assert.Equal(t, "200", rows[1].Detail)

	assert.Equal(t, "wms", rows[2].Check)
	assert.False(t, rows[2].Healthy)
	assert.Equal(t, "500", rows[2].Detail)
}

func TestRunStatusChecksUnreachable(t *testing.T) {
	client := probe.NewClient("http://localhost:8080")

	// No responder registered, every request fails at the transport.
	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	// Nothing listens on a freshly closed port.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	rows := runStatusChecks(context.Background(), client, address)
	require.Len(t, rows, 3)

	assert.False(t, rows[0].Healthy)
	assert.Equal(t, "no listener", rows[0].Detail)
	assert.False(t, rows[1].Healthy)
	assert.Equal(t, "unreachable", rows[1].Detail)
	assert.False(t, rows[2].Healthy)
	assert.Equal(t, "unreachable", rows[2].Detail)
}
