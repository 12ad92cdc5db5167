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

package utils

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatEntry(t *testing.T, formatter LoggerFormatter, entry *logrus.Entry) string {
	out, err := formatter.Format(entry)
	require.NoError(t, err)
	return string(out)
}

func TestLoggerFormatterPrefixFields(t *testing.T) {
	formatter := MakeLoggerFormatter([]string{"component", "sub_component"}, nil, false)

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "service started",
		Data: logrus.Fields{
			"component":     "launcher",
			"sub_component": "mapproxy",
			"port":          8080,
		},
	}

	out := formatEntry(t, formatter, entry)

	assert.Contains(t, out, "2025-03-14T12:00:00Z")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "[launcher>mapproxy]")
	assert.Contains(t, out, "service started")
	assert.Contains(t, out, "[port:8080]")
}

func TestLoggerFormatterLevelNames(t *testing.T) {
	levelNames := map[logrus.Level]string{
		logrus.InfoLevel: "stdout",
		logrus.WarnLevel: "stderr",
	}
	formatter := MakeLoggerFormatter([]string{"cmd"}, levelNames, false)

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "a line of process output",
		Data:    logrus.Fields{"cmd": "uwsgi"},
	}

	out := formatEntry(t, formatter, entry)

	assert.Contains(t, out, "[stdout]")
	assert.Contains(t, out, "[uwsgi]")
}

func TestLoggerFormatterMinimalOutput(t *testing.T) {
	formatter := MakeLoggerFormatter([]string{"cmd"}, nil, true)

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "something happened",
		Data:    logrus.Fields{"cmd": "seed"},
	}

	out := formatEntry(t, formatter, entry)

	assert.NotContains(t, out, "2025-03-14")
	assert.NotContains(t, out, "[WARN]")
	assert.Contains(t, out, "[seed]")
	assert.Contains(t, out, "something happened")
}
