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

package launcher

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mapboot/mapboot/utils"
)

// The launcher owns a dedicated logger: the info and warn levels are
// repurposed to relay the stdout and stderr streams of the supervised process,
// the launcher's own messages are logged one level below.
var log = logrus.New()

var launcherLevelNames = map[logrus.Level]string{
	logrus.TraceLevel: "TRACE ",
	logrus.DebugLevel: "INFO  ", // Repurposed
	logrus.InfoLevel:  "stdout", // We appropriate this level for the stdout process output
	logrus.WarnLevel:  "stderr", // We appropriate this level for the stderr process output
	logrus.ErrorLevel: "ERROR ",
}

func init() {
	formatter := utils.MakeLoggerFormatter([]string{"cmd"}, launcherLevelNames, false)
	log.SetFormatter(&formatter)
}

// ConfigureLog aligns the launcher logger with the global logging setup. A nil
// output keeps the default stderr.
func ConfigureLog(level logrus.Level, jsonFormat bool, output io.Writer) {
	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		formatter := utils.MakeLoggerFormatter([]string{"cmd"}, launcherLevelNames, false)
		log.SetFormatter(&formatter)
	}

	if output != nil {
		log.SetOutput(output)
	}

	switch level {
	case logrus.TraceLevel:
		log.SetLevel(logrus.TraceLevel)
	case logrus.DebugLevel:
		log.SetLevel(logrus.DebugLevel)
	case logrus.PanicLevel:
		// "off", silence the process output as well
		log.SetLevel(logrus.PanicLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}
