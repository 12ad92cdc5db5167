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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"sync"
	"syscall"
	"time"

	"github.com/mapboot/mapboot/utils"
)

const maxOutputLineSize = 1024 * 1024

type executor struct {
	Ctx           context.Context
	Dir           string
	Environment   []string
	OutputEnabled bool
	OutputRegex   *regexp.Regexp
	OutputMatched *utils.ReadySignal
	GraceDelay    time.Duration
}

func (exe *executor) streamOut(out func(args ...interface{}), src *io.PipeReader, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOutputLineSize)
	for scanner.Scan() {
		text := scanner.Text()

		if exe.OutputRegex != nil && !exe.OutputMatched.IsSet() && exe.OutputRegex.MatchString(text) {
			exe.OutputMatched.Set()
		}

		if exe.OutputEnabled {
			out(text)
		}
	}
}

func (exe *executor) execute(taskName string, cmdArgs []string) error {
	logger := log.WithField("cmd", taskName)

	if exe.OutputRegex == nil {
		exe.OutputMatched.Set()
	}

	if len(cmdArgs) < 1 || len(cmdArgs[0]) == 0 {
		return fmt.Errorf("empty command for %q", taskName)
	}

	cmd := exec.CommandContext(exe.Ctx, cmdArgs[0], cmdArgs[1:]...)
	cmd.Dir = exe.Dir
	cmd.Env = exe.Environment

	// Run the process in its own group, forward the termination to the whole
	// group and leave it a grace delay before the runtime falls back to SIGKILL.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = exe.GraceDelay

	errReader, errWriter := io.Pipe()
	outReader, outWriter := io.Pipe()
	cmd.Stderr = errWriter
	cmd.Stdout = outWriter

	logWg := new(sync.WaitGroup)
	logWg.Add(2)

	go exe.streamOut(logger.Info, outReader, logWg)
	go exe.streamOut(logger.Warn, errReader, logWg)
	defer func() {
		errWriter.Close()
		outWriter.Close()
		logWg.Wait()
	}()

	cmdLine := cmdArgs[0]
	for _, arg := range cmdArgs[1:] {
		cmdLine += " " + arg
	}
	logger.WithField("", cmdLine).Debug("Launch")

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to start %q: %w", taskName, err)
	}

	err := cmd.Wait()
	if err == nil {
		logger.Debug("Completed")
		return nil
	}

	// A stop requested through the context is a clean shutdown, whatever state
	// the process ended in.
	if exe.Ctx.Err() != nil {
		logger.Debug("Stopped")
		return errTaskCancelled
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			// Killed from outside, report the usual 128+signal convention
			return &ExitError{Task: taskName, Code: 128 + int(status.Signal())}
		}
		return &ExitError{Task: taskName, Code: exitErr.ExitCode()}
	}

	return fmt.Errorf("%q failed: %w", taskName, err)
}
