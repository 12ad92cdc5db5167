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
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mapboot/mapboot/utils"
)

var errTaskCompleted = fmt.Errorf("task completed")
var errTaskCancelled = fmt.Errorf("task cancelled")

// DefaultGraceDelay is how long a signalled process gets to shut down before
// it is killed.
const DefaultGraceDelay = 10 * time.Second

func runTask(ctx context.Context, task Task) error {
	logger := log.WithField("cmd", task.Name)

	ready := task.Ready
	if ready == nil {
		ready = utils.NewReadySignal()
	}
	ready.OnReady(func() {
		logger.Debug("Ready")
	})
	defer ready.Disable()

	select {
	case <-ctx.Done():
		logger.Debug("Cancelled")
		return errTaskCancelled
	default:
	}

	exe := executor{
		Ctx:           ctx,
		Dir:           task.Dir,
		Environment:   task.Environment,
		OutputEnabled: !task.Quiet,
		OutputRegex:   task.ReadyRegex,
		OutputMatched: ready,
		GraceDelay:    DefaultGraceDelay,
	}

	err := exe.execute(task.Name, task.Args)
	if err != nil {
		return err
	}

	logger.Debug("Completed")

	return errTaskCompleted
}

// Launch supervises the task in the foreground and only returns once the
// process has terminated. A cancellation of the context (including through
// user termination signals) is a clean stop and yields a nil error; a process
// failure surfaces as *ExitError.
func Launch(ctx context.Context, task Task) error {
	eGroup, eCtx := errgroup.WithContext(ctx)

	eGroup.Go(func() error {
		return runTask(eCtx, task)
	})

	err := eGroup.Wait()
	if !errors.Is(err, errTaskCompleted) &&
		!errors.Is(err, errTaskCancelled) {
		return err
	}

	return nil
}
