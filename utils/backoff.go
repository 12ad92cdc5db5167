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
	"context"
	"time"
)

// Defaults match the seeding retry behavior of mapproxy: up to 10 attempts,
// waiting 2s, 4s, 8s, ... between them.
const (
	DefaultBackoffStart = 2 * time.Second
	DefaultBackoffMax   = 10 * time.Minute
	DefaultMaxAttempts  = 10
)

type Backoff struct {
	Start       time.Duration
	Max         time.Duration
	MaxAttempts int
}

func DefaultBackoff() Backoff {
	return Backoff{
		Start:       DefaultBackoffStart,
		Max:         DefaultBackoffMax,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Delay returns the wait before the given retry, attempt is 0 based.
func (b Backoff) Delay(attempt int) time.Duration {
	delay := b.Start << uint(attempt)
	if b.Max > 0 && (delay > b.Max || delay <= 0) {
		delay = b.Max
	}
	return delay
}

// RetryWithBackoff runs op until it succeeds, the attempts are exhausted or
// the context is cancelled. The last error is returned.
func RetryWithBackoff(ctx context.Context, b Backoff, op func() error) error {
	attempts := b.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt+1 >= attempts {
			break
		}
		if sleepErr := SleepWithContext(ctx, b.Delay(attempt)); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}

// SleepWithContext pauses for the given duration unless the context ends first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
