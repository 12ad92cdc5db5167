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

import "sync"

// ReadySignal broadcasts a single one-shot event to any number of waiters.
// Set marks the event, Disable releases waiters without marking it.
type ReadySignal struct {
	mu      sync.Mutex
	done    chan struct{}
	set     bool
	stopped bool
	onReady func()
}

func NewReadySignal() *ReadySignal {
	return &ReadySignal{done: make(chan struct{})}
}

func (rs *ReadySignal) IsSet() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.set
}

func (rs *ReadySignal) Set() {
	rs.mu.Lock()
	if rs.stopped {
		rs.mu.Unlock()
		return
	}
	rs.set = true
	rs.stopped = true
	callOnReady := rs.onReady
	rs.onReady = nil
	close(rs.done)
	rs.mu.Unlock()

	if callOnReady != nil {
		callOnReady()
	}
}

// Disable releases all current and future waiters, Wait will report false.
func (rs *ReadySignal) Disable() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.stopped {
		return
	}
	rs.stopped = true
	close(rs.done)
}

// Wait blocks until the signal is set or disabled and reports whether it was set.
func (rs *ReadySignal) Wait() bool {
	<-rs.done
	return rs.IsSet()
}

// OnReady registers a callback invoked once when the signal is set. A signal
// that is already set invokes the callback immediately.
func (rs *ReadySignal) OnReady(ready func()) {
	rs.mu.Lock()
	if rs.set {
		rs.mu.Unlock()
		ready()
		return
	}
	rs.onReady = ready
	rs.mu.Unlock()
}
