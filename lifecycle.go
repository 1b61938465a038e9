// Copyright 2026 The Warden Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package warden

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/looplab/fsm"
)

// Lifecycle controller states.
const (
	LifecycleActive       = "active"
	LifecycleShuttingDown = "shutting-down"
	LifecycleTerminated   = "terminated"
)

const (
	evShutdown  = "shutdown"
	evTerminate = "terminate"
)

// Lifecycle translates a host termination request into an orderly
// shutdown: cancel the publisher, stop the supervised process (including
// the wait-for-exit phase), then close the command gateway.  The sequence
// runs at most once; re-entry is a no-op enforced by the state machine.
//
// Signal handling stays with the caller: the daemon's main goroutine
// observes the signal channel and calls Shutdown from its own context.
// Nothing here runs inside a signal handler.
type Lifecycle struct {
	sup     *Supervisor
	cancel  context.CancelFunc
	gateway io.Closer
	logger  *log.Logger
	machine *fsm.FSM
	done    chan struct{}
}

// NewLifecycle wires a Lifecycle.  cancel stops the publisher loop;
// gateway may be nil when there is no listener to close.
func NewLifecycle(sup *Supervisor, cancel context.CancelFunc,
	gateway io.Closer, logger *log.Logger) *Lifecycle {

	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	l := &Lifecycle{
		sup:     sup,
		cancel:  cancel,
		gateway: gateway,
		logger:  logger,
		done:    make(chan struct{}),
	}
	l.machine = fsm.NewFSM(
		LifecycleActive,
		fsm.Events{
			{Name: evShutdown, Src: []string{LifecycleActive}, Dst: LifecycleShuttingDown},
			{Name: evTerminate, Src: []string{LifecycleShuttingDown}, Dst: LifecycleTerminated},
		},
		fsm.Callbacks{},
	)
	return l
}

// Shutdown runs the shutdown sequence.  Only the first caller performs
// any work; concurrent and subsequent calls return immediately.  Waiters
// should block on Done for completion.
func (l *Lifecycle) Shutdown(reason string) {
	if e := l.machine.Event(context.Background(), evShutdown); e != nil {
		// Already shutting down, or terminated.
		return
	}
	l.logger.Printf("Shutting down: %s", reason)

	l.cancel()
	if e := l.sup.Stop(); e != nil {
		l.logger.Printf("Failed to stop server during shutdown: %v", e)
	}
	if l.gateway != nil {
		if e := l.gateway.Close(); e != nil {
			l.logger.Printf("Failed to close gateway: %v", e)
		}
	}

	l.machine.Event(context.Background(), evTerminate)
	l.logger.Printf("Shutdown complete")
	close(l.done)
}

// Done is closed once the shutdown sequence has fully completed.
func (l *Lifecycle) Done() <-chan struct{} {
	return l.done
}

// State reports the controller state, one of the Lifecycle constants.
func (l *Lifecycle) State() string {
	return l.machine.Current()
}
