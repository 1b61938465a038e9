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
	"log"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// State is the externally visible lifecycle state of the supervised
// process.  There are no intermediate states; transitions complete before
// the lifecycle call returns.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

// Status is a point-in-time snapshot of the supervisor.  PID and StartedAt
// are only meaningful while State is StateRunning.
type Status struct {
	State     State     `json:"state"`
	PID       int       `json:"pid,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// SupervisorConfig configures a Supervisor.  Path and Dir are required.
type SupervisorConfig struct {
	// Path is the server binary to spawn.  It is executed with no
	// arguments.
	Path string

	// Dir is the working directory the server runs in.
	Dir string

	// StopGrace bounds how long Stop waits after SIGTERM before the
	// process is killed outright.  Zero means wait forever.
	StopGrace time.Duration

	// Logger receives operational messages.  Defaults to stderr.
	Logger *log.Logger
}

// Supervisor owns zero-or-one child process handles.  Start, Stop and
// Restart are individually idempotent and serialized against each other;
// Status never blocks behind them.
//
// A child that exits on its own is not reflected in Status until the next
// Stop clears the handle.  The exit is recorded by the waiter goroutine,
// so Stop's wait phase returns immediately in that case.
type Supervisor struct {
	path    string
	dir     string
	grace   time.Duration
	logger  *log.Logger
	elogger *log.Logger
	elog    *EventLog

	// lifecycle serializes Start/Stop/Restart.  cmd and done are only
	// touched with it held.
	lifecycle sync.Mutex
	cmd       *exec.Cmd
	done      chan error

	// stateMu guards the status snapshot so Status can be served while
	// a Stop is waiting for the child to exit.
	stateMu sync.RWMutex
	status  Status
}

// NewSupervisor allocates a Supervisor in the Stopped state.  No process
// is spawned until Start is called.
func NewSupervisor(cfg SupervisorConfig) *Supervisor {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	elog := NewEventLog()
	return &Supervisor{
		path:    cfg.Path,
		dir:     cfg.Dir,
		grace:   cfg.StopGrace,
		logger:  logger,
		elogger: log.New(elog, "", 0),
		elog:    elog,
		status:  Status{State: StateStopped},
	}
}

func (s *Supervisor) logf(format string, v ...interface{}) {
	s.logger.Printf(format, v...)
	s.elogger.Printf(format, v...)
}

// Start spawns the configured binary in the configured working directory.
// If a process is already live this is a no-op.  A failed spawn is
// returned as a *SpawnError and the supervisor remains Stopped.
func (s *Supervisor) Start() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	return s.startLocked()
}

// Stop sends SIGTERM to the child and blocks until the process has fully
// exited, then clears the handle.  If no process is live this is a no-op.
func (s *Supervisor) Stop() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	return s.stopLocked()
}

// Restart stops the child, waits for it to exit, and spawns a fresh one.
// The lifecycle lock is held across both phases, so no other caller can
// slip in between the stop and the start.
func (s *Supervisor) Restart() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if e := s.stopLocked(); e != nil {
		return e
	}
	return s.startLocked()
}

// Status returns the current state snapshot.  It never blocks on lifecycle
// operations and never fails.
func (s *Supervisor) Status() Status {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.status
}

// Events returns recent supervisor event records.  See EventLog.Records.
func (s *Supervisor) Events(last int64) ([]Record, int64) {
	return s.elog.Records(last)
}

// WatchEvents blocks until the event log advances past last, or the
// expiration elapses.
func (s *Supervisor) WatchEvents(last int64, expire time.Duration) int64 {
	return s.elog.Watch(last, expire)
}

func (s *Supervisor) setStatus(st Status) {
	s.stateMu.Lock()
	s.status = st
	s.stateMu.Unlock()
}

func (s *Supervisor) startLocked() error {
	if s.cmd != nil {
		return nil
	}

	cmd := exec.Command(s.path)
	cmd.Dir = s.dir
	if e := cmd.Start(); e != nil {
		s.logf("Failed to start %s: %v", s.path, e)
		return &SpawnError{Path: s.path, Err: e}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	s.cmd = cmd
	s.done = done
	s.setStatus(Status{
		State:     StateRunning,
		PID:       cmd.Process.Pid,
		StartedAt: time.Now(),
	})
	s.logf("Started %s: pid %d", s.path, cmd.Process.Pid)
	return nil
}

func (s *Supervisor) stopLocked() error {
	if s.cmd == nil {
		return nil
	}

	proc := s.cmd.Process
	if e := proc.Signal(syscall.SIGTERM); e != nil {
		s.logf("Failed sending SIGTERM to pid %d: %v", proc.Pid, e)
	}

	var timer *time.Timer
	if s.grace > 0 {
		timer = time.AfterFunc(s.grace, func() {
			s.logf("Graceful shutdown timed out, killing pid %d",
				proc.Pid)
			proc.Kill()
		})
	}

	// The wait must not be skipped: reporting Stopped before the
	// process has exited could leave an orphan behind a fresh Start.
	e := <-s.done
	if timer != nil {
		timer.Stop()
	}

	s.cmd = nil
	s.done = nil
	s.setStatus(Status{State: StateStopped})
	if e != nil {
		s.logf("Stopped pid %d: %v", proc.Pid, e)
	} else {
		s.logf("Stopped pid %d", proc.Pid)
	}
	return nil
}
