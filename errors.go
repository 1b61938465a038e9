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
	"errors"
)

var (
	ErrShuttingDown = errors.New("Daemon is shutting down")
	ErrNoProcess    = errors.New("No supervised process")
)

// SpawnError reports a failure to launch the configured server binary.
// The supervisor state is unchanged by a failed spawn.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return "Failed to spawn " + e.Path + ": " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
