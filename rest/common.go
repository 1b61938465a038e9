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

package rest

import (
	"time"
)

const (
	mimeJson = "application/json; charset=UTF-8"

	// Acknowledgement messages delivered back to the command caller
	// once the underlying operation has completed.
	AckStarted   = "Started server"
	AckStopped   = "Stopped server"
	AckRestarted = "Restarted server"
)

// Ack is the reply to a lifecycle command.
type Ack struct {
	Message string `json:"message"`
}

// StatusInfo describes the supervised process.
type StatusInfo struct {
	State     string     `json:"state"`
	PID       int        `json:"pid,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	TimeStamp time.Time  `json:"tstamp"`
}

// PresenceInfo is the most recently published presence line.
type PresenceInfo struct {
	Text      string    `json:"text"`
	Online    bool      `json:"online"`
	TimeStamp time.Time `json:"tstamp"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}
