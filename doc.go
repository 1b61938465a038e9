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

// Package warden supervises a single long-running game server process on
// behalf of a remote operator.  It owns the child process lifecycle
// (start, stop, restart, status), publishes a periodic memory/swap
// presence line, and coordinates an orderly shutdown when the host asks
// the daemon to terminate.
//
// This is deliberately not a general process manager.  There is exactly
// one supervised child, no dependency graph, and no crash auto-restart
// policy.  The wardend daemon exposes the lifecycle operations over a
// small authenticated HTTP API (see the rest package), and wardenctl is
// the matching command line client.
package warden
