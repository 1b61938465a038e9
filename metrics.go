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
	"github.com/shirou/gopsutil/v4/mem"
)

// MetricsSnapshot is an immutable reading of host memory and swap usage,
// in bytes.  It is constructed fresh on each poll and never mutated.
type MetricsSnapshot struct {
	MemTotal  uint64
	MemUsed   uint64
	SwapTotal uint64
	SwapUsed  uint64
}

// MemoryPercent returns used memory as a percentage of total.  A zero
// total yields 0 rather than an arithmetic fault.
func (m MetricsSnapshot) MemoryPercent() float64 {
	return percent(m.MemUsed, m.MemTotal)
}

// SwapPercent returns used swap as a percentage of total, 0 if the host
// has no swap configured.
func (m MetricsSnapshot) SwapPercent() float64 {
	return percent(m.SwapUsed, m.SwapTotal)
}

func percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

// Source produces metrics snapshots on demand.
type Source interface {
	Snapshot() (MetricsSnapshot, error)
}

// SystemSource reads live host figures via gopsutil.
type SystemSource struct{}

func (SystemSource) Snapshot() (MetricsSnapshot, error) {
	vm, e := mem.VirtualMemory()
	if e != nil {
		return MetricsSnapshot{}, e
	}
	sm, e := mem.SwapMemory()
	if e != nil {
		return MetricsSnapshot{}, e
	}
	return MetricsSnapshot{
		MemTotal:  vm.Total,
		MemUsed:   vm.Used,
		SwapTotal: sm.Total,
		SwapUsed:  sm.Used,
	}, nil
}
