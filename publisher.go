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
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// Sink accepts a short presence line and an availability flag.  Delivery
// is best effort; no acknowledgement is expected.
type Sink interface {
	Publish(text string, online bool) error
}

// DefaultPeriod is the presence update interval used when none is
// configured.
const DefaultPeriod = 60 * time.Second

// Publisher periodically polls a metrics Source and the supervisor status,
// formats a one-line summary, and hands it to a Sink.  Publishing begins
// only once Ready has been called, and runs until the context is canceled.
// A failed poll or a failed publish is logged and the loop carries on.
type Publisher struct {
	source Source
	status func() Status
	sink   Sink
	period time.Duration
	logger *log.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// NewPublisher wires a Publisher.  The status callback is typically
// (*Supervisor).Status.  A zero period defaults to DefaultPeriod.
func NewPublisher(src Source, status func() Status, sink Sink,
	period time.Duration, logger *log.Logger) *Publisher {

	if period <= 0 {
		period = DefaultPeriod
	}
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Publisher{
		source: src,
		status: status,
		sink:   sink,
		period: period,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Ready opens the session-ready gate.  Safe to call more than once; only
// the first call has any effect.
func (p *Publisher) Ready() {
	p.readyOnce.Do(func() {
		close(p.ready)
	})
}

// Run blocks until ctx is canceled.  It waits for the ready gate, then
// publishes immediately and again every period.  Cancellation interrupts
// the wait between polls promptly rather than letting the period elapse.
func (p *Publisher) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-p.ready:
	}

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()
	for {
		p.publish()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Publisher) publish() {
	snap, e := p.source.Snapshot()
	if e != nil {
		p.logger.Printf("Metrics unavailable, skipping update: %v", e)
		return
	}
	st := p.status()
	text := fmt.Sprintf("Memory %.1f. Swap %.1f",
		snap.MemoryPercent(), snap.SwapPercent())
	if e := p.sink.Publish(text, st.State == StateRunning); e != nil {
		p.logger.Printf("Failed to publish status: %v", e)
	}
}
