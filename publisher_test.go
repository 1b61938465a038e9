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
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type testLog struct {
	t *testing.T
}

func (tl *testLog) Write(p []byte) (n int, err error) {
	tl.t.Log(strings.Trim(string(p), "\n"))
	return len(p), nil
}

type fakeSource struct {
	mu   sync.Mutex
	snap MetricsSnapshot
	err  error
}

func (f *fakeSource) Snapshot() (MetricsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.err
}

func (f *fakeSource) set(snap MetricsSnapshot, err error) {
	f.mu.Lock()
	f.snap = snap
	f.err = err
	f.mu.Unlock()
}

type fakeSink struct {
	mu  sync.Mutex
	err error
	ch  chan string
}

func newFakeSink() *fakeSink {
	return &fakeSink{ch: make(chan string, 64)}
}

func (f *fakeSink) Publish(text string, online bool) error {
	f.mu.Lock()
	e := f.err
	f.mu.Unlock()
	if e != nil {
		return e
	}
	f.ch <- text
	return nil
}

func runningStatus() Status {
	return Status{State: StateRunning, PID: 42}
}

func TestMetricsPercent(t *testing.T) {
	Convey("Percentages compute from used and total", t, func() {
		m := MetricsSnapshot{MemTotal: 1000, MemUsed: 500,
			SwapTotal: 200, SwapUsed: 50}
		So(m.MemoryPercent(), ShouldEqual, 50.0)
		So(m.SwapPercent(), ShouldEqual, 25.0)
	})

	Convey("Zero totals report zero instead of faulting", t, func() {
		m := MetricsSnapshot{MemTotal: 0, MemUsed: 0,
			SwapTotal: 0, SwapUsed: 0}
		So(m.MemoryPercent(), ShouldEqual, 0.0)
		So(m.SwapPercent(), ShouldEqual, 0.0)
	})
}

func TestPublisherGateAndCadence(t *testing.T) {
	Convey("Publishing waits for the ready gate, then repeats", t, func() {
		src := &fakeSource{snap: MetricsSnapshot{
			MemTotal: 1000, MemUsed: 500}}
		sink := newFakeSink()
		p := NewPublisher(src, runningStatus, sink,
			20*time.Millisecond, log.New(&testLog{t}, "", 0))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go p.Run(ctx)

		// Gate closed: nothing published yet.
		select {
		case text := <-sink.ch:
			t.Fatalf("published before ready: %q", text)
		case <-time.After(60 * time.Millisecond):
		}

		p.Ready()

		// First update lands immediately, then once per period.
		select {
		case text := <-sink.ch:
			So(text, ShouldEqual, "Memory 50.0. Swap 0.0")
		case <-time.After(time.Second):
			t.Fatal("no publish after ready")
		}
		select {
		case <-sink.ch:
		case <-time.After(time.Second):
			t.Fatal("no second publish within period")
		}

		Convey("Cancellation halts publishing promptly", func() {
			cancel()
			// Drain anything already in flight, then expect
			// silence.
			time.Sleep(50 * time.Millisecond)
			for len(sink.ch) > 0 {
				<-sink.ch
			}
			select {
			case text := <-sink.ch:
				t.Fatalf("published after cancel: %q", text)
			case <-time.After(80 * time.Millisecond):
			}
		})
	})
}

func TestPublisherFailureRecovery(t *testing.T) {
	Convey("A metrics failure skips the cycle without ending the loop", t, func() {
		src := &fakeSource{err: errors.New("sensor offline")}
		sink := newFakeSink()
		p := NewPublisher(src, runningStatus, sink,
			10*time.Millisecond, log.New(&testLog{t}, "", 0))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p.Ready()
		go p.Run(ctx)

		select {
		case text := <-sink.ch:
			t.Fatalf("published despite metrics failure: %q", text)
		case <-time.After(50 * time.Millisecond):
		}

		src.set(MetricsSnapshot{MemTotal: 10, MemUsed: 1}, nil)
		select {
		case text := <-sink.ch:
			So(text, ShouldEqual, "Memory 10.0. Swap 0.0")
		case <-time.After(time.Second):
			t.Fatal("loop did not recover after metrics came back")
		}
	})

	Convey("A sink failure is tolerated", t, func() {
		src := &fakeSource{snap: MetricsSnapshot{MemTotal: 10, MemUsed: 5}}
		sink := newFakeSink()
		sink.err = errors.New("presence unavailable")
		p := NewPublisher(src, runningStatus, sink,
			10*time.Millisecond, log.New(&testLog{t}, "", 0))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p.Ready()
		go p.Run(ctx)

		time.Sleep(50 * time.Millisecond)
		sink.mu.Lock()
		sink.err = nil
		sink.mu.Unlock()

		select {
		case <-sink.ch:
		case <-time.After(time.Second):
			t.Fatal("loop did not survive sink failures")
		}
	})
}
