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
	"strings"
	"sync"
	"time"
)

// MaxEventRecords bounds the event log ring.  Older records are dropped.
const MaxEventRecords = 1000

// Record is a single supervisor event.  IDs increase monotonically within
// one EventLog and are suitable for use as an Etag or a resume point.
type Record struct {
	ID   int64     `json:"id,string"`
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// EventLog is a bounded in-memory ring of lifecycle events.  It implements
// io.Writer so a log.Logger can feed it directly; each written line becomes
// one record.
type EventLog struct {
	records []Record
	next    int
	id      int64
	cvs     map[*sync.Cond]bool
	mx      sync.Mutex
}

// NewEventLog returns an empty EventLog.  The initial id is derived from
// the clock so that clients caching ids across a daemon restart see a
// change.
func NewEventLog() *EventLog {
	return &EventLog{
		records: make([]Record, MaxEventRecords),
		id:      time.Now().UnixNano(),
		cvs:     make(map[*sync.Cond]bool),
	}
}

// Write implements io.Writer for use with log.Logger.
func (l *EventLog) Write(b []byte) (int, error) {
	now := time.Now()
	l.mx.Lock()
	for _, line := range strings.Split(strings.Trim(string(b), "\n"), "\n") {
		l.id++
		l.records[l.next%len(l.records)] = Record{
			ID:   l.id,
			Time: now,
			Text: line,
		}
		l.next++
	}
	for cv := range l.cvs {
		cv.Broadcast()
	}
	l.mx.Unlock()
	return len(b), nil
}

// Records returns the retained records in order, along with the current
// high-water id.  If last matches the current id, nil is returned without
// copying anything, so pollers can cheaply detect "no change".
func (l *EventLog) Records(last int64) ([]Record, int64) {
	l.mx.Lock()
	defer l.mx.Unlock()
	if l.id == last {
		return nil, last
	}
	cnt := l.next
	if cnt > len(l.records) {
		cnt = len(l.records)
	}
	recs := make([]Record, 0, cnt)
	for i := l.next - cnt; i < l.next; i++ {
		recs = append(recs, l.records[i%len(l.records)])
	}
	return recs, l.id
}

// Watch blocks until the log advances past last, or expire elapses.  The
// returned value is the latest id.  An expiration of zero polls.
func (l *EventLog) Watch(last int64, expire time.Duration) int64 {
	expired := false
	cv := sync.NewCond(&l.mx)
	var timer *time.Timer
	if expire > 0 {
		timer = time.AfterFunc(expire, func() {
			l.mx.Lock()
			expired = true
			cv.Broadcast()
			l.mx.Unlock()
		})
	} else {
		expired = true
	}

	l.mx.Lock()
	l.cvs[cv] = true
	for l.id == last && !expired {
		cv.Wait()
	}
	delete(l.cvs, cv)
	last = l.id
	l.mx.Unlock()
	if timer != nil {
		timer.Stop()
	}
	return last
}
