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
	"fmt"
	"log"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEventLogRecords(t *testing.T) {
	Convey("Records are retained in order with increasing ids", t, func() {
		l := NewEventLog()
		logger := log.New(l, "", 0)

		_, base := l.Records(0)
		logger.Print("one")
		logger.Print("two")

		recs, id := l.Records(0)
		So(id, ShouldEqual, base+2)
		So(len(recs), ShouldEqual, 2)
		So(recs[0].Text, ShouldEqual, "one")
		So(recs[1].Text, ShouldEqual, "two")
		So(recs[1].ID, ShouldBeGreaterThan, recs[0].ID)

		Convey("An unchanged log reports no records", func() {
			recs, again := l.Records(id)
			So(recs, ShouldBeNil)
			So(again, ShouldEqual, id)
		})
	})

	Convey("The ring drops the oldest records", t, func() {
		l := NewEventLog()
		logger := log.New(l, "", 0)
		for i := 0; i < MaxEventRecords+10; i++ {
			logger.Print("line ", fmt.Sprint(i))
		}
		recs, _ := l.Records(0)
		So(len(recs), ShouldEqual, MaxEventRecords)
		So(recs[0].Text, ShouldEqual, "line 10")
	})
}

func TestEventLogWatch(t *testing.T) {
	Convey("Watch wakes on a new record", t, func() {
		l := NewEventLog()
		logger := log.New(l, "", 0)
		_, id := l.Records(0)

		ch := make(chan int64, 1)
		go func() {
			ch <- l.Watch(id, 5*time.Second)
		}()
		time.Sleep(10 * time.Millisecond)
		logger.Print("wake up")

		select {
		case got := <-ch:
			So(got, ShouldBeGreaterThan, id)
		case <-time.After(time.Second):
			t.Fatal("Watch never woke")
		}
	})

	Convey("Watch expires when nothing happens", t, func() {
		l := NewEventLog()
		_, id := l.Records(0)
		start := time.Now()
		got := l.Watch(id, 20*time.Millisecond)
		So(got, ShouldEqual, id)
		So(time.Since(start), ShouldBeLessThan, time.Second)
	})
}
