// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package observer

import (
	"path/filepath"
	"testing"
	"time"
)

func TestObserver_MissingFileYieldsEmptyState(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "awareness.json"))

	summary, err := o.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalReads != 0 || summary.TotalWrites != 0 || summary.TotalMisses != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestObserver_RecordEvent_AggregatesByAction(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "awareness.json"))

	if err := o.RecordEvent(Event{Action: ActionRead, Type: "decision"}); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}
	if err := o.RecordEvent(Event{Action: ActionWrite, Type: "decision"}); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}
	if err := o.RecordEvent(Event{Action: ActionMiss, Query: "deployment"}); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}
	if err := o.RecordEvent(Event{Action: ActionMiss, Query: "deployment"}); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	summary, err := o.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalReads != 1 || summary.TotalWrites != 1 || summary.TotalMisses != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.MissesByQuery["deployment"] != 2 {
		t.Errorf("expected 2 misses for 'deployment', got %d", summary.MissesByQuery["deployment"])
	}
	if summary.ReadsByType["decision"] != 1 {
		t.Errorf("expected 1 read for 'decision', got %d", summary.ReadsByType["decision"])
	}
}

func TestObserver_MissedQueries_RespectsThreshold(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "awareness.json"))

	for i := 0; i < 2; i++ {
		o.RecordEvent(Event{Action: ActionMiss, Query: "deployment"})
	}
	queries, err := o.MissedQueries(3)
	if err != nil {
		t.Fatalf("MissedQueries failed: %v", err)
	}
	if len(queries) != 0 {
		t.Errorf("expected no gaps below threshold, got %v", queries)
	}

	o.RecordEvent(Event{Action: ActionMiss, Query: "deployment"})
	queries, err = o.MissedQueries(3)
	if err != nil {
		t.Fatalf("MissedQueries failed: %v", err)
	}
	if len(queries) != 1 || queries[0] != "deployment" {
		t.Errorf("expected [deployment], got %v", queries)
	}
}

func TestObserver_EventLogRotatesAt1000(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "awareness.json"))

	for i := 0; i < 1001; i++ {
		if err := o.RecordEvent(Event{Action: ActionRead}); err != nil {
			t.Fatalf("RecordEvent failed: %v", err)
		}
	}

	st, err := o.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(st.Events) != RotateKeep {
		t.Errorf("expected %d events retained after rotation, got %d", RotateKeep, len(st.Events))
	}
}

func TestObserver_AppendImprovement_AndSince(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "awareness.json"))

	past := time.Now().Add(-time.Hour)
	if err := o.AppendImprovement(ImprovementRecord{
		Timestamp:    past,
		Actions:      []ActionCount{{Type: "auto_tag", Count: 2}},
		AutoExecuted: true,
	}); err != nil {
		t.Fatalf("AppendImprovement failed: %v", err)
	}

	recs, err := o.ImprovementsSince(past.Add(-time.Minute))
	if err != nil {
		t.Fatalf("ImprovementsSince failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	recs, err = o.ImprovementsSince(time.Now())
	if err != nil {
		t.Fatalf("ImprovementsSince failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected 0 records after cutoff, got %d", len(recs))
	}
}

func TestObserver_RecordUsefulness(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "awareness.json"))

	o.RecordUsefulness("entry-1", true)
	o.RecordUsefulness("entry-1", true)
	o.RecordUsefulness("entry-1", false)

	st, err := o.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if st.Usefulness.Helpful["entry-1"] != 2 {
		t.Errorf("expected 2 helpful votes, got %d", st.Usefulness.Helpful["entry-1"])
	}
	if st.Usefulness.Unhelpful["entry-1"] != 1 {
		t.Errorf("expected 1 unhelpful vote, got %d", st.Usefulness.Unhelpful["entry-1"])
	}
}

func TestObserver_ReadIDs(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "awareness.json"))
	o.RecordEvent(Event{Action: ActionRead, IDs: []string{"a", "b"}})
	o.RecordEvent(Event{Action: ActionWrite, IDs: []string{"c"}})

	ids, err := o.ReadIDs()
	if err != nil {
		t.Fatalf("ReadIDs failed: %v", err)
	}
	if !ids["a"] || !ids["b"] || ids["c"] {
		t.Errorf("unexpected read ID set: %v", ids)
	}
}

func TestObserver_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awareness.json")
	o1 := New(path)
	o1.RecordEvent(Event{Action: ActionWrite, Type: "note"})

	o2 := New(path)
	summary, err := o2.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalWrites != 1 {
		t.Errorf("expected write to persist across instances, got %+v", summary)
	}
}
