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

// Package observer records every read/write/miss against the context store
// and maintains rolling aggregates, an improvement journal, and (on behalf
// of the control plane) the pending-action and protection lists — all
// persisted together in one awareness file.
package observer

import (
	"sort"
	"sync"
	"time"
)

// Observer guards one awareness file behind a single mutex. Every method
// reloads the file inside its critical section before mutating, so
// concurrent writers (in practice: none by design — see spec's single
// writer assumption) never clobber each other, and a read-only companion
// process always sees a consistent snapshot.
type Observer struct {
	mu   sync.Mutex
	path string
}

// New creates an Observer backed by the awareness file at path. It does
// not touch disk until the first operation.
func New(path string) *Observer {
	return &Observer{path: path}
}

// Mutate loads the current state, applies fn, and atomically saves the
// result. fn must not retain the pointer beyond its call.
func (o *Observer) Mutate(fn func(*AwarenessState) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, err := loadState(o.path)
	if err != nil {
		return err
	}
	if err := fn(&st); err != nil {
		return err
	}
	rotate(&st)
	return saveState(o.path, st)
}

// Snapshot returns a copy of the current awareness state.
func (o *Observer) Snapshot() (AwarenessState, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return loadState(o.path)
}

// rotate trims the event and improvement logs once they exceed their caps.
// Must be called with the state already loaded and the lock held.
func rotate(st *AwarenessState) {
	if len(st.Events) > MaxEvents {
		st.Events = append([]Event{}, st.Events[len(st.Events)-RotateKeep:]...)
	}
	if len(st.Improvements) > MaxJournal {
		st.Improvements = append([]ImprovementRecord{}, st.Improvements[len(st.Improvements)-JournalKeep:]...)
	}
}

// RecordEvent appends one event to the log.
func (o *Observer) RecordEvent(ev Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	return o.Mutate(func(st *AwarenessState) error {
		st.Events = append(st.Events, ev)
		return nil
	})
}

// Summary recomputes the rolling aggregate from the full event log.
func (o *Observer) Summary() (Summary, error) {
	st, err := o.Snapshot()
	if err != nil {
		return Summary{}, err
	}
	return summarize(st.Events), nil
}

func summarize(events []Event) Summary {
	s := Summary{
		MissesByQuery: map[string]int{},
		ReadsByType:   map[string]int{},
		WritesByType:  map[string]int{},
	}
	for _, ev := range events {
		switch ev.Action {
		case ActionRead:
			s.TotalReads++
			if ev.Type != "" {
				s.ReadsByType[ev.Type]++
			}
		case ActionWrite:
			s.TotalWrites++
			if ev.Type != "" {
				s.WritesByType[ev.Type]++
			}
		case ActionMiss:
			s.TotalMisses++
			if ev.Query != "" {
				s.MissesByQuery[ev.Query]++
			}
		}
		if ev.Timestamp.After(s.LastActivity) {
			s.LastActivity = ev.Timestamp
		}
	}
	return s
}

// MissedQueries returns the distinct query strings that missed at least
// minCount times, sorted for deterministic output.
func (o *Observer) MissedQueries(minCount int) ([]string, error) {
	summary, err := o.Summary()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(summary.MissesByQuery))
	for q, n := range summary.MissesByQuery {
		if n >= minCount {
			out = append(out, q)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ReadIDs returns the set of entry IDs that have ever appeared in a read
// event, used by the improver to decide whether a stale entry is observed.
func (o *Observer) ReadIDs() (map[string]bool, error) {
	st, err := o.Snapshot()
	if err != nil {
		return nil, err
	}
	ids := map[string]bool{}
	for _, ev := range st.Events {
		if ev.Action != ActionRead {
			continue
		}
		for _, id := range ev.IDs {
			ids[id] = true
		}
	}
	return ids, nil
}

// AppendImprovement journals one improvement record.
func (o *Observer) AppendImprovement(rec ImprovementRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return o.Mutate(func(st *AwarenessState) error {
		st.Improvements = append(st.Improvements, rec)
		return nil
	})
}

// ImprovementsSince returns journal records at or after cutoff, oldest
// first.
func (o *Observer) ImprovementsSince(cutoff time.Time) ([]ImprovementRecord, error) {
	st, err := o.Snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]ImprovementRecord, 0)
	for _, rec := range st.Improvements {
		if !rec.Timestamp.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// RecordUsefulness increments the helpful or unhelpful counter for an
// entry ID.
func (o *Observer) RecordUsefulness(entryID string, helpful bool) error {
	return o.Mutate(func(st *AwarenessState) error {
		if helpful {
			st.Usefulness.Helpful[entryID]++
		} else {
			st.Usefulness.Unhelpful[entryID]++
		}
		return nil
	})
}

// RecordSchemaSuggestions appends suggested-but-unapplied schema types to
// the awareness blob. The catalog file itself is never touched by this —
// only the user, through the schema REST endpoint, edits the catalog.
func (o *Observer) RecordSchemaSuggestions(suggestions []map[string]interface{}) error {
	return o.Mutate(func(st *AwarenessState) error {
		st.SchemaSuggestions = append(st.SchemaSuggestions, suggestions...)
		return nil
	})
}

// SchemaSuggestions returns every recorded-but-unapplied schema
// suggestion.
func (o *Observer) SchemaSuggestions() ([]map[string]interface{}, error) {
	st, err := o.Snapshot()
	if err != nil {
		return nil, err
	}
	return st.SchemaSuggestions, nil
}
