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

package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adityak74/open-context/observability/metrics"
	"github.com/adityak74/open-context/observer"
	"github.com/adityak74/open-context/pkg/errors"
	"github.com/adityak74/open-context/schema"
)

// Store guards one store file behind a single mutex and reports every
// operation to an observer. It never reads the observer back.
type Store struct {
	mu      sync.Mutex
	path    string
	obs     *observer.Observer
	metrics *metrics.RuntimeMetrics
}

// New creates a Store backed by the file at path, reporting activity to
// obs. obs may be nil in tests that don't care about event emission.
func New(path string, obs *observer.Observer) *Store {
	return &Store{path: path, obs: obs}
}

// SetMetrics attaches a metrics recorder for store operations. Optional;
// nil is a no-op.
func (s *Store) SetMetrics(m *metrics.RuntimeMetrics) {
	s.metrics = m
}

func (s *Store) emit(ev observer.Event) {
	if s.metrics != nil {
		switch ev.Action {
		case observer.ActionMiss:
			s.metrics.RecordMiss(ev.Tool)
		default:
			s.metrics.RecordStoreOp(ev.Tool)
		}
	}
	if s.obs == nil {
		return
	}
	_ = s.obs.RecordEvent(ev)
}

// reportActiveCount recomputes the active-entry count and reports it,
// called after any mutation that adds, removes, or archives entries.
func (s *Store) reportActiveCount() {
	if s.metrics == nil {
		return
	}
	f, err := s.snapshot()
	if err != nil {
		return
	}
	n := 0
	for _, e := range f.Entries {
		if !e.Archived {
			n++
		}
	}
	s.metrics.SetActiveEntries(float64(n))
}

func (s *Store) mutate(fn func(*file) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := loadFile(s.path)
	if err != nil {
		return err
	}
	if err := fn(&f); err != nil {
		return err
	}
	return saveFile(s.path, f)
}

func (s *Store) snapshot() (file, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadFile(s.path)
}

// Create saves a new untyped entry.
func (s *Store) Create(content, source string, tags []string, groupID string) (Entry, error) {
	now := time.Now().UTC()
	e := Entry{
		Content:   content,
		Tags:      append([]string{}, tags...),
		Source:    source,
		GroupID:   groupID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.ID = newEntryID(e.Content, e.Source, e.CreatedAt)

	err := s.mutate(func(f *file) error {
		f.Entries = append(f.Entries, e)
		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "save_context", IDs: []string{e.ID}})
	s.reportActiveCount()
	return e, nil
}

// CreateTyped validates data against cat and persists the entry regardless
// of validation outcome, rendering content from the structured data.
// Returns the created entry plus any validation errors.
func (s *Store) CreateTyped(typeName string, data map[string]interface{}, source string, tags []string, groupID string, cat *schema.Catalog) (Entry, []string, error) {
	ok, errs := cat.Validate(typeName, data)
	_ = ok

	now := time.Now().UTC()
	e := Entry{
		Content:        schema.RenderContent(typeName, data),
		Tags:           append([]string{}, tags...),
		Source:         source,
		GroupID:        groupID,
		TypeName:       typeName,
		StructuredData: data,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	e.ID = newEntryID(e.Content, e.Source, e.CreatedAt)

	err := s.mutate(func(f *file) error {
		f.Entries = append(f.Entries, e)
		return nil
	})
	if err != nil {
		return Entry{}, nil, err
	}

	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "save_typed_context", Type: typeName, IDs: []string{e.ID}})
	s.reportActiveCount()
	return e, errs, nil
}

// Get returns an entry by ID, regardless of archived status.
func (s *Store) Get(id string) (Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range f.Entries {
		if e.ID == id {
			s.emit(observer.Event{Action: observer.ActionRead, Tool: "get_context", IDs: []string{id}})
			return e, nil
		}
	}
	s.emit(observer.Event{Action: observer.ActionMiss, Tool: "get_context"})
	return Entry{}, errors.ErrNotFound.WithMessage("context entry not found").WithDetail("id", id)
}

// Update replaces content/tags/source/groupID on an existing entry,
// leaving typeName and structuredData untouched, and advances updatedAt.
func (s *Store) Update(id string, content *string, tags []string, source *string, groupID *string) (Entry, error) {
	var out Entry
	err := s.mutate(func(f *file) error {
		idx := indexOf(f.Entries, id)
		if idx < 0 {
			return errors.ErrNotFound.WithMessage("context entry not found").WithDetail("id", id)
		}
		e := &f.Entries[idx]
		if content != nil {
			e.Content = *content
		}
		if tags != nil {
			e.Tags = tags
		}
		if source != nil {
			e.Source = *source
		}
		if groupID != nil {
			e.GroupID = *groupID
		}
		e.UpdatedAt = laterOf(e.UpdatedAt, time.Now().UTC())
		out = *e
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "update_context", IDs: []string{id}})
	return out, nil
}

// SetType sets or clears the typeName (and replaces structuredData) on an
// existing entry. Passing an empty typeName clears both.
func (s *Store) SetType(id, typeName string, data map[string]interface{}) (Entry, error) {
	var out Entry
	err := s.mutate(func(f *file) error {
		idx := indexOf(f.Entries, id)
		if idx < 0 {
			return errors.ErrNotFound.WithMessage("context entry not found").WithDetail("id", id)
		}
		e := &f.Entries[idx]
		e.TypeName = typeName
		e.StructuredData = data
		e.UpdatedAt = laterOf(e.UpdatedAt, time.Now().UTC())
		out = *e
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "promote_to_type", Type: typeName, IDs: []string{id}})
	return out, nil
}

// SetArchived toggles the archived flag on an entry.
func (s *Store) SetArchived(id string, archived bool) (Entry, error) {
	var out Entry
	err := s.mutate(func(f *file) error {
		idx := indexOf(f.Entries, id)
		if idx < 0 {
			return errors.ErrNotFound.WithMessage("context entry not found").WithDetail("id", id)
		}
		e := &f.Entries[idx]
		e.Archived = archived
		e.UpdatedAt = laterOf(e.UpdatedAt, time.Now().UTC())
		out = *e
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "archive_context", IDs: []string{id}})
	s.reportActiveCount()
	return out, nil
}

// Delete permanently removes an entry. Only explicit user/REST calls use
// this — autonomous actions only archive.
func (s *Store) Delete(id string) error {
	err := s.mutate(func(f *file) error {
		idx := indexOf(f.Entries, id)
		if idx < 0 {
			return errors.ErrNotFound.WithMessage("context entry not found").WithDetail("id", id)
		}
		f.Entries = append(f.Entries[:idx], f.Entries[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "delete_context", IDs: []string{id}})
	s.reportActiveCount()
	return nil
}

// List returns all active entries, optionally filtered by tag.
func (s *Store) List(tag string) ([]Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range f.Entries {
		if e.Archived {
			continue
		}
		if tag != "" && !containsStr(e.Tags, tag) {
			continue
		}
		out = append(out, e)
	}
	s.emit(observer.Event{Action: observer.ActionRead, Tool: "list_contexts", Query: tag})
	return out, nil
}

// ListArchived returns every archived entry, regardless of other filters.
func (s *Store) ListArchived() ([]Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range f.Entries {
		if e.Archived {
			out = append(out, e)
		}
	}
	return out, nil
}

// ByGroup returns active entries belonging to groupID.
func (s *Store) ByGroup(groupID string) ([]Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range f.Entries {
		if !e.Archived && e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out, nil
}

// QueryByType returns active entries of typeName whose structuredData
// matches every key/value in filter. A missing structured-data field
// fails the filter if any constraint targets it.
func (s *Store) QueryByType(typeName string, filter map[string]interface{}) ([]Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range f.Entries {
		if e.Archived || e.TypeName != typeName {
			continue
		}
		if matchesFilter(e.StructuredData, filter) {
			out = append(out, e)
		}
	}
	s.emit(observer.Event{Action: observer.ActionRead, Tool: "query_by_type", Type: typeName})
	if len(out) == 0 {
		s.emit(observer.Event{Action: observer.ActionMiss, Tool: "query_by_type", Type: typeName})
	}
	return out, nil
}

func matchesFilter(data map[string]interface{}, filter map[string]interface{}) bool {
	for k, want := range filter {
		got, ok := data[k]
		if !ok {
			return false
		}
		if !equalValue(got, want) {
			return false
		}
	}
	return true
}

func equalValue(a, b interface{}) bool {
	return toComparable(a) == toComparable(b)
}

func toComparable(v interface{}) interface{} {
	switch vv := v.(type) {
	case int:
		return float64(vv)
	case int32:
		return float64(vv)
	case int64:
		return float64(vv)
	case float32:
		return float64(vv)
	default:
		return vv
	}
}

// Recall returns active entries whose content or tags contain query as a
// case-insensitive substring.
func (s *Store) Recall(query string) ([]Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range f.Entries {
		if e.Archived {
			continue
		}
		if strings.Contains(strings.ToLower(e.Content), q) || tagsContain(e.Tags, q) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		s.emit(observer.Event{Action: observer.ActionMiss, Tool: "recall_context", Query: query})
	} else {
		s.emit(observer.Event{Action: observer.ActionRead, Tool: "recall_context", Query: query})
	}
	return out, nil
}

// Search performs a multi-term conjunctive search over content, tags, and
// source: every whitespace-separated term in query must match somewhere.
func (s *Store) Search(query string) ([]Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	terms := strings.Fields(strings.ToLower(query))
	var out []Entry
	for _, e := range f.Entries {
		if e.Archived {
			continue
		}
		haystack := strings.ToLower(e.Content + " " + strings.Join(e.Tags, " ") + " " + e.Source)
		matched := true
		for _, t := range terms {
			if !strings.Contains(haystack, t) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		s.emit(observer.Event{Action: observer.ActionMiss, Tool: "search_context", Query: query})
	} else {
		s.emit(observer.Event{Action: observer.ActionRead, Tool: "search_context", Query: query})
	}
	return out, nil
}

// AllActive returns every non-archived entry, used by the self-model
// builder and the improver for full-store analysis.
func (s *Store) AllActive() ([]Entry, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range f.Entries {
		if !e.Archived {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- Groups ---

// CreateGroup creates a new named group.
func (s *Store) CreateGroup(name, description string) (Group, error) {
	now := time.Now().UTC()
	g := Group{Name: name, Description: description, CreatedAt: now, UpdatedAt: now}
	g.ID = newGroupID(name, now)

	err := s.mutate(func(f *file) error {
		f.Groups = append(f.Groups, g)
		return nil
	})
	if err != nil {
		return Group{}, err
	}
	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "save_group", IDs: []string{g.ID}})
	return g, nil
}

// ListGroups returns every group.
func (s *Store) ListGroups() ([]Group, error) {
	f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := append([]Group{}, f.Groups...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// GetGroup returns a group by ID.
func (s *Store) GetGroup(id string) (Group, error) {
	f, err := s.snapshot()
	if err != nil {
		return Group{}, err
	}
	for _, g := range f.Groups {
		if g.ID == id {
			return g, nil
		}
	}
	return Group{}, errors.ErrNotFound.WithMessage("group not found").WithDetail("id", id)
}

// UpdateGroup changes a group's name/description.
func (s *Store) UpdateGroup(id string, name, description *string) (Group, error) {
	var out Group
	err := s.mutate(func(f *file) error {
		for i := range f.Groups {
			if f.Groups[i].ID == id {
				if name != nil {
					f.Groups[i].Name = *name
				}
				if description != nil {
					f.Groups[i].Description = *description
				}
				f.Groups[i].UpdatedAt = laterOf(f.Groups[i].UpdatedAt, time.Now().UTC())
				out = f.Groups[i]
				return nil
			}
		}
		return errors.ErrNotFound.WithMessage("group not found").WithDetail("id", id)
	})
	if err != nil {
		return Group{}, err
	}
	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "update_group", IDs: []string{id}})
	return out, nil
}

// DeleteGroup removes a group, orphaning or cascading its member entries.
func (s *Store) DeleteGroup(id string, mode DeleteMode) error {
	err := s.mutate(func(f *file) error {
		gIdx := -1
		for i, g := range f.Groups {
			if g.ID == id {
				gIdx = i
				break
			}
		}
		if gIdx < 0 {
			return errors.ErrNotFound.WithMessage("group not found").WithDetail("id", id)
		}

		switch mode {
		case Cascade:
			kept := f.Entries[:0]
			for _, e := range f.Entries {
				if e.GroupID != id {
					kept = append(kept, e)
				}
			}
			f.Entries = kept
		default: // Orphan
			for i := range f.Entries {
				if f.Entries[i].GroupID == id {
					f.Entries[i].GroupID = ""
					f.Entries[i].UpdatedAt = laterOf(f.Entries[i].UpdatedAt, time.Now().UTC())
				}
			}
		}

		f.Groups = append(f.Groups[:gIdx], f.Groups[gIdx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.emit(observer.Event{Action: observer.ActionWrite, Tool: "delete_group", IDs: []string{id}})
	if mode == Cascade {
		s.reportActiveCount()
	}
	return nil
}

func indexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func containsStr(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}

func tagsContain(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func laterOf(prev, now time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}
