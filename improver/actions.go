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

package improver

import (
	"context"
	"strings"

	"github.com/adityak74/open-context/control"
	"github.com/adityak74/open-context/store"
)

// stopwords excluded from the auto-tag keyword heuristic.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "have": true, "are": true, "was": true,
	"were": true, "will": true, "should": true, "must": true, "not": true,
}

// executor builds the control.Executor closure that dispatches each
// action kind to its real semantics against st/obs/an.
func (imp *Improver) executor() control.Executor {
	return func(kind string, payload map[string]interface{}) (interface{}, error) {
		switch kind {
		case control.ActionAutoTag:
			return nil, imp.execAutoTag(payload)
		case control.ActionMergeDuplicates:
			return nil, imp.execMergeDuplicates(payload)
		case control.ActionPromoteToType:
			return nil, imp.execPromoteToType(payload)
		case control.ActionArchiveStale:
			return nil, imp.execArchiveStale(payload)
		case control.ActionCreateGapStubs:
			return nil, imp.execCreateGapStub(payload)
		case control.ActionResolveContradictions:
			return nil, imp.execResolveContradictions(payload)
		case control.ActionSuggestSchema:
			return nil, imp.execSuggestSchema(payload)
		default:
			return nil, nil
		}
	}
}

func (imp *Improver) execAutoTag(payload map[string]interface{}) error {
	for _, id := range stringSlice(payload["entryIds"]) {
		e, err := imp.Store.Get(id)
		if err != nil {
			continue
		}
		tags := unionTags(e.Tags, extractKeywords(e.Content, 3))
		if _, err := imp.Store.Update(id, nil, tags, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

func extractKeywords(content string, max int) []string {
	var out []string
	seen := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(content)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) < 4 || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == max {
			break
		}
	}
	return out
}

func unionTags(existing, added []string) []string {
	seen := map[string]bool{}
	out := append([]string{}, existing...)
	for _, t := range existing {
		seen[t] = true
	}
	for _, t := range added {
		if !seen[t] {
			out = append(out, t)
			seen[t] = true
		}
	}
	return out
}

func (imp *Improver) execMergeDuplicates(payload map[string]interface{}) error {
	survivorID, _ := payload["survivor"].(string)
	archiveID, _ := payload["archive"].(string)
	if survivorID == "" || archiveID == "" {
		return nil
	}

	survivor, err := imp.Store.Get(survivorID)
	if err != nil {
		return err
	}
	loser, err := imp.Store.Get(archiveID)
	if err != nil {
		return err
	}

	content := survivor.Content
	if !strings.Contains(strings.ToLower(content), strings.ToLower(loser.Content)) {
		content = survivor.Content + "\n" + loser.Content
	}
	tags := unionTags(survivor.Tags, loser.Tags)

	if _, err := imp.Store.Update(survivorID, &content, tags, nil, nil); err != nil {
		return err
	}
	_, err = imp.Store.SetArchived(archiveID, true)
	return err
}

func (imp *Improver) execPromoteToType(payload map[string]interface{}) error {
	entryID, _ := payload["entryId"].(string)
	typeName, _ := payload["typeName"].(string)
	if entryID == "" || typeName == "" {
		return nil
	}
	e, err := imp.Store.Get(entryID)
	if err != nil {
		return err
	}
	_, err = imp.Store.SetType(entryID, typeName, e.StructuredData)
	return err
}

func (imp *Improver) execArchiveStale(payload map[string]interface{}) error {
	for _, id := range stringSlice(payload["entryIds"]) {
		if _, err := imp.Store.SetArchived(id, true); err != nil {
			return err
		}
	}
	return nil
}

func (imp *Improver) execCreateGapStub(payload map[string]interface{}) error {
	content, _ := payload["content"].(string)
	if content == "" {
		return nil
	}
	_, err := imp.Store.Create(content, "self-improvement", []string{"gap", "needs-input"}, "")
	return err
}

func (imp *Improver) execResolveContradictions(payload map[string]interface{}) error {
	archiveID, _ := payload["archive"].(string)
	if archiveID == "" {
		return nil
	}
	_, err := imp.Store.SetArchived(archiveID, true)
	return err
}

func (imp *Improver) execSuggestSchema(payload map[string]interface{}) error {
	if imp.Analyzer == nil {
		return nil
	}
	untyped, err := imp.untypedEntries()
	if err != nil {
		return err
	}

	suggestions, _ := imp.Analyzer.SuggestSchema(context.Background(), untyped)
	if len(suggestions) == 0 {
		return nil
	}

	recs := make([]map[string]interface{}, 0, len(suggestions))
	for _, s := range suggestions {
		recs = append(recs, map[string]interface{}{
			"typeName":    s.TypeName,
			"description": s.Description,
			"fields":      s.Fields,
		})
	}
	return imp.Observer.RecordSchemaSuggestions(recs)
}

func (imp *Improver) untypedEntries() ([]store.Entry, error) {
	entries, err := imp.Store.AllActive()
	if err != nil {
		return nil, err
	}
	var out []store.Entry
	for _, e := range entries {
		if e.TypeName == "" {
			out = append(out, e)
		}
	}
	return out, nil
}

func stringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
