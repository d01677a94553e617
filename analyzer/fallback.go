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

package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/adityak74/open-context/store"
)

// errUnavailable signals "LM not available" to selfmodel.Build, which
// treats any error from the detector as "keep the deterministic result".
var errUnavailable = errors.New("analyzer: lm unavailable")

// suggestSchemaFallback partitions entries by first tag, keeping groups
// with at least 3 members, emitting one generic single-field suggestion
// per group.
func suggestSchemaFallback(entries []store.Entry) []SchemaSuggestion {
	groups := map[string][]store.Entry{}
	for _, e := range entries {
		if len(e.Tags) == 0 {
			continue
		}
		key := e.Tags[0]
		groups[key] = append(groups[key], e)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []SchemaSuggestion
	for _, k := range keys {
		if len(groups[k]) < 3 {
			continue
		}
		out = append(out, SchemaSuggestion{
			TypeName:    k,
			Description: fmt.Sprintf("Entries grouped by the tag %q", k),
			Fields: []FieldSuggestion{
				{Name: "note", Type: "string", Description: "Free-text content"},
			},
		})
	}
	return out
}

// summarizeFallback renders a one-sentence digest: counts by type and the
// newest entry.
func summarizeFallback(entries []store.Entry) string {
	if len(entries) == 0 {
		return "No entries to summarize."
	}

	byType := map[string]int{}
	var newest store.Entry
	for _, e := range entries {
		t := e.TypeName
		if t == "" {
			t = "untyped"
		}
		byType[t]++
		if e.UpdatedAt.After(newest.UpdatedAt) {
			newest = e
		}
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%d of type %s", byType[t], t))
	}

	return fmt.Sprintf("%s. Newest: %q.", strings.Join(parts, ", "), truncate(newest.Content, 80))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// rankFallback scores each entry by normalized term overlap between query
// tokens and the concatenation of content, tags, and type name.
func rankFallback(entries []store.Entry, query string) []RankedEntry {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		out := make([]RankedEntry, len(entries))
		for i, e := range entries {
			out[i] = RankedEntry{Entry: e, Score: 0}
		}
		return out
	}

	out := make([]RankedEntry, len(entries))
	for i, e := range entries {
		haystack := strings.ToLower(e.Content + " " + strings.Join(e.Tags, " ") + " " + e.TypeName)
		hits := 0
		for _, t := range terms {
			if strings.Contains(haystack, t) {
				hits++
			}
		}
		out[i] = RankedEntry{Entry: e, Score: float64(hits) / float64(len(terms))}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
