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
	"sort"
	"strings"
	"time"

	"github.com/adityak74/open-context/analyzer"
	"github.com/adityak74/open-context/control"
	"github.com/adityak74/open-context/schema"
	"github.com/adityak74/open-context/selfmodel"
	"github.com/adityak74/open-context/store"
)

func decideAutoTag(entries []store.Entry) []control.Candidate {
	var targets []store.Entry
	for _, e := range entries {
		if len(e.Tags) == 0 {
			targets = append(targets, e)
		}
	}
	if len(targets) < minEmptyTagEntries {
		return nil
	}
	ids := entryIDs(targets)
	return []control.Candidate{{
		Kind:        control.ActionAutoTag,
		EntryIDs:    ids,
		Payload:     map[string]interface{}{"entryIds": ids},
		Description: "Auto-tag " + itoa(len(targets)) + " untagged entries",
		Reasoning:   "These entries have no tags, which hurts filter-by-tag recall.",
	}}
}

func decideMergeDuplicates(entries []store.Entry) []control.Candidate {
	byType := map[string][]store.Entry{}
	for _, e := range entries {
		byType[e.TypeName] = append(byType[e.TypeName], e)
	}

	var out []control.Candidate
	for typeName, bucket := range byType {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				sim := jaccard(bucket[i].Content, bucket[j].Content)
				if sim <= duplicateSimilarity {
					continue
				}
				survivor, loser := bucket[i], bucket[j]
				if loser.UpdatedAt.After(survivor.UpdatedAt) {
					survivor, loser = loser, survivor
				}
				out = append(out, control.Candidate{
					Kind:     control.ActionMergeDuplicates,
					EntryIDs: []string{survivor.ID, loser.ID},
					Payload: map[string]interface{}{
						"entryIds":  []string{survivor.ID, loser.ID},
						"survivor":  survivor.ID,
						"archive":   loser.ID,
						"typeName":  typeName,
					},
					Preview:     map[string]string{"survivor": survivor.ID, "archived": loser.ID},
					Description: "Merge near-duplicate entries",
					Reasoning:   "These two entries share over 80% of their words.",
				})
			}
		}
	}
	return out
}

func decidePromoteToType(entries []store.Entry, cat *schema.Catalog) []control.Candidate {
	if cat == nil {
		return nil
	}
	var out []control.Candidate
	for _, e := range entries {
		if e.TypeName != "" {
			continue
		}
		for _, t := range cat.Types {
			if sharedKeywordCount(e.Content, t.Description) >= promoteKeywordMin {
				out = append(out, control.Candidate{
					Kind:     control.ActionPromoteToType,
					EntryIDs: []string{e.ID},
					Payload:  map[string]interface{}{"entryIds": []string{e.ID}, "entryId": e.ID, "typeName": t.Name},
					Preview:  map[string]string{"entryId": e.ID, "typeName": t.Name},
					Description: "Promote untyped entry to type \"" + t.Name + "\"",
					Reasoning:   "Its content shares descriptive keywords with that type's description.",
				})
				break
			}
		}
	}
	return out
}

func decideArchiveStale(entries []store.Entry, readIDs map[string]bool) []control.Candidate {
	now := time.Now().UTC()
	var targets []store.Entry
	for _, e := range entries {
		if now.Sub(e.UpdatedAt) > staleArchiveWindow && !readIDs[e.ID] {
			targets = append(targets, e)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	ids := entryIDs(targets)
	return []control.Candidate{{
		Kind:        control.ActionArchiveStale,
		EntryIDs:    ids,
		Payload:     map[string]interface{}{"entryIds": ids},
		Preview:     map[string]interface{}{"entryIds": ids},
		Description: "Archive " + itoa(len(targets)) + " stale, never-read entries",
		Reasoning:   "These entries have not been updated in over 180 days and have never appeared in a read.",
	}}
}

func decideCreateGapStubs(missedQueries []string, entries []store.Entry) []control.Candidate {
	existing := map[string]bool{}
	for _, e := range entries {
		if containsStr(e.Tags, "gap") {
			existing[e.Content] = true
		}
	}

	var out []control.Candidate
	for _, q := range missedQueries {
		content := gapStubContent(q)
		if existing[content] {
			continue
		}
		out = append(out, control.Candidate{
			Kind:        control.ActionCreateGapStubs,
			Payload:     map[string]interface{}{"query": q, "content": content},
			Preview:     map[string]string{"query": q},
			Description: "Create a gap stub for repeatedly-missed query \"" + q + "\"",
			Reasoning:   "This query has missed at least 3 times with no matching context.",
		})
	}
	return out
}

func gapStubContent(query string) string {
	return "[GAP] Agents have searched for \"" + query + "\" but no context exists."
}

func decideResolveContradictions(contradictions []selfmodel.Contradiction, byID map[string]store.Entry) []control.Candidate {
	var out []control.Candidate
	for _, c := range contradictions {
		a, okA := byID[c.EntryA]
		b, okB := byID[c.EntryB]
		if !okA || !okB {
			continue
		}
		diff := a.UpdatedAt.Sub(b.UpdatedAt)
		if diff < 0 {
			diff = -diff
		}
		if diff <= staleArchiveWindow {
			continue
		}
		winner, loser := a, b
		if a.UpdatedAt.Before(b.UpdatedAt) {
			winner, loser = b, a
		}
		out = append(out, control.Candidate{
			Kind:     control.ActionResolveContradictions,
			EntryIDs: []string{winner.ID, loser.ID},
			Payload:  map[string]interface{}{"entryIds": []string{winner.ID, loser.ID}, "winner": winner.ID, "archive": loser.ID},
			Preview: map[string]string{
				"winner": winner.ID, "archive": loser.ID, "explanation": c.Explanation,
			},
			Description: "Resolve contradiction by archiving the older, superseded entry",
			Reasoning:   c.Explanation,
		})
	}
	return out
}

func decideSuggestSchema(untyped []store.Entry, an *analyzer.Analyzer) []control.Candidate {
	if an == nil || len(untyped) < minUntypedForSuggest {
		return nil
	}
	return []control.Candidate{{
		Kind:        control.ActionSuggestSchema,
		Payload:     map[string]interface{}{"untypedCount": len(untyped)},
		Description: "Suggest new schema types from " + itoa(len(untyped)) + " untyped entries",
		Reasoning:   "At least 5 untyped entries exist; the analyzer can propose a type for them.",
	}}
}

func jaccard(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 0
	}
	inter, union := 0, map[string]bool{}
	for w := range wa {
		union[w] = true
		if wb[w] {
			inter++
		}
	}
	for w := range wb {
		union[w] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(inter) / float64(len(union))
}

func wordSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[strings.Trim(w, ".,!?;:\"'()")] = true
	}
	return out
}

func sharedKeywordCount(content, description string) int {
	if description == "" {
		return 0
	}
	contentWords := wordSet(content)
	count := 0
	for w := range wordSet(description) {
		if len(w) > 3 && contentWords[w] {
			count++
		}
	}
	return count
}

func entryIDs(entries []store.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func containsStr(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}

func byIDMap(entries []store.Entry) map[string]store.Entry {
	out := make(map[string]store.Entry, len(entries))
	for _, e := range entries {
		out[e.ID] = e
	}
	return out
}

func sortedCopy(ss []string) []string {
	out := append([]string{}, ss...)
	sort.Strings(out)
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
