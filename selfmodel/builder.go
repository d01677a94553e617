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

package selfmodel

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/adityak74/open-context/observer"
	"github.com/adityak74/open-context/schema"
	"github.com/adityak74/open-context/store"
)

const (
	recentWindow = 7 * 24 * time.Hour
	staleWindow  = 90 * 24 * time.Hour
	sparseFloor  = 5
	healthyScore = 0.7
	missThreshold = 3
	maxStalest   = 5
)

// oppositions is the fixed list of term pairs the deterministic
// contradiction heuristic checks for.
var oppositions = [][2]string{
	{"prefer", "avoid"},
	{"use", "don't use"},
	{"always", "never"},
	{"composition", "inheritance"},
	{"class", "functional"},
	{"stateful", "stateless"},
	{"monolith", "microservice"},
}

// Build computes the deterministic self-model from st, cat, and obs. cat
// and obs may be nil; detector may be nil, in which case contradictions
// are computed with the deterministic opposition heuristic only.
func Build(ctx context.Context, st *store.Store, cat *schema.Catalog, obs *observer.Observer, detector ContradictionDetector) (SelfModel, error) {
	entries, err := st.AllActive()
	if err != nil {
		return SelfModel{}, err
	}
	groups, err := st.ListGroups()
	if err != nil {
		return SelfModel{}, err
	}

	m := SelfModel{GeneratedAt: time.Now().UTC()}
	m.Identity = buildIdentity(entries, len(groups))
	m.Coverage = buildCoverage(entries, cat)
	m.Freshness = buildFreshness(entries)

	var missed []string
	if obs != nil {
		missed, _ = obs.MissedQueries(missThreshold)
	}
	m.Gaps = buildGaps(cat, m.Coverage, m.Freshness, missed)

	m.Contradictions = buildContradictionsDeterministic(entries)
	if detector != nil {
		if lm, err := detector.DetectContradictions(ctx, entries); err == nil && lm != nil {
			m.Contradictions = lm
		}
	}

	m.Health = computeHealth(m.Identity.ActiveCount, m.Coverage.Score, m.Freshness.Score)

	if obs != nil {
		if st2, err := obs.Snapshot(); err == nil {
			m.PendingActionsCount = countOpenPending(st2.PendingActions)
			m.RecentImprovements = len(recentImprovements(st2.Improvements, 24*time.Hour))
		}
	}

	m.Rendered = Render(m)
	return m, nil
}

func buildIdentity(entries []store.Entry, groupCount int) Identity {
	id := Identity{ByType: map[string]int{}, GroupCount: groupCount, ActiveCount: len(entries)}
	for _, e := range entries {
		if e.TypeName != "" {
			id.ByType[e.TypeName]++
		}
		if id.OldestEntry == nil || e.CreatedAt.Before(*id.OldestEntry) {
			t := e.CreatedAt
			id.OldestEntry = &t
		}
		if id.NewestEntry == nil || e.CreatedAt.After(*id.NewestEntry) {
			t := e.CreatedAt
			id.NewestEntry = &t
		}
	}
	return id
}

func buildCoverage(entries []store.Entry, cat *schema.Catalog) Coverage {
	c := Coverage{}
	if cat == nil || len(cat.Types) == 0 {
		c.Score = 1
		for _, e := range entries {
			if e.TypeName == "" {
				c.UntypedCount++
			}
		}
		return c
	}

	withEntries := map[string]bool{}
	for _, e := range entries {
		if e.TypeName == "" {
			c.UntypedCount++
			continue
		}
		withEntries[e.TypeName] = true
	}

	for _, t := range cat.Types {
		if withEntries[t.Name] {
			c.TypesWithEntries = append(c.TypesWithEntries, t.Name)
		} else {
			c.TypesWithout = append(c.TypesWithout, t.Name)
		}
	}
	sort.Strings(c.TypesWithEntries)
	sort.Strings(c.TypesWithout)

	c.Score = float64(len(c.TypesWithEntries)) / float64(len(cat.Types))
	return c
}

func buildFreshness(entries []store.Entry) Freshness {
	f := Freshness{}
	if len(entries) == 0 {
		f.Score = 1
		return f
	}

	now := time.Now().UTC()
	var stale []store.Entry
	for _, e := range entries {
		age := now.Sub(e.UpdatedAt)
		if age <= recentWindow {
			f.RecentCount++
		}
		if age > staleWindow {
			f.StaleCount++
			stale = append(stale, e)
		}
	}

	sort.Slice(stale, func(i, j int) bool { return stale[i].UpdatedAt.Before(stale[j].UpdatedAt) })
	if len(stale) > maxStalest {
		stale = stale[:maxStalest]
	}
	f.Stalest = stale

	f.Score = float64(f.RecentCount) / float64(len(entries))
	return f
}

func buildGaps(cat *schema.Catalog, cov Coverage, fresh Freshness, missed []string) []Gap {
	var gaps []Gap

	for _, t := range cov.TypesWithout {
		gaps = append(gaps, Gap{
			Description: "No active entries of type \"" + t + "\"",
			Severity:    SeverityWarning,
			Suggestion:  "Save a context entry of type \"" + t + "\" or remove the type from the schema.",
		})
	}

	for _, q := range missed {
		gaps = append(gaps, Gap{
			Description: "Agents have repeatedly searched for \"" + q + "\" with no matching context",
			Severity:    SeverityWarning,
			Suggestion:  "Save context that answers \"" + q + "\".",
		})
	}

	if fresh.StaleCount > 0 {
		gaps = append(gaps, Gap{
			Description: describeStaleGap(fresh.StaleCount),
			Severity:    SeverityInfo,
			Suggestion:  "Review the stalest entries and refresh or archive them.",
		})
	}

	_ = cat
	return gaps
}

func describeStaleGap(n int) string {
	if n == 1 {
		return "1 entry has not been updated in over 90 days"
	}
	return itoa(n) + " entries have not been updated in over 90 days"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func buildContradictionsDeterministic(entries []store.Entry) []Contradiction {
	byType := map[string][]store.Entry{}
	for _, e := range entries {
		if e.TypeName == "" {
			continue
		}
		byType[e.TypeName] = append(byType[e.TypeName], e)
	}

	var out []Contradiction
	for typeName, bucket := range byType {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if expl, ok := checkOpposition(bucket[i].Content, bucket[j].Content); ok {
					out = append(out, Contradiction{
						EntryA:      bucket[i].ID,
						EntryB:      bucket[j].ID,
						TypeName:    typeName,
						Explanation: expl,
						Source:      "deterministic",
					})
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].EntryA < out[j].EntryA })
	return out
}

func checkOpposition(a, b string) (string, bool) {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	for _, pair := range oppositions {
		left, right := pair[0], pair[1]
		if (strings.Contains(la, left) && strings.Contains(lb, right)) ||
			(strings.Contains(la, right) && strings.Contains(lb, left)) {
			return "entries assert opposing positions on \"" + left + "\" vs \"" + right + "\"", true
		}
	}
	return "", false
}

func computeHealth(activeCount int, coverageScore, freshnessScore float64) Health {
	if activeCount < sparseFloor {
		return HealthSparse
	}
	avg := (coverageScore + freshnessScore) / 2
	if avg >= healthyScore {
		return HealthHealthy
	}
	return HealthNeedsAttention
}

func countOpenPending(pending []observer.PendingAction) int {
	n := 0
	for _, p := range pending {
		if p.Status == observer.StatusPending {
			n++
		}
	}
	return n
}

func recentImprovements(records []observer.ImprovementRecord, window time.Duration) []observer.ImprovementRecord {
	cutoff := time.Now().UTC().Add(-window)
	var out []observer.ImprovementRecord
	for _, r := range records {
		if r.Timestamp.After(cutoff) {
			out = append(out, r)
		}
	}
	return out
}
