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

// Package selfmodel computes a deterministic snapshot of store health —
// identity, coverage, freshness, gaps, and contradictions — and renders it
// for agent consumption. The deterministic path never touches the network;
// callers that hold an analyzer may ask for a richer, LM-assisted pass.
package selfmodel

import (
	"context"
	"time"

	"github.com/adityak74/open-context/store"
)

// Health is the overall verdict on store condition.
type Health string

const (
	HealthSparse         Health = "sparse"
	HealthHealthy        Health = "healthy"
	HealthNeedsAttention Health = "needs-attention"
)

// Severity marks how urgently a gap should be addressed.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Identity summarizes the raw shape of the active entry set.
type Identity struct {
	ActiveCount  int            `json:"activeCount"`
	ByType       map[string]int `json:"byType"`
	GroupCount   int            `json:"groupCount"`
	OldestEntry  *time.Time     `json:"oldestEntry,omitempty"`
	NewestEntry  *time.Time     `json:"newestEntry,omitempty"`
}

// Coverage reports which catalog types have active entries.
type Coverage struct {
	TypesWithEntries []string `json:"typesWithEntries"`
	TypesWithout     []string `json:"typesWithout"`
	UntypedCount     int      `json:"untypedCount"`
	Score            float64  `json:"score"`
}

// Freshness buckets entries by how recently they were updated.
type Freshness struct {
	RecentCount int           `json:"recentCount"`
	StaleCount  int           `json:"staleCount"`
	Stalest     []store.Entry `json:"stalest"`
	Score       float64       `json:"score"`
}

// Gap is one identified deficiency in the store.
type Gap struct {
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Suggestion  string   `json:"suggestion"`
}

// Contradiction is a pair of same-type entries in semantic tension.
type Contradiction struct {
	EntryA      string `json:"entryA"`
	EntryB      string `json:"entryB"`
	TypeName    string `json:"typeName"`
	Explanation string `json:"explanation"`
	Source      string `json:"source"` // "deterministic" or "lm"
}

// SelfModel is the complete computed snapshot.
type SelfModel struct {
	GeneratedAt           time.Time       `json:"generatedAt"`
	Identity              Identity        `json:"identity"`
	Coverage              Coverage        `json:"coverage"`
	Freshness             Freshness       `json:"freshness"`
	Gaps                  []Gap           `json:"gaps"`
	Contradictions        []Contradiction `json:"contradictions"`
	Health                Health          `json:"health"`
	RecentImprovements    int             `json:"recentImprovements"`
	PendingActionsCount   int             `json:"pendingActionsCount"`
	Rendered              string          `json:"-"`
}

// ContradictionDetector is the subset of the analyzer's surface the
// self-model builder uses to upgrade the deterministic contradiction pass
// to a semantic one. Satisfied by *analyzer.Analyzer.
type ContradictionDetector interface {
	DetectContradictions(ctx context.Context, entries []store.Entry) ([]Contradiction, error)
}
