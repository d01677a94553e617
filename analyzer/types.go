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

// Package analyzer optionally refines self-model judgments through a
// local language-model endpoint — contradiction detection, schema
// suggestion, summarization, and relevance ranking — always with a
// deterministic fallback when the endpoint is unavailable or misbehaves.
package analyzer

import "github.com/adityak74/open-context/store"

// Bounded-cost limits from the analyzer's contract.
const (
	maxContradictionBucket = 50
	maxUntypedForSchema    = 30
	maxRankCandidates      = 20
	minEntriesForSchema    = 3
)

// FieldSuggestion is one proposed field of a suggested schema type.
type FieldSuggestion struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SchemaSuggestion is one proposed new catalog type.
type SchemaSuggestion struct {
	TypeName    string            `json:"typeName"`
	Description string            `json:"description"`
	Fields      []FieldSuggestion `json:"fields"`
}

// RankedEntry pairs an entry with a relevance score in [0,1].
type RankedEntry struct {
	Entry store.Entry `json:"entry"`
	Score float64     `json:"score"`
}

// Source marks whether a result came from the LM or the deterministic
// fallback, surfaced to REST/tool callers per the analyze endpoint.
type Source string

const (
	SourceLM            Source = "lm"
	SourceDeterministic Source = "deterministic"
)
