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
	"context"
	"testing"
	"time"

	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/store"
)

func unreachableAnalyzer() *Analyzer {
	cfg := Config{Enabled: true, Endpoint: "http://127.0.0.1:1", Model: "test-model", Timeout: time.Second}
	return New(cfg, logging.NewNopLogger())
}

func disabledAnalyzer() *Analyzer {
	cfg := Config{Enabled: false}
	return New(cfg, logging.NewNopLogger())
}

func TestAnalyzer_Available_FalseWhenDisabled(t *testing.T) {
	a := disabledAnalyzer()
	if a.Available(context.Background()) {
		t.Error("expected Available() to be false when disabled")
	}
}

func TestAnalyzer_Available_FalseWhenUnreachable(t *testing.T) {
	a := unreachableAnalyzer()
	if a.Available(context.Background()) {
		t.Error("expected Available() to be false for unreachable endpoint")
	}
}

func TestAnalyzer_DetectContradictions_FallsBackOnUnavailable(t *testing.T) {
	a := unreachableAnalyzer()
	_, err := a.DetectContradictions(context.Background(), nil)
	if err == nil {
		t.Error("expected an error signalling unavailability so selfmodel keeps the deterministic result")
	}
}

func TestAnalyzer_SuggestSchema_FewerThanThreeReturnsEmpty(t *testing.T) {
	a := unreachableAnalyzer()
	entries := []store.Entry{{ID: "1", Content: "a"}, {ID: "2", Content: "b"}}
	sugg, source := a.SuggestSchema(context.Background(), entries)
	if len(sugg) != 0 {
		t.Errorf("expected no suggestions for <3 entries, got %v", sugg)
	}
	if source != SourceDeterministic {
		t.Errorf("expected deterministic source, got %s", source)
	}
}

func TestAnalyzer_SuggestSchema_TagGroupingFallback(t *testing.T) {
	a := unreachableAnalyzer()
	entries := []store.Entry{
		{ID: "1", Content: "a", Tags: []string{"infra"}},
		{ID: "2", Content: "b", Tags: []string{"infra"}},
		{ID: "3", Content: "c", Tags: []string{"infra"}},
		{ID: "4", Content: "d", Tags: []string{"other"}},
	}
	sugg, source := a.SuggestSchema(context.Background(), entries)
	if source != SourceDeterministic {
		t.Fatalf("expected deterministic source, got %s", source)
	}
	if len(sugg) != 1 || sugg[0].TypeName != "infra" {
		t.Errorf("expected one suggestion for group 'infra', got %v", sugg)
	}
}

func TestAnalyzer_Summarize_FallbackDigest(t *testing.T) {
	a := unreachableAnalyzer()
	entries := []store.Entry{
		{ID: "1", Content: "first note", TypeName: "decision", UpdatedAt: time.Now().Add(-time.Hour)},
		{ID: "2", Content: "second note", TypeName: "decision", UpdatedAt: time.Now()},
	}
	summary, source := a.Summarize(context.Background(), entries, "")
	if source != SourceDeterministic {
		t.Fatalf("expected deterministic source, got %s", source)
	}
	if summary == "" {
		t.Error("expected non-empty summary")
	}
}

func TestAnalyzer_RankByRelevance_TermOverlapFallback(t *testing.T) {
	a := unreachableAnalyzer()
	entries := []store.Entry{
		{ID: "1", Content: "deployment runbook for production"},
		{ID: "2", Content: "unrelated note about lunch"},
	}
	ranked, source := a.RankByRelevance(context.Background(), entries, "deployment production")
	if source != SourceDeterministic {
		t.Fatalf("expected deterministic source, got %s", source)
	}
	if len(ranked) != 2 || ranked[0].Entry.ID != "1" {
		t.Errorf("expected entry 1 ranked first, got %v", ranked)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("expected entry 1 to score higher than entry 2, got %v", ranked)
	}
}

func TestFirstJSONObject_ExtractsBalancedObject(t *testing.T) {
	s := `here is the answer: {"a": 1, "b": {"c": 2}} trailing text`
	obj, ok := firstJSONObject(s)
	if !ok {
		t.Fatal("expected to find a JSON object")
	}
	if obj != `{"a": 1, "b": {"c": 2}}` {
		t.Errorf("got %q", obj)
	}
}
