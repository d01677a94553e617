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
	"time"

	"github.com/adityak74/open-context/analyzer"
	"github.com/adityak74/open-context/cache"
	"github.com/adityak74/open-context/control"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/observability/metrics"
	"github.com/adityak74/open-context/observability/tracing"
	"github.com/adityak74/open-context/observer"
	"github.com/adityak74/open-context/schema"
	"github.com/adityak74/open-context/selfmodel"
	"github.com/adityak74/open-context/store"
)

// Improver runs the periodic self-improvement tick against one store.
// Catalog and Analyzer may be nil; Store and Observer and Control must
// not be.
type Improver struct {
	Store    *store.Store
	Catalog  *schema.Catalog
	Observer *observer.Observer
	Analyzer *analyzer.Analyzer
	Control  *control.Control

	// WallBudget overrides the default wall-clock cap on one tick, when
	// set by the runtime from configuration. Zero means use WallBudget.
	WallBudget time.Duration

	// Metrics records tick duration and routed actions, when set by the
	// runtime. Nil is a no-op.
	Metrics *metrics.RuntimeMetrics

	// Cache holds the self-model snapshot readers are served from; Tick
	// invalidates it on completion so the next read recomputes.
	Cache *cache.SelfModelCache

	// Logger records one line per routed action and a tick summary.
	// Optional; nil falls back to a no-op logger.
	Logger logging.Logger
}

func (imp *Improver) logger() logging.Logger {
	if imp.Logger != nil {
		return imp.Logger
	}
	return logging.NewNopLogger()
}

// Tick runs one observe/decide/route/record cycle within the wall
// budget, catching and logging every error so the loop survives.
func (imp *Improver) Tick(ctx context.Context) (TickResult, error) {
	ctx, span := tracing.StartSpan(ctx, "improver.tick")
	defer span.End()

	budget := imp.WallBudget
	if budget <= 0 {
		budget = WallBudget
	}
	start := time.Now()
	deadline := start.Add(budget)
	result := TickResult{}

	// Phase 1: Observe.
	entries, err := imp.Store.AllActive()
	if err != nil {
		result.Errors = append(result.Errors, err)
		result.Budget = time.Since(start)
		return result, nil
	}

	var detector selfmodel.ContradictionDetector
	if imp.Analyzer != nil {
		detector = imp.Analyzer
	}
	model, err := selfmodel.Build(ctx, imp.Store, imp.Catalog, imp.Observer, detector)
	if err != nil {
		result.Errors = append(result.Errors, err)
	}

	missed, err := imp.Observer.MissedQueries(missThreshold)
	if err != nil {
		result.Errors = append(result.Errors, err)
	}
	readIDs, err := imp.Observer.ReadIDs()
	if err != nil {
		result.Errors = append(result.Errors, err)
	}

	// Phase 2: Decide.
	var candidates []control.Candidate
	candidates = append(candidates, decideAutoTag(entries)...)
	candidates = append(candidates, decideMergeDuplicates(entries)...)
	candidates = append(candidates, decidePromoteToType(entries, imp.Catalog)...)
	candidates = append(candidates, decideArchiveStale(entries, readIDs)...)
	candidates = append(candidates, decideCreateGapStubs(missed, entries)...)

	if time.Now().Before(deadline) {
		candidates = append(candidates, decideResolveContradictions(model.Contradictions, byIDMap(entries))...)
		candidates = append(candidates, decideSuggestSchema(untypedOf(entries), imp.Analyzer)...)
	}

	pending, err := imp.Control.Pending()
	if err != nil {
		result.Errors = append(result.Errors, err)
		pending = nil
	}
	candidates = dedupe(candidates, pending)

	// Phase 3: Route.
	log := imp.logger()
	counts := map[string]int{}
	for _, cand := range candidates {
		executed, ok, err := imp.Control.Route(cand, imp.executor())
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if !ok {
			continue // dropped: protected
		}
		result.Executed = append(result.Executed, ExecutedAction{Kind: cand.Kind, AutoExecuted: executed, Count: 1})
		if executed {
			counts[cand.Kind]++
			if imp.Metrics != nil {
				imp.Metrics.RecordAction(cand.Kind, "auto")
			}
			log.Debug(ctx, "tick action executed",
				logging.TickPhase("route"), logging.ActionKind(cand.Kind), logging.Int("entries", len(cand.EntryIDs)))
		}
	}

	if err := imp.Control.Expire(); err != nil {
		result.Errors = append(result.Errors, err)
	}

	if imp.Metrics != nil {
		if pending, err := imp.Control.Pending(); err == nil {
			imp.Metrics.SetPendingQueueDepth(float64(len(pending)))
		}
	}

	// Phase 4: Record.
	if len(counts) > 0 {
		var actionCounts []observer.ActionCount
		for kind, n := range counts {
			actionCounts = append(actionCounts, observer.ActionCount{Type: kind, Count: n})
		}
		if err := imp.Observer.AppendImprovement(observer.ImprovementRecord{
			Actions:      actionCounts,
			AutoExecuted: true,
		}); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	if imp.Cache != nil {
		_ = imp.Cache.Invalidate(ctx)
	}

	result.Budget = time.Since(start)
	if imp.Metrics != nil {
		imp.Metrics.RecordTick(result.Budget.Seconds())
	}
	log.Info(ctx, "tick completed",
		logging.TickPhase("record"),
		logging.Int("actions_executed", len(result.Executed)),
		logging.Int("errors", len(result.Errors)),
		logging.Duration("budget_ms", result.Budget.Milliseconds()))
	return result, nil
}

// Executor exposes the action-kind dispatch table Tick routes candidates
// through, so a manually approved pending action runs the same code path
// as an auto-executed one.
func (imp *Improver) Executor() control.Executor {
	return imp.executor()
}

func untypedOf(entries []store.Entry) []store.Entry {
	var out []store.Entry
	for _, e := range entries {
		if e.TypeName == "" {
			out = append(out, e)
		}
	}
	return out
}

// dedupe drops any candidate whose kind already has a pending (not yet
// resolved) action targeting an overlapping set of entries.
func dedupe(candidates []control.Candidate, pending []observer.PendingAction) []control.Candidate {
	type key struct {
		kind string
		id   string
	}
	taken := map[key]bool{}
	for _, pa := range pending {
		if pa.Status != observer.StatusPending {
			continue
		}
		for _, id := range stringSlice(pa.ActionPayload["entryIds"]) {
			taken[key{pa.ActionKind, id}] = true
		}
	}

	var out []control.Candidate
	for _, cand := range candidates {
		overlap := false
		for _, id := range cand.EntryIDs {
			if taken[key{cand.Kind, id}] {
				overlap = true
				break
			}
		}
		if !overlap {
			out = append(out, cand)
		}
	}
	return out
}
