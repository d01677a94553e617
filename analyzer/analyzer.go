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
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adityak74/open-context/core/resilience"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/observability/metrics"
	"github.com/adityak74/open-context/observability/tracing"
	adkerrors "github.com/adityak74/open-context/pkg/errors"
	"github.com/adityak74/open-context/selfmodel"
	"github.com/adityak74/open-context/store"
)

// maxConcurrentPairJudgements bounds how many judgePair LM calls run at
// once during contradiction detection.
const maxConcurrentPairJudgements = 4

// Config controls whether and how the analyzer reaches a local LM
// endpoint.
type Config struct {
	Enabled  bool
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// DefaultConfig returns the documented defaults: LM enabled, pointed at a
// local Ollama instance, soft-disabled automatically if unreachable.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Endpoint: "http://localhost:11434",
		Model:    "llama3.2",
		Timeout:  10 * time.Second,
	}
}

// Analyzer wraps an optional LM client behind availability probing and a
// resilience envelope; every public method absorbs all errors and falls
// back to a deterministic computation rather than propagating failure.
type Analyzer struct {
	cfg    Config
	client *lmClient
	logger logging.Logger

	breaker *resilience.CircuitBreaker
	metrics *metrics.AnalyzerMetrics

	once      sync.Once
	available bool
}

// SetMetrics attaches a metrics recorder for LM calls. Optional; nil is
// a no-op.
func (a *Analyzer) SetMetrics(m *metrics.AnalyzerMetrics) {
	a.metrics = m
}

// New creates an Analyzer. If cfg.Enabled is false, every method behaves
// as though the LM were unreachable.
func New(cfg Config, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewZapLogger(logging.LevelInfo)
	}
	a := &Analyzer{
		cfg:    cfg,
		client: newLMClient(cfg.Endpoint, cfg.Model),
		logger: logger,
	}

	breakerCfg := resilience.DefaultCircuitBreakerConfig()
	breakerCfg.OnStateChange = func(from, to resilience.State) {
		a.logger.Warn(context.Background(), "lm circuit breaker state change",
			logging.String("from", from.String()), logging.String("to", to.String()))
	}
	a.breaker = resilience.NewCircuitBreaker(breakerCfg)
	return a
}

// Available probes the LM endpoint on first call and caches the result
// for the process lifetime.
func (a *Analyzer) Available(ctx context.Context) bool {
	a.once.Do(func() {
		if !a.cfg.Enabled {
			a.available = false
			return
		}
		models, err := a.client.listModels(ctx)
		if err != nil {
			a.logger.Warn(ctx, "lm endpoint unavailable, falling back to deterministic analysis", logging.Error(err))
			a.available = false
			return
		}
		a.available = containsModel(models, a.cfg.Model)
		if !a.available {
			a.logger.Warn(ctx, "configured lm model not found, falling back to deterministic analysis",
				logging.String("model", a.cfg.Model))
		}
	})
	return a.available
}

func containsModel(models []string, want string) bool {
	for _, m := range models {
		if m == want || hasModelPrefix(m, want) {
			return true
		}
	}
	return false
}

// hasModelPrefix tolerates a ":latest"-style tag suffix difference.
func hasModelPrefix(full, want string) bool {
	if len(full) <= len(want) {
		return false
	}
	return full[:len(want)] == want && full[len(want)] == ':'
}

func (a *Analyzer) callLM(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "analyzer.generate")
	defer span.End()

	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	var out string
	err := a.breaker.Execute(callCtx, func(ctx context.Context) error {
		return resilience.Retry(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) error {
			resp, err := a.client.generate(ctx, prompt)
			if err != nil {
				return err
			}
			out = resp
			return nil
		})
	})
	if err != nil {
		tracing.RecordError(span, err)
	}
	if a.metrics != nil {
		if err != nil {
			reason := "lm_error"
			if callCtx.Err() == context.DeadlineExceeded {
				reason = "timeout"
			}
			a.metrics.RecordError("generate", reason)
		} else {
			a.metrics.RecordCall("generate", time.Since(start).Seconds())
		}
	}
	if err != nil {
		err = classifyLMError(callCtx, err)
	}
	return out, err
}

// classifyLMError tags a failed generate call with the pkg/errors category a
// caller further up (or an operator reading logs) would want to distinguish:
// a deadline blown by the local endpoint vs. the endpoint being unreachable
// at all vs. the circuit breaker already open from prior failures.
func classifyLMError(callCtx context.Context, err error) error {
	if callCtx.Err() == context.DeadlineExceeded {
		return adkerrors.ErrLLMTimeout.Wrap(err)
	}
	return adkerrors.ErrLLMConnection.Wrap(err)
}

// DetectContradictions checks each same-type, non-archived pair for
// semantic tension. It satisfies selfmodel.ContradictionDetector.
func (a *Analyzer) DetectContradictions(ctx context.Context, entries []store.Entry) ([]selfmodel.Contradiction, error) {
	if !a.Available(ctx) {
		return nil, errUnavailable
	}

	buckets := bucketByType(entries)

	var mu sync.Mutex
	var out []selfmodel.Contradiction
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPairJudgements)

	for typeName, bucket := range buckets {
		if len(bucket) > maxContradictionBucket {
			bucket = bucket[:maxContradictionBucket]
		}
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				typeName, x, y := typeName, bucket[i], bucket[j]
				g.Go(func() error {
					c, ok := a.judgePair(gctx, typeName, x, y)
					if ok {
						mu.Lock()
						out = append(out, c)
						mu.Unlock()
					}
					return nil
				})
			}
		}
	}
	_ = g.Wait()
	return out, nil
}

type contradictionJudgement struct {
	Contradiction bool   `json:"contradiction"`
	Explanation   string `json:"explanation"`
}

func (a *Analyzer) judgePair(ctx context.Context, typeName string, x, y store.Entry) (selfmodel.Contradiction, bool) {
	prompt := "Do these two notes contradict each other? Reply with a single JSON object " +
		`{"contradiction": true|false, "explanation": "one line"}.` +
		"\nNote A: " + x.Content + "\nNote B: " + y.Content

	resp, err := a.callLM(ctx, prompt)
	if err != nil {
		return selfmodel.Contradiction{}, false
	}

	obj, ok := firstJSONObject(resp)
	if !ok {
		return selfmodel.Contradiction{}, false
	}

	var j contradictionJudgement
	if err := json.Unmarshal([]byte(obj), &j); err != nil || !j.Contradiction {
		return selfmodel.Contradiction{}, false
	}

	a.logger.Debug(ctx, "contradiction detected",
		logging.EntryID(x.ID), logging.String("entry_b", y.ID), logging.String("type", typeName))

	return selfmodel.Contradiction{
		EntryA:      x.ID,
		EntryB:      y.ID,
		TypeName:    typeName,
		Explanation: j.Explanation,
		Source:      string(SourceLM),
	}, true
}

func bucketByType(entries []store.Entry) map[string][]store.Entry {
	out := map[string][]store.Entry{}
	for _, e := range entries {
		if e.Archived || e.TypeName == "" {
			continue
		}
		out[e.TypeName] = append(out[e.TypeName], e)
	}
	return out
}

// SuggestSchema proposes up to 3 new catalog types from an untyped entry
// set. Falls back to tag-grouping when fewer than minEntriesForSchema
// entries are given, the LM is unavailable, or the LM response doesn't
// parse.
func (a *Analyzer) SuggestSchema(ctx context.Context, untyped []store.Entry) ([]SchemaSuggestion, Source) {
	if len(untyped) < minEntriesForSchema {
		return nil, SourceDeterministic
	}

	bounded := untyped
	if len(bounded) > maxUntypedForSchema {
		bounded = bounded[:maxUntypedForSchema]
	}

	if a.Available(ctx) {
		if sugg, ok := a.suggestSchemaLM(ctx, bounded); ok {
			return sugg, SourceLM
		}
	}
	if a.metrics != nil {
		a.metrics.RecordFallback("suggest_schema", "lm unavailable or unparsable")
	}
	return suggestSchemaFallback(bounded), SourceDeterministic
}

func (a *Analyzer) suggestSchemaLM(ctx context.Context, entries []store.Entry) ([]SchemaSuggestion, bool) {
	prompt := "Given these untyped notes, suggest at most 3 new context types as a JSON array of " +
		`{"typeName": "...", "description": "...", "fields": [{"name":"...", "type":"...", "description":"..."}]}.` +
		"\n" + joinContents(entries)

	resp, err := a.callLM(ctx, prompt)
	if err != nil {
		return nil, false
	}

	var sugg []SchemaSuggestion
	if err := json.Unmarshal([]byte(resp), &sugg); err != nil {
		return nil, false
	}
	if len(sugg) > 3 {
		sugg = sugg[:3]
	}
	return sugg, true
}

// Summarize produces a digest of entries, optionally focused by hint.
func (a *Analyzer) Summarize(ctx context.Context, entries []store.Entry, focus string) (string, Source) {
	if a.Available(ctx) {
		prompt := "Summarize the following notes"
		if focus != "" {
			prompt += " with a focus on \"" + focus + "\""
		}
		prompt += ":\n" + joinContents(entries)

		if resp, err := a.callLM(ctx, prompt); err == nil && resp != "" {
			return resp, SourceLM
		}
	}
	return summarizeFallback(entries), SourceDeterministic
}

// RankByRelevance orders entries by relevance to query.
func (a *Analyzer) RankByRelevance(ctx context.Context, entries []store.Entry, query string) ([]RankedEntry, Source) {
	bounded := entries
	if len(bounded) > maxRankCandidates {
		bounded = bounded[:maxRankCandidates]
	}

	if a.Available(ctx) {
		if ranked, ok := a.rankLM(ctx, bounded, query); ok {
			return ranked, SourceLM
		}
	}
	return rankFallback(bounded, query), SourceDeterministic
}

func (a *Analyzer) rankLM(ctx context.Context, entries []store.Entry, query string) ([]RankedEntry, bool) {
	prompt := "Rank the following note IDs by relevance to the query \"" + query + "\". " +
		`Reply with a single JSON object {"ids": ["...", "..."]} ordered most to least relevant.` +
		"\n" + joinIDsAndContents(entries)

	resp, err := a.callLM(ctx, prompt)
	if err != nil {
		return nil, false
	}
	obj, ok := firstJSONObject(resp)
	if !ok {
		return nil, false
	}

	var parsed struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, false
	}

	byID := map[string]store.Entry{}
	for _, e := range entries {
		byID[e.ID] = e
	}

	var out []RankedEntry
	seen := map[string]bool{}
	n := len(parsed.IDs)
	for rank, id := range parsed.IDs {
		e, ok := byID[id]
		if !ok {
			continue
		}
		seen[id] = true
		out = append(out, RankedEntry{Entry: e, Score: float64(n-rank) / float64(n)})
	}
	for _, e := range entries {
		if !seen[e.ID] {
			out = append(out, RankedEntry{Entry: e, Score: 0})
		}
	}
	return out, true
}

func joinContents(entries []store.Entry) string {
	var b []byte
	for _, e := range entries {
		b = append(b, []byte("- "+e.Content+"\n")...)
	}
	return string(b)
}

func joinIDsAndContents(entries []store.Entry) string {
	var b []byte
	for _, e := range entries {
		b = append(b, []byte(e.ID+": "+e.Content+"\n")...)
	}
	return string(b)
}
