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

package mcptool

import (
	"context"
	"time"

	"github.com/adityak74/open-context/core/tools"
	"github.com/adityak74/open-context/runtime"
	"github.com/adityak74/open-context/store"
)

func introspectTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"introspect",
		"Computes and renders the full self-model: identity, coverage, freshness, gaps, contradictions, and health.",
		&tools.ParameterSchema{Type: "object"},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			model, err := rt.SelfModel(ctx)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return &tools.Result{
				Success: true,
				Output:  model.Rendered,
				Metadata: map[string]interface{}{
					"health":              model.Health,
					"pendingActionsCount": model.PendingActionsCount,
				},
			}, nil
		},
	)
}

func getGapsTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"get_gaps",
		"Returns the identified coverage and freshness gaps in the store, without the full self-model report.",
		&tools.ParameterSchema{Type: "object"},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			model, err := rt.SelfModel(ctx)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(model.Gaps), nil
		},
	)
}

func reportUsefulnessTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"report_usefulness",
		"Records whether a recalled entry was actually helpful, informing future freshness and archival decisions.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"entry_id": {Type: "string", Description: "Entry ID being rated"},
				"helpful":  {Type: "boolean", Description: "Whether the entry was helpful"},
			},
			Required: []string{"entry_id", "helpful"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			entryID, errResult := requireString(params, "entry_id")
			if errResult != nil {
				return errResult, nil
			}
			helpful := boolParamOr(params, "helpful", false)
			if err := rt.Observer.RecordUsefulness(entryID, helpful); err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(map[string]interface{}{"recorded": entryID, "helpful": helpful}), nil
		},
	)
}

func analyzeContradictionsTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"analyze_contradictions",
		"Finds pairs of same-type entries in semantic tension, using the LM analyzer when reachable and a deterministic heuristic otherwise.",
		&tools.ParameterSchema{Type: "object"},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			model, err := rt.SelfModel(ctx)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(model.Contradictions), nil
		},
	)
}

func untypedEntries(rt *runtime.Runtime) ([]store.Entry, error) {
	entries, err := rt.Store.AllActive()
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

func suggestSchemaTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"suggest_schema",
		"Proposes new schema types from untyped entries that look like they share a shape.",
		&tools.ParameterSchema{Type: "object"},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			if rt.Analyzer == nil {
				return tools.ErrorResultWithMessage("analyzer is not configured"), nil
			}
			untyped, err := untypedEntries(rt)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			suggestions, source := rt.Analyzer.SuggestSchema(ctx, untyped)
			return &tools.Result{
				Success: true,
				Output:  suggestions,
				Metadata: map[string]interface{}{"source": source},
			}, nil
		},
	)
}

func summarizeContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"summarize_context",
		"Summarizes the active entries matching an optional query, around an optional focus.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"query": {Type: "string", Description: "Narrows summarized entries via search_context; omit to summarize everything"},
				"focus": {Type: "string", Description: "What aspect to emphasize in the summary"},
			},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			if rt.Analyzer == nil {
				return tools.ErrorResultWithMessage("analyzer is not configured"), nil
			}
			var entries []store.Entry
			var err error
			if query, ok := stringParam(params, "query"); ok && query != "" {
				entries, err = rt.Store.Search(query)
			} else {
				entries, err = rt.Store.AllActive()
			}
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			summary, source := rt.Analyzer.Summarize(ctx, entries, stringParamOr(params, "focus", ""))
			return &tools.Result{
				Success:  true,
				Output:   summary,
				Metadata: map[string]interface{}{"source": source, "entryCount": len(entries)},
			}, nil
		},
	)
}

func getImprovementsTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"get_improvements",
		"Lists self-improvement actions the tick has executed since an optional cutoff (RFC3339), newest window if omitted.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"since": {Type: "string", Description: "RFC3339 timestamp; defaults to 7 days ago"},
			},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			cutoff := time.Now().UTC().Add(-7 * 24 * time.Hour)
			if raw, ok := stringParam(params, "since"); ok && raw != "" {
				parsed, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return tools.ErrorResultWithMessage("since must be RFC3339"), nil
				}
				cutoff = parsed
			}
			records, err := rt.Observer.ImprovementsSince(cutoff)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(records), nil
		},
	)
}
