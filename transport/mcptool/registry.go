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
	"fmt"

	"github.com/adityak74/open-context/core/tools"
	"github.com/adityak74/open-context/runtime"
)

// buildRegistry registers every context-runtime tool against rt. A
// registration failure here means two tools share a name, which is a
// programming error, not a runtime condition — it panics.
func buildRegistry(rt *runtime.Runtime) *tools.Registry {
	reg := tools.NewRegistry()

	all := []tools.Tool{
		saveContextTool(rt),
		recallContextTool(rt),
		listContextTool(rt),
		updateContextTool(rt),
		deleteContextTool(rt),
		searchContextTool(rt),

		saveGroupTool(rt),
		listGroupTool(rt),
		updateGroupTool(rt),
		deleteGroupTool(rt),

		describeSchemaTool(rt),
		saveTypedContextTool(rt),
		queryByTypeTool(rt),

		introspectTool(rt),
		getGapsTool(rt),
		reportUsefulnessTool(rt),
		analyzeContradictionsTool(rt),
		suggestSchemaTool(rt),
		summarizeContextTool(rt),
		getImprovementsTool(rt),

		reviewPendingActionsTool(rt),
		approveActionTool(rt),
		dismissActionTool(rt),
	}

	for _, t := range all {
		if err := reg.Register(t); err != nil {
			panic(fmt.Sprintf("mcptool: registering %s: %v", t.Name(), err))
		}
	}
	return reg
}

// --- parameter extraction helpers ---

func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok
}

func stringParamOr(params map[string]interface{}, key, fallback string) string {
	if v, ok := stringParam(params, key); ok {
		return v
	}
	return fallback
}

func boolParamOr(params map[string]interface{}, key string, fallback bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return fallback
}

func mapParam(params map[string]interface{}, key string) map[string]interface{} {
	if v, ok := params[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// stringsParam reads a JSON array of strings, tolerating the
// []interface{} shape encoding/json produces for map[string]interface{}.
func stringsParam(params map[string]interface{}, key string) []string {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringsParamPtr(params map[string]interface{}, key string) []string {
	if _, present := params[key]; !present {
		return nil
	}
	out := stringsParam(params, key)
	if out == nil {
		return []string{}
	}
	return out
}

func optionalStringPtr(params map[string]interface{}, key string) *string {
	if v, ok := stringParam(params, key); ok {
		return &v
	}
	return nil
}

func requireString(params map[string]interface{}, key string) (string, *tools.Result) {
	v, ok := stringParam(params, key)
	if !ok || v == "" {
		return "", tools.ErrorResult(fmt.Errorf("%w: %s is required", tools.ErrInvalidParameters, key))
	}
	return v, nil
}
