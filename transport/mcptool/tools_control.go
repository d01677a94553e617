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

	"github.com/adityak74/open-context/core/tools"
	"github.com/adityak74/open-context/runtime"
)

func reviewPendingActionsTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"review_pending_actions",
		"Lists every pending action the improver has proposed, regardless of status.",
		&tools.ParameterSchema{Type: "object"},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			pending, err := rt.Control.Pending()
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(pending), nil
		},
	)
}

// pendingIDs collects one or many target IDs from either "id" or "ids".
func pendingIDs(params map[string]interface{}) []string {
	if id, ok := stringParam(params, "id"); ok && id != "" {
		return []string{id}
	}
	return stringsParam(params, "ids")
}

func approveActionTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"approve_action",
		"Approves one or more pending actions by ID, running each through the same execution path a tick uses.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"id":  {Type: "string", Description: "Single pending action ID"},
				"ids": {Type: "array", Description: "Multiple pending action IDs"},
			},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			ids := pendingIDs(params)
			if len(ids) == 0 {
				return tools.ErrorResultWithMessage("id or ids is required"), nil
			}
			results := rt.Control.ApproveBatch(ids, rt.Improver.Executor())
			return tools.SuccessResult(results), nil
		},
	)
}

func dismissActionTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"dismiss_action",
		"Dismisses one or more pending actions by ID, learning a standing protection against repeating them.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"id":     {Type: "string", Description: "Single pending action ID"},
				"ids":    {Type: "array", Description: "Multiple pending action IDs"},
				"reason": {Type: "string", Description: "Why this action is being dismissed"},
			},
			Required: []string{"reason"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			ids := pendingIDs(params)
			if len(ids) == 0 {
				return tools.ErrorResultWithMessage("id or ids is required"), nil
			}
			reason, errResult := requireString(params, "reason")
			if errResult != nil {
				return errResult, nil
			}
			errs := rt.Control.DismissBatch(ids, reason)
			failed := 0
			for _, err := range errs {
				if err != nil {
					failed++
				}
			}
			return &tools.Result{
				Success: failed == 0,
				Output:  map[string]interface{}{"dismissed": ids},
				Metadata: map[string]interface{}{"failedCount": failed},
			}, nil
		},
	)
}
