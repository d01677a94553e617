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

func describeSchemaTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"describe_schema",
		"Describes the types registered in the context schema, if any.",
		&tools.ParameterSchema{Type: "object"},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			return tools.SuccessResult(rt.Catalog.Describe()), nil
		},
	)
}

func saveTypedContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"save_typed_context",
		"Saves an entry validated and rendered against a registered schema type.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"type":     {Type: "string", Description: "Registered schema type name"},
				"data":     {Type: "object", Description: "Structured field data matching the type"},
				"source":   {Type: "string", Description: "Where this came from"},
				"tags":     {Type: "array", Description: "Free-form tags"},
				"group_id": {Type: "string", Description: "Optional group to file the entry under"},
			},
			Required: []string{"type", "data"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			typeName, errResult := requireString(params, "type")
			if errResult != nil {
				return errResult, nil
			}
			data := mapParam(params, "data")
			if data == nil {
				return tools.ErrorResultWithMessage("data is required"), nil
			}
			entry, validationErrs, err := rt.Store.CreateTyped(typeName, data, stringParamOr(params, "source", ""), stringsParam(params, "tags"), stringParamOr(params, "group_id", ""), rt.Catalog)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return &tools.Result{
				Success: true,
				Output:  entry,
				Metadata: map[string]interface{}{
					"validationErrors": validationErrs,
				},
			}, nil
		},
	)
}

func queryByTypeTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"query_by_type",
		"Queries active entries of one schema type, optionally filtered by exact field values.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"type":   {Type: "string", Description: "Registered schema type name"},
				"filter": {Type: "object", Description: "Exact-match field filters"},
			},
			Required: []string{"type"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			typeName, errResult := requireString(params, "type")
			if errResult != nil {
				return errResult, nil
			}
			entries, err := rt.Store.QueryByType(typeName, mapParam(params, "filter"))
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(entries), nil
		},
	)
}
