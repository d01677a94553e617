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

func saveContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"save_context",
		"Saves a new piece of context (a fact, decision, or preference) to the store.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"content":  {Type: "string", Description: "The content to remember"},
				"source":   {Type: "string", Description: "Where this came from, e.g. conversation or import"},
				"tags":     {Type: "array", Description: "Free-form tags for later filtering"},
				"group_id": {Type: "string", Description: "Optional group to file the entry under"},
			},
			Required: []string{"content"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			content, errResult := requireString(params, "content")
			if errResult != nil {
				return errResult, nil
			}
			entry, err := rt.Store.Create(content, stringParamOr(params, "source", ""), stringsParam(params, "tags"), stringParamOr(params, "group_id", ""))
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(entry), nil
		},
	)
}

func recallContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"recall_context",
		"Recalls entries whose content or tags loosely match a query.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"query": {Type: "string", Description: "Substring to match against content and tags"},
			},
			Required: []string{"query"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			query, errResult := requireString(params, "query")
			if errResult != nil {
				return errResult, nil
			}
			entries, err := rt.Store.Recall(query)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(entries), nil
		},
	)
}

func listContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"list_context",
		"Lists active entries, optionally filtered to one tag.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"tag": {Type: "string", Description: "Only return entries carrying this tag"},
			},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			entries, err := rt.Store.List(stringParamOr(params, "tag", ""))
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(entries), nil
		},
	)
}

func updateContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"update_context",
		"Updates an existing entry's content, tags, source, or group.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"id":       {Type: "string", Description: "Entry ID"},
				"content":  {Type: "string", Description: "New content, if changing it"},
				"tags":     {Type: "array", Description: "New tag set, if changing it"},
				"source":   {Type: "string", Description: "New source, if changing it"},
				"group_id": {Type: "string", Description: "New group ID, if changing it"},
			},
			Required: []string{"id"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			id, errResult := requireString(params, "id")
			if errResult != nil {
				return errResult, nil
			}
			entry, err := rt.Store.Update(id, optionalStringPtr(params, "content"), stringsParamPtr(params, "tags"), optionalStringPtr(params, "source"), optionalStringPtr(params, "group_id"))
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(entry), nil
		},
	)
}

func deleteContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"delete_context",
		"Permanently deletes an entry by ID.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"id": {Type: "string", Description: "Entry ID"},
			},
			Required: []string{"id"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			id, errResult := requireString(params, "id")
			if errResult != nil {
				return errResult, nil
			}
			if err := rt.Store.Delete(id); err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(map[string]interface{}{"deleted": id}), nil
		},
	)
}

func searchContextTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"search_context",
		"Searches entries requiring every whitespace-separated query term to match content, tags, or source.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"query": {Type: "string", Description: "Space-separated search terms, all required"},
			},
			Required: []string{"query"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			query, errResult := requireString(params, "query")
			if errResult != nil {
				return errResult, nil
			}
			entries, err := rt.Store.Search(query)
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(entries), nil
		},
	)
}
