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
	"github.com/adityak74/open-context/store"
)

func saveGroupTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"save_group",
		"Creates a named group that entries can be filed under.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"name":        {Type: "string", Description: "Group name"},
				"description": {Type: "string", Description: "Optional group description"},
			},
			Required: []string{"name"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			name, errResult := requireString(params, "name")
			if errResult != nil {
				return errResult, nil
			}
			group, err := rt.Store.CreateGroup(name, stringParamOr(params, "description", ""))
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(group), nil
		},
	)
}

func listGroupTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"list_group",
		"Lists every group.",
		&tools.ParameterSchema{Type: "object"},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			groups, err := rt.Store.ListGroups()
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(groups), nil
		},
	)
}

func updateGroupTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"update_group",
		"Renames or redescribes a group.",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"id":          {Type: "string", Description: "Group ID"},
				"name":        {Type: "string", Description: "New name, if changing it"},
				"description": {Type: "string", Description: "New description, if changing it"},
			},
			Required: []string{"id"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			id, errResult := requireString(params, "id")
			if errResult != nil {
				return errResult, nil
			}
			group, err := rt.Store.UpdateGroup(id, optionalStringPtr(params, "name"), optionalStringPtr(params, "description"))
			if err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(group), nil
		},
	)
}

func deleteGroupTool(rt *runtime.Runtime) tools.Tool {
	return tools.NewFunctionTool(
		"delete_group",
		"Deletes a group, orphaning its entries by default or cascading the delete when mode is \"cascade\".",
		&tools.ParameterSchema{
			Type: "object",
			Properties: map[string]*tools.PropertySchema{
				"id":   {Type: "string", Description: "Group ID"},
				"mode": {Type: "string", Description: "orphan (default) or cascade", Enum: []string{"orphan", "cascade"}, Default: "orphan"},
			},
			Required: []string{"id"},
		},
		func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
			id, errResult := requireString(params, "id")
			if errResult != nil {
				return errResult, nil
			}
			mode := store.Orphan
			if stringParamOr(params, "mode", "orphan") == "cascade" {
				mode = store.Cascade
			}
			if err := rt.Store.DeleteGroup(id, mode); err != nil {
				return tools.ErrorResult(err), nil
			}
			return tools.SuccessResult(map[string]interface{}{"deleted": id}), nil
		},
	)
}
