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

// Package tools defines the Tool interface and Registry that back
// transport/mcptool's MCP server: save_context, recall_context,
// analyze_contradictions, and the rest of the context tools transport/mcptool
// registers are all FunctionTool values dispatched through one Registry.
//
// Example, grounded in how transport/mcptool builds its save_context tool:
//
//	saveContext := tools.NewFunctionTool(
//	    "save_context",
//	    "Persists a context entry to the store",
//	    &tools.ParameterSchema{
//	        Type: "object",
//	        Properties: map[string]*tools.PropertySchema{
//	            "content": {Type: "string", Description: "Entry content"},
//	            "group":   {Type: "string", Description: "Target context group"},
//	        },
//	        Required: []string{"content"},
//	    },
//	    func(ctx context.Context, params map[string]interface{}) (*tools.Result, error) {
//	        content, ok := params["content"].(string)
//	        if !ok {
//	            return nil, tools.ErrInvalidParameters
//	        }
//	        entry, err := st.Save(ctx, content)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return &tools.Result{Success: true, Output: entry}, nil
//	    },
//	)
//
//	registry := tools.NewRegistry()
//	registry.Register(saveContext)
//
//	result, err := registry.Execute(ctx, "save_context", map[string]interface{}{
//	    "content": "user prefers dark mode",
//	})
package tools
