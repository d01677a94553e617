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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/adityak74/open-context/core/tools"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/runtime"
)

const serverVersion = "0.1.0"

// Server is a running MCP stdio server bound to one runtime.Runtime.
type Server struct {
	registry *tools.Registry
	logger   logging.Logger
}

// New builds a Server with every tool registered against rt.
func New(rt *runtime.Runtime) *Server {
	return &Server{
		registry: buildRegistry(rt),
		logger:   rt.Logger,
	}
}

// Serve runs the JSON-RPC read loop: one request per line on r, one
// response per line on w. Returns when r is exhausted or errors.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn(context.Background(), "invalid JSON-RPC request", logging.Error(err))
			continue
		}

		resp := s.handleRequest(context.Background(), req)
		if isNotification(resp) {
			continue
		}

		encoded, err := json.Marshal(resp)
		if err != nil {
			s.logger.Error(context.Background(), "cannot encode response", logging.Error(err))
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", encoded); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *Server) handleRequest(ctx context.Context, req jsonRPCRequest) jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: initializeResult{
				ProtocolVersion: protocolVersion,
				Capabilities:    capabilities{Tools: map[string]any{"listChanged": false}},
				ServerInfo:      serverInfo{Name: serverName, Version: serverVersion},
				Instructions:    instructions,
			},
		}

	case "notifications/initialized":
		return jsonRPCResponse{}

	case "tools/list":
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  toolsListResult{Tools: s.listTools()},
		}

	case "tools/call":
		var params toolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		result := s.callTool(ctx, params)
		return jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: result}

	default:
		return errorResponse(req.ID, -32601, "Method not found", req.Method)
	}
}

func errorResponse(id any, code int, message string, data any) jsonRPCResponse {
	return jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message, Data: data},
	}
}

func (s *Server) listTools() []mcpTool {
	registered := s.registry.List()
	out := make([]mcpTool, 0, len(registered))
	for _, t := range registered {
		out = append(out, mcpTool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schemaToMap(t.Parameters()),
		})
	}
	return out
}

func (s *Server) callTool(ctx context.Context, params toolCallParams) toolResult {
	result, err := s.registry.Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		return toolResult{
			Content: []content{{Type: "text", Text: err.Error()}},
			IsError: true,
		}
	}
	if !result.Success {
		return toolResult{
			Content: []content{{Type: "text", Text: result.Error}},
			IsError: true,
		}
	}
	return toolResult{Content: []content{{Type: "text", Text: renderOutput(result.Output)}}}
}

func renderOutput(output interface{}) string {
	if s, ok := output.(string); ok {
		return s
	}
	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", output)
	}
	return string(encoded)
}

func schemaToMap(p *tools.ParameterSchema) map[string]any {
	if p == nil {
		return map[string]any{"type": "object"}
	}
	properties := make(map[string]any, len(p.Properties))
	for name, prop := range p.Properties {
		entry := map[string]any{"type": prop.Type}
		if prop.Description != "" {
			entry["description"] = prop.Description
		}
		if len(prop.Enum) > 0 {
			entry["enum"] = prop.Enum
		}
		if prop.Default != nil {
			entry["default"] = prop.Default
		}
		properties[name] = entry
	}
	return map[string]any{
		"type":       p.Type,
		"properties": properties,
		"required":   p.Required,
	}
}
