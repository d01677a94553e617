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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adityak74/open-context/config"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/runtime"
	"github.com/adityak74/open-context/transport/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the MCP tool surface over stdio",
	Long: `Run contextd as an MCP server speaking JSON-RPC over stdin/stdout, for
use as a tool provider inside an agent host. Exits when stdin closes.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	rt, err := runtime.New(cfg).Build()
	if err != nil {
		return fmt.Errorf("assembling runtime: %w", err)
	}

	rt.Logger.Info(context.Background(), "starting contextd mcp server",
		logging.String("store_path", cfg.Store.StorePath))

	server := mcptool.New(rt)
	if err := server.Serve(os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
