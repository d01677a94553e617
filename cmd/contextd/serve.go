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
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adityak74/open-context/config"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/runtime"
	"github.com/adityak74/open-context/transport/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST/WebSocket server and background improvement loop",
	Long: `Start the HTTP server that exposes contexts, schema, awareness, and
pending actions over REST, streams events over WebSocket, and (unless
tick.enabled is false) runs the improver on a fixed interval in the
background.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	rt, err := runtime.New(cfg).Build()
	if err != nil {
		return fmt.Errorf("assembling runtime: %w", err)
	}

	ctx := context.Background()
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := httpapi.New(rt, addr)

	rt.Logger.Info(ctx, "starting contextd",
		logging.String("address", addr),
		logging.String("store_path", cfg.Store.StorePath))

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		rt.Logger.Info(ctx, "shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if rt.Observability != nil {
		_ = rt.Observability.Shutdown(shutdownCtx)
	}

	rt.Logger.Info(ctx, "shutdown complete")
	return nil
}
