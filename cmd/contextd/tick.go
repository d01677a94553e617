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

	"github.com/spf13/cobra"

	"github.com/adityak74/open-context/config"
	"github.com/adityak74/open-context/runtime"
)

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one improvement cycle and exit",
	Long: `Run exactly one observe-classify-link-prune-route cycle against the
configured store, then exit. Intended for cron-style invocation where the
background loop in "serve" isn't running.`,
	RunE: runTick,
}

func runTick(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	rt, err := runtime.New(cfg).Build()
	if err != nil {
		return fmt.Errorf("assembling runtime: %w", err)
	}

	result, err := rt.Improver.Tick(context.Background())
	if err != nil {
		return fmt.Errorf("running tick: %w", err)
	}

	fmt.Printf("tick completed in %s\n", result.Budget)
	for _, a := range result.Executed {
		mode := "pending"
		if a.AutoExecuted {
			mode = "auto"
		}
		fmt.Printf("  %-20s %-8s count=%d\n", a.Kind, mode, a.Count)
	}
	for _, e := range result.Errors {
		fmt.Printf("  error: %v\n", e)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("tick completed with %d error(s)", len(result.Errors))
	}
	return nil
}
