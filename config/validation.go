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

package config

import (
	"fmt"
)

// Validate checks the configuration for internally inconsistent values.
// It does not touch the filesystem or network.
func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateAnalyzer(); err != nil {
		return err
	}
	if err := c.validateTick(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.StorePath == "" {
		return fmt.Errorf("store.store_path must not be empty")
	}
	if c.Store.AwarenessPath == "" {
		return fmt.Errorf("store.awareness_path must not be empty")
	}
	if c.Store.SchemaPath == "" {
		return fmt.Errorf("store.schema_path must not be empty")
	}
	return nil
}

func (c *Config) validateAnalyzer() error {
	if !c.Analyzer.Enabled {
		return nil
	}
	if c.Analyzer.Endpoint == "" {
		return fmt.Errorf("analyzer.endpoint must not be empty when analyzer.enabled is true")
	}
	if c.Analyzer.Model == "" {
		return fmt.Errorf("analyzer.model must not be empty when analyzer.enabled is true")
	}
	if c.Analyzer.Timeout <= 0 {
		return fmt.Errorf("analyzer.timeout must be positive")
	}
	return nil
}

func (c *Config) validateTick() error {
	if !c.Tick.Enabled {
		return nil
	}
	if c.Tick.Interval <= 0 {
		return fmt.Errorf("tick.interval must be positive when tick.enabled is true")
	}
	if c.Tick.WallCap <= 0 {
		return fmt.Errorf("tick.wall_cap must be positive when tick.enabled is true")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	return nil
}
