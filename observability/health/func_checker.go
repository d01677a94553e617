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

package health

import "context"

// FuncChecker adapts a plain probe function to the Checker interface, so
// the runtime can register a readiness check against its own store,
// analyzer, or control queue without this package importing any of
// them.
type FuncChecker struct {
	name string
	fn   func(ctx context.Context) error
}

// NewFuncChecker builds a Checker named name that reports unhealthy
// whenever fn returns a non-nil error.
func NewFuncChecker(name string, fn func(ctx context.Context) error) *FuncChecker {
	return &FuncChecker{name: name, fn: fn}
}

func (c *FuncChecker) Name() string {
	return c.name
}

func (c *FuncChecker) Check(ctx context.Context) CheckResult {
	if err := c.fn(ctx); err != nil {
		return CheckResult{Name: c.name, Status: StatusUnhealthy, Message: err.Error()}
	}
	return CheckResult{Name: c.name, Status: StatusHealthy}
}
