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

package logging

import "context"

// nopLogger discards everything. Used as a safe default when a caller
// does not wire a real Logger.
type nopLogger struct{}

// NewNopLogger returns a Logger that does nothing.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...Field) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...Field)  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...Field)  {}
func (nopLogger) Error(ctx context.Context, msg string, fields ...Field) {}
func (nopLogger) Fatal(ctx context.Context, msg string, fields ...Field) {}
func (nopLogger) With(fields ...Field) Logger                           { return nopLogger{} }
func (nopLogger) SetLevel(level Level)                                  {}
func (nopLogger) SetSamplingRate(rate float64)                          {}
