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

// Package improver runs the periodic self-improvement tick: observe the
// store and its usage, decide on a set of candidate actions, route each
// through the control plane, and record what ran.
package improver

import "time"

// WallBudget is the hard cap on one tick's duration.
const WallBudget = 30 * time.Second

const (
	minEmptyTagEntries   = 3
	staleArchiveWindow   = 180 * 24 * time.Hour
	duplicateSimilarity  = 0.8
	minUntypedForSuggest = 5
	promoteKeywordMin    = 2
	missThreshold        = 3
)

// TickResult summarizes one tick's outcome, returned for logging/tests.
type TickResult struct {
	Executed []ExecutedAction
	Errors   []error
	Budget   time.Duration
}

// ExecutedAction records one action the tick ran (auto-executed or
// enqueued), for the improvement journal.
type ExecutedAction struct {
	Kind         string
	AutoExecuted bool
	Count        int
}
