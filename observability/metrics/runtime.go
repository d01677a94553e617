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

package metrics

const (
	// MetricStoreOps counts store operations by kind (save, update, delete, recall...).
	MetricStoreOps = "context_store_operations_total"

	// MetricStoreEntries tracks the current active entry count.
	MetricStoreEntries = "context_store_entries"

	// MetricTickDuration observes how long one improver tick took.
	MetricTickDuration = "context_tick_duration_seconds"

	// MetricTickActions counts actions taken per tick, by kind and route.
	MetricTickActions = "context_tick_actions_total"

	// MetricPendingQueueDepth tracks the number of pending actions awaiting approval.
	MetricPendingQueueDepth = "context_pending_queue_depth"

	// MetricObserverMisses counts recorded query misses.
	MetricObserverMisses = "context_observer_misses_total"

	// MetricCacheOps counts self-model cache operations by result
	// (hit, miss, eviction).
	MetricCacheOps = "context_cache_operations_total"
)

// RuntimeMetrics provides metrics for the store/observer/improver/control
// plane — the components that make up the self-aware runtime.
type RuntimeMetrics struct {
	collector Collector
}

// NewRuntimeMetrics creates a runtime metrics recorder on top of collector.
func NewRuntimeMetrics(collector Collector) *RuntimeMetrics {
	return &RuntimeMetrics{collector: collector}
}

// RecordStoreOp records one store operation (save, update, delete, recall,
// search, archive, ...).
func (m *RuntimeMetrics) RecordStoreOp(op string) {
	m.collector.IncrementCounter(MetricStoreOps, NewLabels("op", op))
}

// SetActiveEntries sets the current active entry count gauge.
func (m *RuntimeMetrics) SetActiveEntries(count float64) {
	m.collector.SetGauge(MetricStoreEntries, count, NoLabels())
}

// RecordTick observes a completed improver tick's wall-clock duration.
func (m *RuntimeMetrics) RecordTick(seconds float64) {
	m.collector.ObserveHistogram(MetricTickDuration, seconds, NoLabels())
}

// RecordAction records one improver action, labeled by kind and whether it
// was auto-executed or enqueued for approval.
func (m *RuntimeMetrics) RecordAction(kind, route string) {
	m.collector.IncrementCounter(MetricTickActions, NewLabels("kind", kind, "route", route))
}

// SetPendingQueueDepth sets the number of pending actions awaiting approval.
func (m *RuntimeMetrics) SetPendingQueueDepth(depth float64) {
	m.collector.SetGauge(MetricPendingQueueDepth, depth, NoLabels())
}

// RecordMiss records a recall/search/query-by-type miss.
func (m *RuntimeMetrics) RecordMiss(query string) {
	labels := NoLabels()
	if query != "" {
		labels = NewLabels("has_query", "true")
	}
	m.collector.IncrementCounter(MetricObserverMisses, labels)
}

// RecordCacheOp records one self-model cache operation, labeled by its
// result (hit, miss, eviction).
func (m *RuntimeMetrics) RecordCacheOp(result string) {
	m.collector.IncrementCounter(MetricCacheOps, NewLabels("result", result))
}
