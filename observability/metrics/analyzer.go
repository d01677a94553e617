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
	// MetricLMCalls counts calls issued to the local LM endpoint, by method.
	MetricLMCalls = "context_lm_calls_total"

	// MetricLMErrors counts LM calls that failed or timed out.
	MetricLMErrors = "context_lm_errors_total"

	// MetricLMLatency observes LM call latency.
	MetricLMLatency = "context_lm_latency_seconds"

	// MetricAnalyzerFallback counts analyzer calls that fell back to the
	// deterministic path, by method and reason.
	MetricAnalyzerFallback = "context_analyzer_fallback_total"
)

// AnalyzerMetrics instruments the analyzer's LM-backed methods and their
// deterministic fallbacks.
type AnalyzerMetrics struct {
	collector Collector
}

// NewAnalyzerMetrics creates an analyzer metrics recorder.
func NewAnalyzerMetrics(collector Collector) *AnalyzerMetrics {
	return &AnalyzerMetrics{collector: collector}
}

// RecordCall records one LM call with its latency.
func (m *AnalyzerMetrics) RecordCall(method string, latency float64) {
	labels := NewLabels("method", method)
	m.collector.IncrementCounter(MetricLMCalls, labels)
	m.collector.ObserveHistogram(MetricLMLatency, latency, labels)
}

// RecordError records an LM call failure.
func (m *AnalyzerMetrics) RecordError(method, errorType string) {
	m.collector.IncrementCounter(MetricLMErrors, NewLabels("method", method, "type", errorType))
}

// RecordFallback records a method that degraded to its deterministic path.
func (m *AnalyzerMetrics) RecordFallback(method, reason string) {
	m.collector.IncrementCounter(MetricAnalyzerFallback, NewLabels("method", method, "reason", reason))
}
