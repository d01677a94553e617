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

// Package metrics instruments the context runtime: the store, the improver's
// tick loop, the control queue, and the analyzer's calls into the local LM.
//
// # Overview
//
// Collector is a Prometheus-backed sink for four metric shapes (counters,
// gauges, histograms, summaries). RuntimeMetrics and AnalyzerMetrics sit on
// top of it with the fixed metric names this runtime actually emits — no
// caller builds ad hoc metric names, which keeps the set of series bounded.
//
//	collector := metrics.NewPrometheusCollector()
//	runtimeMetrics := metrics.NewRuntimeMetrics(collector)
//	analyzerMetrics := metrics.NewAnalyzerMetrics(collector)
//
//	http.Handle("/metrics", collector.Handler())
//
// # Runtime metrics
//
//	runtimeMetrics.RecordStoreOp("save")
//	runtimeMetrics.SetActiveEntries(float64(len(active)))
//	runtimeMetrics.RecordTick(result.Budget.Seconds())
//	runtimeMetrics.RecordAction("auto_tag", "auto")
//	runtimeMetrics.SetPendingQueueDepth(float64(len(pending)))
//	runtimeMetrics.RecordMiss(query)
//
// # Analyzer metrics
//
//	analyzerMetrics.RecordCall("DetectContradictions", latencySeconds)
//	analyzerMetrics.RecordError("DetectContradictions", "timeout")
//	analyzerMetrics.RecordFallback("SuggestSchema", "circuit_open")
//
// # Histogram buckets
//
// context_tick_duration_seconds and context_lm_latency_seconds use bucket
// boundaries sized for their actual scale (ticks run up to the configured
// wall cap, tens of seconds; LM calls over a local endpoint rarely land in
// prometheus.DefBuckets' sub-10ms buckets) instead of Prometheus's default
// web-latency buckets — see histogramBuckets in prometheus.go. Every other
// metric name falls back to prometheus.DefBuckets.
package metrics
