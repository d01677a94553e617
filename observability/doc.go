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

// Package observability wires metrics, structured logging, tracing, and
// health checks for a running runtime.Runtime, and assembles them into the
// Manager that runtime/builder.go constructs at startup.
//
// # Metrics
//
// Collect and expose Prometheus metrics for cache, store, and analyzer
// operations:
//
//	collector := metrics.NewPrometheusCollector()
//	runtimeMetrics := metrics.NewRuntimeMetrics(collector)
//
//	runtimeMetrics.RecordStoreOp("save", 0.004)
//	runtimeMetrics.RecordCacheOp("hit")
//
//	http.Handle("/metrics", collector.Handler())
//
// # Logging
//
// Structured logging with context-propagated request and tick identifiers:
//
//	logger := logging.NewZapLogger(logging.LevelInfo)
//
//	ctx = logging.WithRequestID(ctx, reqID)
//	logger.Info(ctx, "analyze tick completed",
//	    logging.TickPhase("contradiction-scan"),
//	    logging.Int("findings", len(findings)),
//	)
//
// # Health Checks
//
// Liveness, readiness, and startup probes. StartupChecker reports once
// runtime.Builder has finished assembling the store, catalog, analyzer, and
// control queue:
//
//	liveness := health.NewLivenessChecker()
//	startup := health.NewStartupChecker()
//	readiness := health.NewReadinessChecker(startup)
//
//	http.Handle("/health/live", health.Handler(liveness))
//	http.Handle("/health/ready", health.Handler(readiness))
//
// # Assembling a Manager
//
// Manager, constructed by NewManager from a ManagerConfig wrapping a Config
// loaded via config.Load, ties all four concerns together behind one
// HTTPHandler and one request-logging middleware.Chain:
//
//	mgr, err := observability.NewManager(&observability.ManagerConfig{
//	    Config:     cfg.Observability,
//	    InstanceID: cfg.InstanceID,
//	})
//	http.Handle("/", mgr.HTTPHandler())
package observability
