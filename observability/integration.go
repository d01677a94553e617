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

package observability

import (
	"context"
	"net/http"

	"github.com/adityak74/open-context/core/middleware"
	"github.com/adityak74/open-context/observability/health"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/observability/metrics"
	"github.com/adityak74/open-context/observability/tracing"
)

// Manager wires together logging, metrics, health checks, and tracing for
// a running contextd instance.
type Manager struct {
	config           *Config
	logger           logging.Logger
	collector        metrics.Collector
	runtimeMetrics   *metrics.RuntimeMetrics
	analyzerMetrics  *metrics.AnalyzerMetrics
	livenessChecker  *health.LivenessChecker
	startupChecker   *health.StartupChecker
	readinessChecker *health.ReadinessChecker
	tracingShutdown  func(context.Context) error
}

// ManagerConfig configures the observability manager.
type ManagerConfig struct {
	// InstanceID identifies this runtime instance in logs.
	InstanceID string

	// Config is the observability configuration.
	Config *Config
}

// NewManager creates a new observability manager.
//
// Example:
//
//	manager, err := observability.NewManager(&observability.ManagerConfig{
//	    InstanceID: "contextd-1",
//	    Config:     observability.DefaultConfig(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Shutdown(context.Background())
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if err := cfg.Config.Validate(); err != nil {
		return nil, err
	}

	zapLogger := logging.NewZapLogger(logging.Level(cfg.Config.Logging.Level))
	zapLogger.SetSamplingRate(cfg.Config.Logging.SamplingRate)
	var logger logging.Logger = zapLogger.With(logging.String("instance_id", cfg.InstanceID))

	collector := metrics.NewPrometheusCollector()
	runtimeMetrics := metrics.NewRuntimeMetrics(collector)
	analyzerMetrics := metrics.NewAnalyzerMetrics(collector)

	livenessChecker := health.NewLivenessChecker()
	startupChecker := health.NewStartupChecker()
	readinessChecker := health.NewReadinessChecker(startupChecker)

	livenessChecker.MarkRunning()

	tracingShutdown, err := tracing.InitTracing(tracing.Config{
		ServiceName:    cfg.InstanceID,
		JaegerEndpoint: cfg.Config.Tracing.Endpoint,
		SamplingRate:   cfg.Config.Tracing.SamplingRate,
		Enabled:        cfg.Config.Tracing.Enabled,
	})
	if err != nil {
		return nil, err
	}

	return &Manager{
		config:           cfg.Config,
		logger:           logger,
		collector:        collector,
		runtimeMetrics:   runtimeMetrics,
		analyzerMetrics:  analyzerMetrics,
		livenessChecker:  livenessChecker,
		startupChecker:   startupChecker,
		readinessChecker: readinessChecker,
		tracingShutdown:  tracingShutdown,
	}, nil
}

// Logger returns the logger.
func (m *Manager) Logger() logging.Logger {
	return m.logger
}

// Collector returns the metrics collector.
func (m *Manager) Collector() metrics.Collector {
	return m.collector
}

// RuntimeMetrics returns the store/observer/improver/control metrics.
func (m *Manager) RuntimeMetrics() *metrics.RuntimeMetrics {
	return m.runtimeMetrics
}

// AnalyzerMetrics returns the analyzer LM-call metrics.
func (m *Manager) AnalyzerMetrics() *metrics.AnalyzerMetrics {
	return m.analyzerMetrics
}

// LivenessChecker returns the liveness checker.
func (m *Manager) LivenessChecker() *health.LivenessChecker {
	return m.livenessChecker
}

// StartupChecker returns the startup checker.
func (m *Manager) StartupChecker() *health.StartupChecker {
	return m.startupChecker
}

// ReadinessChecker returns the readiness checker.
func (m *Manager) ReadinessChecker() *health.ReadinessChecker {
	return m.readinessChecker
}

// MarkReady marks the runtime as ready to serve traffic.
func (m *Manager) MarkReady() {
	m.startupChecker.MarkReady()
}

// AddReadinessCheck adds a health check to the readiness checker.
func (m *Manager) AddReadinessCheck(checker health.Checker) {
	m.readinessChecker.AddCheck(checker)
}

// RequestMiddleware returns the request-id/access-log/recovery chain that
// every HTTP surface (REST and metrics/health) is served through.
func (m *Manager) RequestMiddleware() *middleware.Chain {
	return middleware.NewChain(
		middleware.RequestID(),
		middleware.Recovery(m.logger),
		middleware.AccessLog(m.logger),
	)
}

// HTTPHandler returns an http.Handler for exposing observability endpoints,
// mounted at the paths configured in Config (Metrics.Path, Health.*Path).
// Each group is mounted only if its Enabled flag is set, so an operator who
// disables metrics scraping doesn't pay for the handler at all.
func (m *Manager) HTTPHandler() http.Handler {
	mux := http.NewServeMux()

	if m.config.Metrics.Enabled {
		mux.Handle(m.config.Metrics.Path, m.collector.Handler())
	}
	if m.config.Health.Enabled {
		mux.Handle(m.config.Health.LivenessPath, health.Handler(m.livenessChecker))
		mux.Handle(m.config.Health.ReadinessPath, health.Handler(m.readinessChecker))
		mux.Handle(m.config.Health.StartupPath, health.Handler(m.startupChecker))
	}

	return m.RequestMiddleware().Then(mux)
}

// Shutdown gracefully shuts down the observability manager.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.logger.Info(ctx, "shutting down observability manager")
	m.livenessChecker.MarkStopped()
	if m.tracingShutdown != nil {
		return m.tracingShutdown(ctx)
	}
	return nil
}
