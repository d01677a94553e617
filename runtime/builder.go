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

package runtime

import (
	"context"

	"github.com/adityak74/open-context/analyzer"
	"github.com/adityak74/open-context/cache"
	"github.com/adityak74/open-context/config"
	"github.com/adityak74/open-context/control"
	"github.com/adityak74/open-context/improver"
	"github.com/adityak74/open-context/observability"
	"github.com/adityak74/open-context/observability/health"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/observer"
	"github.com/adityak74/open-context/pkg/errors"
	"github.com/adityak74/open-context/schema"
	"github.com/adityak74/open-context/store"
)

// Runtime is one fully wired instance of the context engine: the pieces
// serve, mcp, and tick all share.
type Runtime struct {
	Config        *config.Config
	Logger        logging.Logger
	Catalog       *schema.Catalog
	Observer      *observer.Observer
	Store         *store.Store
	Analyzer      *analyzer.Analyzer
	Control       *control.Control
	Improver      *improver.Improver
	Cache         *cache.SelfModelCache
	Observability *observability.Manager
}

// Builder provides a fluent API for assembling a Runtime from
// configuration, with optional overrides for components a caller (tests,
// mainly) wants to supply directly rather than have constructed from
// config.
type Builder struct {
	cfg     *config.Config
	logger  logging.Logger
	catalog *schema.Catalog
	catSet  bool
	an      *analyzer.Analyzer

	validated bool
	errors    []error
}

// New starts a Builder from cfg. A nil cfg is replaced with
// config.DefaultConfig().
func New(cfg *config.Config) *Builder {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Builder{cfg: cfg}
}

// WithLogger overrides the logger the runtime uses, instead of one
// constructed from Config.Logging.
func (b *Builder) WithLogger(l logging.Logger) *Builder {
	b.logger = l
	return b
}

// WithCatalog overrides the schema catalog, instead of loading one from
// Config.Store.SchemaPath. Pass nil explicitly to force an empty
// catalog regardless of what's on disk.
func (b *Builder) WithCatalog(cat *schema.Catalog) *Builder {
	b.catalog = cat
	b.catSet = true
	return b
}

// WithAnalyzer overrides the analyzer, instead of one constructed from
// Config.Analyzer.
func (b *Builder) WithAnalyzer(an *analyzer.Analyzer) *Builder {
	b.an = an
	return b
}

// Build validates the configuration and assembles a Runtime.
func (b *Builder) Build() (*Runtime, error) {
	b.applyDefaults()

	if err := b.validate(); err != nil {
		return nil, err
	}

	return b.buildRuntime()
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Runtime {
	rt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rt
}

func (b *Builder) applyDefaults() {
	if b.logger == nil {
		b.logger = logging.NewZapLogger(logging.Level(b.cfg.Logging.Level))
	}
}

func (b *Builder) validate() error {
	if b.validated {
		return nil
	}
	b.validated = true

	v := &validator{builder: b}
	v.validateConfig()
	v.validateSchemaPath()

	if len(v.errors) > 0 {
		b.errors = v.errors
		return errors.ErrInvalidInput.WithMessage("runtime validation failed").
			WithDetail("errors", errorStrings(v.errors))
	}
	return nil
}

func (b *Builder) buildRuntime() (*Runtime, error) {
	cat := b.catalog
	if !b.catSet {
		loaded, err := schema.Load(b.cfg.Store.SchemaPath)
		if err != nil {
			return nil, errors.ErrInvalidInput.
				WithMessage("failed to load schema catalog").
				WithDetail("path", b.cfg.Store.SchemaPath).
				WithDetail("error", err.Error())
		}
		cat = loaded
	}

	obs := observer.New(b.cfg.Store.AwarenessPath)
	st := store.New(b.cfg.Store.StorePath, obs)

	obsMgr, err := observability.NewManager(&observability.ManagerConfig{
		InstanceID: "contextd",
		Config:     b.observabilityConfig(),
	})
	if err != nil {
		return nil, errors.ErrInvalidInput.
			WithMessage("failed to build observability manager").
			WithDetail("error", err.Error())
	}

	an := b.an
	if an == nil {
		an = analyzer.New(analyzer.Config{
			Enabled:  b.cfg.Analyzer.Enabled,
			Endpoint: b.cfg.Analyzer.Endpoint,
			Model:    b.cfg.Analyzer.Model,
			Timeout:  b.cfg.Analyzer.Timeout,
		}, b.logger)
	}
	an.SetMetrics(obsMgr.AnalyzerMetrics())
	st.SetMetrics(obsMgr.RuntimeMetrics())

	ctrl := control.New(obs, control.AutoApprovePolicy{
		Low:    b.cfg.Control.AutoApproveLow,
		Medium: b.cfg.Control.AutoApproveMed,
		High:   b.cfg.Control.AutoApproveHi,
	}, b.cfg.Control.PendingTTL)

	memCache := cache.NewMemoryCache(cache.DefaultCacheConfig())
	memCache.SetMetrics(obsMgr.RuntimeMetrics())
	smc := cache.NewSelfModelCache(memCache, b.cfg.Cache.SelfModelTTL)

	imp := &improver.Improver{
		Store:      st,
		Catalog:    cat,
		Observer:   obs,
		Analyzer:   an,
		Control:    ctrl,
		WallBudget: b.cfg.Tick.WallCap,
		Metrics:    obsMgr.RuntimeMetrics(),
		Cache:      smc,
		Logger:     b.logger,
	}

	obsMgr.AddReadinessCheck(health.NewFuncChecker("store", func(ctx context.Context) error {
		_, err := st.AllActive()
		return err
	}))
	obsMgr.AddReadinessCheck(health.NewFuncChecker("control_queue", func(ctx context.Context) error {
		_, err := ctrl.Pending()
		return err
	}))

	obsMgr.MarkReady()

	return &Runtime{
		Config:        b.cfg,
		Logger:        b.logger,
		Catalog:       cat,
		Observer:      obs,
		Store:         st,
		Analyzer:      an,
		Control:       ctrl,
		Improver:      imp,
		Cache:         smc,
		Observability: obsMgr,
	}, nil
}

// observabilityConfig derives the metrics/logging/health configuration
// the observability manager is built from, reusing contextd's own
// configuration fields instead of duplicating them.
func (b *Builder) observabilityConfig() *observability.Config {
	cfg := observability.DefaultConfig()
	cfg.Metrics.Enabled = b.cfg.Metrics.Enabled
	cfg.Metrics.Path = b.cfg.Metrics.Path
	cfg.Logging.Level = b.cfg.Logging.Level
	cfg.Logging.Format = b.cfg.Logging.Format
	cfg.Health.Port = b.cfg.Server.Port
	return cfg
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
