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

	"golang.org/x/sync/singleflight"

	"github.com/adityak74/open-context/selfmodel"
)

// rebuildGroup collapses concurrent cache-miss rebuilds (e.g. a burst of
// REST awareness requests right after a tick invalidates the cache) into
// one selfmodel.Build call.
var rebuildGroup singleflight.Group

// SelfModel returns the current self-model snapshot, serving it from the
// deep-analysis cache when fresh and rebuilding (then caching) it
// otherwise. Tick invalidates the cache on completion, so callers here
// never see a snapshot older than the last improver run plus the TTL.
func (rt *Runtime) SelfModel(ctx context.Context) (selfmodel.SelfModel, error) {
	if rt.Cache != nil {
		if cached, ok := rt.Cache.Get(ctx); ok {
			if model, ok := cached.(selfmodel.SelfModel); ok {
				return model, nil
			}
		}
	}

	v, err, _ := rebuildGroup.Do(rt.Config.Store.StorePath, func() (interface{}, error) {
		var detector selfmodel.ContradictionDetector
		if rt.Analyzer != nil {
			detector = rt.Analyzer
		}
		model, err := selfmodel.Build(ctx, rt.Store, rt.Catalog, rt.Observer, detector)
		if err != nil {
			return selfmodel.SelfModel{}, err
		}
		if rt.Cache != nil {
			_ = rt.Cache.Set(ctx, model)
		}
		return model, nil
	})
	if err != nil {
		return selfmodel.SelfModel{}, err
	}
	return v.(selfmodel.SelfModel), nil
}
