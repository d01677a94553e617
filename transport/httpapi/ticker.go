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

package httpapi

import (
	"context"
	"time"

	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/runtime"
)

// ticker drives the improver on a fixed interval for the lifetime of the
// REST server, broadcasting one event per completed tick.
type ticker struct {
	rt       *runtime.Runtime
	hub      *eventHub
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newTicker(rt *runtime.Runtime, hub *eventHub, interval time.Duration) *ticker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ticker{rt: rt, hub: hub, interval: interval, stopCh: make(chan struct{}), doneCh: make(chan struct{})}
}

func (t *ticker) start() {
	go t.run()
}

func (t *ticker) run() {
	defer close(t.doneCh)
	timer := time.NewTicker(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-timer.C:
			t.runOnce()
		}
	}
}

func (t *ticker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), t.interval)
	defer cancel()

	result, err := t.rt.Improver.Tick(ctx)
	if err != nil {
		t.rt.Logger.Error(ctx, "background tick failed", logging.Error(err))
		return
	}
	t.hub.broadcast(event{Type: "tick-completed", Payload: result})
}

// stop signals the ticker loop to exit and waits for it to drain,
// giving any in-flight tick up to 5 seconds to finish.
func (t *ticker) stop() {
	close(t.stopCh)
	select {
	case <-t.doneCh:
	case <-time.After(5 * time.Second):
	}
}
