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

package resilience

import (
	"context"
	"sync"
	"time"
)

// CircuitBreaker guards calls to one flaky dependency (the analyzer's LM
// endpoint) behind a closed/open/half-open state machine.
type CircuitBreaker struct {
	mu                  sync.RWMutex
	config              *CircuitBreakerConfig
	state               State
	failures            int
	halfOpenRequests    int
	lastStateChangeTime time.Time
}

// NewCircuitBreaker builds a breaker starting closed.
func NewCircuitBreaker(config *CircuitBreakerConfig) *CircuitBreaker {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}

	return &CircuitBreaker{
		config:              config,
		state:               StateClosed,
		lastStateChangeTime: time.Now(),
	}
}

// Execute runs fn if the breaker is closed (or probing half-open),
// fails fast with ErrCircuitBreakerOpen otherwise.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn Executor) error {
	if !cb.canExecute() {
		return ErrCircuitBreakerOpen
	}

	err := fn(ctx)
	if err != nil {
		cb.recordFailure()
	} else {
		cb.recordSuccess()
	}
	return err
}

func (cb *CircuitBreaker) canExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if time.Since(cb.lastStateChangeTime) < cb.config.Timeout {
			return false
		}
		cb.setState(StateHalfOpen)
		cb.halfOpenRequests = 0
		return true

	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.config.MaxHalfOpenRequests {
			return false
		}
		cb.halfOpenRequests++
		return true

	default:
		return false
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.setState(StateClosed)
		cb.failures = 0
		cb.halfOpenRequests = 0
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++

	switch {
	case cb.state == StateHalfOpen:
		cb.setState(StateOpen)
		cb.halfOpenRequests = 0
	case cb.state == StateClosed && cb.failures >= cb.config.MaxFailures:
		cb.setState(StateOpen)
	}
}

// setState must be called with mu held; the callback runs in its own
// goroutine so a slow logger can't hold the lock.
func (cb *CircuitBreaker) setState(newState State) {
	oldState := cb.state
	cb.state = newState
	cb.lastStateChangeTime = time.Now()

	if cb.config.OnStateChange != nil && oldState != newState {
		go cb.config.OnStateChange(oldState, newState)
	}
}

// State reports the current breaker state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Failures reports the current consecutive-failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}

// Reset forces the breaker back to closed, used in tests and by an
// operator clearing a known-resolved outage.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.state = StateClosed
	cb.failures = 0
	cb.halfOpenRequests = 0
	cb.lastStateChangeTime = time.Now()

	if cb.config.OnStateChange != nil && oldState != StateClosed {
		go cb.config.OnStateChange(oldState, StateClosed)
	}
}
