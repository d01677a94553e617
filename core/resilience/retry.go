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
	"fmt"
	"math"
	"time"
)

// Retry calls fn up to config.MaxAttempts times, backing off between
// attempts per config.Backoff, stopping early if ShouldRetry rejects an
// error or the context is done.
func Retry(ctx context.Context, config *RetryConfig, fn Executor) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !config.ShouldRetry(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}
		if attempt == config.MaxAttempts {
			break
		}
		if config.OnRetry != nil {
			config.OnRetry(attempt, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.Backoff(attempt)):
		}
	}

	return fmt.Errorf("%w: last error: %v", ErrMaxAttemptsExceeded, lastErr)
}

// ConstantBackoff always waits the same delay.
func ConstantBackoff(delay time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		return delay
	}
}

// LinearBackoff waits base*attempt, capped at max.
func LinearBackoff(base time.Duration, max time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		delay := base * time.Duration(attempt)
		if delay > max {
			return max
		}
		return delay
	}
}

// ExponentialBackoff waits base*multiplier^(attempt-1), capped at max.
// The analyzer's retry config around LM calls uses this strategy.
func ExponentialBackoff(base time.Duration, multiplier float64, max time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		delay := time.Duration(float64(base) * math.Pow(multiplier, float64(attempt-1)))
		if delay > max {
			return max
		}
		return delay
	}
}

// DefaultShouldRetry retries any non-nil error.
func DefaultShouldRetry(err error) bool {
	return err != nil
}

// NeverRetry rejects every error, forcing Retry to return after one attempt.
func NeverRetry(err error) bool {
	return false
}

// RetryOnSpecificErrors only retries errors in the given set, compared by
// identity (not errors.Is), so it's meant for sentinel errors.
func RetryOnSpecificErrors(errs ...error) ShouldRetry {
	set := make(map[error]bool, len(errs))
	for _, err := range errs {
		set[err] = true
	}
	return func(err error) bool {
		return set[err]
	}
}
