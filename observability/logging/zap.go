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

package logging

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger on top of go.uber.org/zap.
type ZapLogger struct {
	mu           sync.RWMutex
	base         *zap.Logger
	atomicLevel  zap.AtomicLevel
	samplingRate float64
}

// NewZapLogger creates a production-configured zap logger at the given level.
func NewZapLogger(level Level) *ZapLogger {
	atomicLevel := zap.NewAtomicLevelAt(toZapLevel(level))

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}

	return &ZapLogger{
		base:        base,
		atomicLevel: atomicLevel,
	}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

// Debug logs a debug message, subject to the configured sampling rate.
func (l *ZapLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.mu.RLock()
	rate := l.samplingRate
	l.mu.RUnlock()

	if rate < 1.0 && rand.Float64() > rate {
		return
	}
	l.base.Debug(msg, toZapFields(append(extractContextFields(ctx), fields...))...)
}

// Info logs an informational message.
func (l *ZapLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.base.Info(msg, toZapFields(append(extractContextFields(ctx), fields...))...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.base.Warn(msg, toZapFields(append(extractContextFields(ctx), fields...))...)
}

// Error logs an error message.
func (l *ZapLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.base.Error(msg, toZapFields(append(extractContextFields(ctx), fields...))...)
}

// Fatal logs a fatal message and terminates the process.
func (l *ZapLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	l.base.Fatal(msg, toZapFields(append(extractContextFields(ctx), fields...))...)
}

// With returns a child logger carrying the given fields on every call.
func (l *ZapLogger) With(fields ...Field) Logger {
	l.mu.RLock()
	rate := l.samplingRate
	l.mu.RUnlock()

	return &ZapLogger{
		base:         l.base.With(toZapFields(fields)...),
		atomicLevel:  l.atomicLevel,
		samplingRate: rate,
	}
}

// SetLevel adjusts the minimum level at which entries are emitted.
func (l *ZapLogger) SetLevel(level Level) {
	l.atomicLevel.SetLevel(toZapLevel(level))
}

// SetSamplingRate sets the fraction (0.0-1.0) of debug logs actually emitted.
func (l *ZapLogger) SetSamplingRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	l.mu.Lock()
	l.samplingRate = rate
	l.mu.Unlock()
}

// Sync flushes any buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}
