// Copyright the ivfkmeans authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package kmeanslog is a thin zap-backed logger for the training core's
// iteration and admission diagnostics: Debugf/Infof/Warnf methods on a
// Logger backed by a structured logger, no-op by default so the
// library stays quiet unless a caller opts in.
package kmeanslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.SugaredLogger. The zero value is not usable;
// construct with NewNop or New.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewNop returns a Logger that discards everything. A nil *Logger
// behaves the same way, since every method returns early on a nil
// receiver: training never requires a logger to make progress.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// New wraps an existing zap core, letting callers route training
// diagnostics into their own logging pipeline.
func New(core zapcore.Core) *Logger {
	return &Logger{sugar: zap.New(core).Sugar()}
}

// Debugf logs per-iteration bookkeeping (changes, elapsed time). Only
// visible if the wrapped core is enabled for debug level.
func (l *Logger) Debugf(template string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugf(template, args...)
}

// Infof logs coarse-grained lifecycle events (admission, driver choice).
func (l *Logger) Infof(template string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Infof(template, args...)
}

// Warnf logs anomalies worth a caller's attention, such as a memory
// estimate that exceeds the configured budget.
func (l *Logger) Warnf(template string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnf(template, args...)
}
