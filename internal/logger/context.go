// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const runIDKey = "runId"

type contextKey int

const (
	loggerKey contextKey = iota
	runKey
)

// WithContext returns a copy of ctx carrying log.
func WithContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger carried by ctx, or a logger discarding
// every message when ctx is nil or carries none.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return nullLogger
	}

	if log, ok := ctx.Value(loggerKey).(Logger); ok {
		return log
	}
	return nullLogger
}

// NewRunID returns a random identifier for a single pipeline execution.
// e.g. 16c9c1f2-c001-40d3-bbfe-48857367e7b5
func NewRunID() string {
	runID, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating run id: %w", err))
	}

	return runID.String()
}

// ForRun returns a context carrying runID and a logger that tags every line
// with it, together with that logger.
func ForRun(ctx context.Context, name, runID string) (context.Context, Logger) {
	log := FromContext(ctx).WithName(name).With(runIDKey, runID)
	ctx = context.WithValue(ctx, runKey, runID)
	return WithContext(ctx, log), log
}

// RunIDFromContext returns the run id stored by ForRun, or an empty string.
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	runID, _ := ctx.Value(runKey).(string)
	return runID
}
