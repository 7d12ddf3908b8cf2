// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/mia-platform/cardiostat/internal/logger"
)

// Stage names the step of a pipeline run.
type Stage string

const (
	StageLoad      Stage = "load"
	StageTransform Stage = "transform"
	StageAggregate Stage = "aggregate"
	StageWrite     Stage = "write"
)

// StageError reports the stage where a pipeline run failed.
type StageError struct {
	Stage Stage
	// RunID matches the runId attached to the log lines of the failed run.
	RunID string

	err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.err)
}

func (e *StageError) Unwrap() error {
	return e.err
}

func stageError(ctx context.Context, stage Stage, err error) error {
	return &StageError{
		Stage: stage,
		RunID: logger.RunIDFromContext(ctx),
		err:   err,
	}
}

// unsupportedDestinationError signals that the configured destination does not implement the required capability.
type unsupportedDestinationError struct {
	Message string
}

func (e *unsupportedDestinationError) Error() string {
	return e.Message
}

func (e *unsupportedDestinationError) Unwrap() error {
	return errors.ErrUnsupported
}
