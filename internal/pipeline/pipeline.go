// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"time"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/destination"
	"github.com/mia-platform/cardiostat/internal/logger"
	"github.com/mia-platform/cardiostat/internal/source"
	"github.com/mia-platform/cardiostat/internal/table"
	"github.com/mia-platform/cardiostat/internal/transform"
)

const (
	loggerName = "cardiostat:pipeline"
)

type Pipeline struct {
	source      source.Loader
	destination any
}

// New returns a Pipeline reading from source and writing to destination. The
// capabilities of destination are checked when a run starts.
func New(source source.Loader, destination any) *Pipeline {
	return &Pipeline{
		source:      source,
		destination: destination,
	}
}

// Export loads the source, keeps only columns and the rows where all of them
// hold a value, and writes the result to the destination.
func (p *Pipeline) Export(ctx context.Context, columns []string) (*table.Table, error) {
	rowsWriter, ok := p.destination.(destination.RowsWriter)
	if !ok {
		return nil, &unsupportedDestinationError{
			Message: "destination does not support writing rows",
		}
	}

	ctx, log := p.startRun(ctx, "export")
	start := time.Now()

	input, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	output, err := transform.SelectColumns(input, columns)
	if err != nil {
		return nil, stageError(ctx, StageTransform, err)
	}
	log.Debug("columns selected", "columns", columns, "rows", output.Len(), "droppedRows", input.Len()-output.Len())

	if err := rowsWriter.WriteRows(ctx, output); err != nil {
		return nil, stageError(ctx, StageWrite, err)
	}

	log.Info("export completed", "rows", output.Len(), "duration", time.Since(start).String())
	return output, nil
}

// Summarize loads the source, computes the statistics described by spec and
// writes the report to the destination.
func (p *Pipeline) Summarize(ctx context.Context, spec aggregate.GroupSpec) (*aggregate.Report, error) {
	summaryWriter, ok := p.destination.(destination.SummaryWriter)
	if !ok {
		return nil, &unsupportedDestinationError{
			Message: "destination does not support writing summaries",
		}
	}

	ctx, log := p.startRun(ctx, "summary")
	start := time.Now()

	input, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	report, err := aggregate.GroupStatistics(input, spec)
	if err != nil {
		return nil, stageError(ctx, StageAggregate, err)
	}

	for _, group := range report.Groups {
		if !group.HasData() {
			log.Warn("no data for category", "column", spec.GroupBy, "category", group.Category)
		}
	}

	if err := summaryWriter.WriteSummary(ctx, report); err != nil {
		return nil, stageError(ctx, StageWrite, err)
	}

	log.Info("summary completed", "categories", len(report.Groups), "duration", time.Since(start).String())
	return report, nil
}

// BandRole selects the cross tabulation column derived by a band.
type BandRole string

const (
	// BandOutcome derives the outcome column.
	BandOutcome BandRole = "outcome"
	// BandGroupBy derives the group column.
	BandGroupBy BandRole = "groupBy"
)

// Banding is a band applied before counting, together with the column it derives.
type Banding struct {
	transform.BandSpec
	Role BandRole
}

// CrossTabulate loads the source, counts the outcomes described by spec and
// writes the result to the destination. Every banding derives its target
// column first and replaces the group or outcome column of spec according to
// its role; if spec lists no categories or outcomes for that column the band
// labels are used in level order.
func (p *Pipeline) CrossTabulate(ctx context.Context, spec aggregate.CrossTabSpec, bandings ...Banding) (*aggregate.CrossTab, error) {
	crossTabWriter, ok := p.destination.(destination.CrossTabWriter)
	if !ok {
		return nil, &unsupportedDestinationError{
			Message: "destination does not support writing cross tabulations",
		}
	}

	ctx, log := p.startRun(ctx, "crosstab")
	start := time.Now()

	input, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, banding := range bandings {
		input, err = transform.Band(input, banding.BandSpec)
		if err != nil {
			return nil, stageError(ctx, StageTransform, err)
		}

		switch banding.Role {
		case BandGroupBy:
			spec.GroupBy = banding.Target
			if len(spec.Categories) == 0 {
				spec.Categories = levelLabels(banding.Levels)
			}
		default:
			spec.Outcome = banding.Target
			if len(spec.Outcomes) == 0 {
				spec.Outcomes = levelLabels(banding.Levels)
			}
		}
		log.Debug("column banded", "column", banding.Column, "target", banding.Target, "role", banding.Role, "levels", len(banding.Levels))
	}

	crossTab, err := aggregate.CrossTabulate(input, spec)
	if err != nil {
		return nil, stageError(ctx, StageAggregate, err)
	}

	if err := crossTabWriter.WriteCrossTab(ctx, crossTab); err != nil {
		return nil, stageError(ctx, StageWrite, err)
	}

	log.Info("cross tabulation completed", "categories", len(crossTab.Rows), "duration", time.Since(start).String())
	return crossTab, nil
}

func levelLabels(levels []transform.Level) []string {
	labels := make([]string, 0, len(levels))
	for _, level := range levels {
		labels = append(labels, level.Label)
	}
	return labels
}

func (p *Pipeline) startRun(ctx context.Context, name string) (context.Context, logger.Logger) {
	ctx, log := logger.ForRun(ctx, loggerName, logger.NewRunID())

	args := []any{"pipeline", name}
	if describer, ok := p.source.(source.Describer); ok {
		args = append(args, "source", describer.Location())
	}
	log.Debug("starting data pipeline", args...)

	return ctx, log
}

func (p *Pipeline) load(ctx context.Context) (*table.Table, error) {
	input, err := p.source.Load(ctx)
	if err != nil {
		return nil, stageError(ctx, StageLoad, err)
	}

	logger.FromContext(ctx).Debug("source loaded", "rows", input.Len(), "columns", len(input.Columns()))
	return input, nil
}
