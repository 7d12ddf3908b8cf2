// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/config"
	"github.com/mia-platform/cardiostat/internal/destination/jsonfile"
	"github.com/mia-platform/cardiostat/internal/destination/writer"
	"github.com/mia-platform/cardiostat/internal/logger"
	"github.com/mia-platform/cardiostat/internal/pipeline"
	"github.com/mia-platform/cardiostat/internal/source"
	"github.com/mia-platform/cardiostat/internal/transform"
)

const (
	// stdoutPath selects the console destination in place of a file.
	stdoutPath = "-"

	defaultGroupBy      = "Gender"
	defaultValueColumn  = "Cholesterol Level"
	defaultOutcome      = "Heart Disease Status"
	defaultBandSuffix   = " Band"
	exportSavedTemplate = "Data saved to: %s\n"

	loggerName = "cardiostat:cmd"
)

var (
	defaultExportColumns = []string{"Family Heart Disease", "Heart Disease Status"}
	defaultCategories    = []string{"Male", "Female"}
	defaultOutcomes      = []string{"Yes", "No"}
)

// jobOptions holds a single job with every default applied.
type jobOptions struct {
	job          *config.Job
	out          io.Writer
	sourceGetter func(path, sheet string) source.Loader
}

// newJobOptions applies the defaults to a copy of job.
func newJobOptions(cmd *cobra.Command, job *config.Job, defaults *config.Config) *jobOptions {
	return &jobOptions{
		job:          withDefaults(job, defaults),
		out:          cmd.OutOrStdout(),
		sourceGetter: sourceGetter,
	}
}

// withDefaults returns a copy of job whose empty fields are replaced by the
// environment configuration or by the built-in values of its kind.
func withDefaults(job *config.Job, defaults *config.Config) *config.Job {
	filled := *job
	if filled.Input == "" {
		filled.Input = defaults.InputPath
	}
	if filled.Sheet == "" {
		filled.Sheet = defaults.Sheet
	}

	switch filled.Kind {
	case config.JobKindExport:
		if len(filled.Columns) == 0 {
			filled.Columns = defaultExportColumns
		}
		if filled.Output == "" {
			filled.Output = defaults.ExportPath
		}
	case config.JobKindSummary:
		if filled.GroupBy == "" {
			filled.GroupBy = defaultGroupBy
		}
		if len(filled.Categories) == 0 {
			filled.Categories = defaultCategories
		}
		if filled.Value == "" {
			filled.Value = defaultValueColumn
		}
	case config.JobKindCrossTab:
		if filled.Band != nil {
			band := *filled.Band
			if band.Target == "" {
				band.Target = band.Column + defaultBandSuffix
			}
			filled.Band = &band
		}

		if !filled.Band.DerivesGroupBy() {
			if filled.GroupBy == "" {
				filled.GroupBy = defaultGroupBy
			}
			if len(filled.Categories) == 0 {
				filled.Categories = defaultCategories
			}
		}

		if filled.Band == nil || filled.Band.DerivesGroupBy() {
			if filled.Outcome == "" {
				filled.Outcome = defaultOutcome
			}
			if len(filled.Outcomes) == 0 {
				filled.Outcomes = defaultOutcomes
			}
		}
	}

	if filled.Output == "" {
		filled.Output = stdoutPath
	}

	return &filled
}

// validate checks the job values that can be verified before loading the input.
func (o *jobOptions) validate() error {
	job := o.job
	if problems := job.Validate(); len(problems) > 0 {
		return fmt.Errorf("%w: job %q: %s", errInvalidJob, job.Name, strings.Join(problems, "; "))
	}

	if job.Sheet != "" && !isWorkbook(job.Input) {
		return fmt.Errorf("%w: job %q: sheet %q requires an .xlsx input, got %q", errInvalidJob, job.Name, job.Sheet, job.Input)
	}

	if job.Kind == config.JobKindExport && job.Output == job.Input {
		return fmt.Errorf("%w: job %q: output would overwrite the input %q", errInvalidJob, job.Name, job.Input)
	}

	if job.Band != nil {
		if _, err := bandSpec(job.Band); err != nil {
			return fmt.Errorf("%w: job %q: %w", errInvalidJob, job.Name, err)
		}
	}

	return nil
}

// execute runs the pipeline of the job.
func (o *jobOptions) execute(ctx context.Context) error {
	job := o.job
	log := logger.FromContext(ctx).WithName(loggerName)
	log.Debug("executing job", "job", job.Name, "kind", job.Kind, "input", job.Input, "output", job.Output)

	var target any = writer.NewDestination(o.out)
	if job.Output != stdoutPath {
		target = jsonfile.NewDestination(job.Output)
	}
	dataPipeline := pipeline.New(o.sourceGetter(job.Input, job.Sheet), target)

	switch job.Kind {
	case config.JobKindExport:
		if _, err := dataPipeline.Export(ctx, job.Columns); err != nil {
			return err
		}
		if job.Output != stdoutPath {
			fmt.Fprintf(o.out, exportSavedTemplate, job.Output)
		}
	case config.JobKindSummary:
		_, err := dataPipeline.Summarize(ctx, aggregate.GroupSpec{
			GroupBy:    job.GroupBy,
			Categories: job.Categories,
			Value:      job.Value,
		})
		if err != nil {
			return err
		}
	case config.JobKindCrossTab:
		bands, err := bandings(job.Band)
		if err != nil {
			return err
		}

		_, err = dataPipeline.CrossTabulate(ctx, aggregate.CrossTabSpec{
			GroupBy:    job.GroupBy,
			Categories: job.Categories,
			Outcome:    job.Outcome,
			Outcomes:   job.Outcomes,
		}, bands...)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: job %q: unknown kind %q", errInvalidJob, job.Name, job.Kind)
	}

	return nil
}

// runOptions holds the jobs loaded by the "run" command.
type runOptions struct {
	jobs []*jobOptions

	lock sync.Mutex
}

// validate checks every job before any of them is executed.
func (o *runOptions) validate() error {
	if len(o.jobs) == 0 {
		return errNoJobs
	}

	for _, job := range o.jobs {
		if err := job.validate(); err != nil {
			return err
		}
	}

	return nil
}

// execute runs the jobs in order, stopping at the first failure.
func (o *runOptions) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	log := logger.FromContext(ctx).WithName(loggerName)
	for index, job := range o.jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := job.execute(ctx); err != nil {
			var stageErr *pipeline.StageError
			if errors.As(err, &stageErr) {
				log.Error("job failed", "job", job.job.Name, "stage", stageErr.Stage, "runId", stageErr.RunID)
			}
			return fmt.Errorf("job %q: %w", job.job.Name, err)
		}
		log.Info("job completed", "job", job.job.Name, "position", index+1, "total", len(o.jobs))
	}

	return nil
}

// bandSpec converts a band configuration, returning nil when band is nil.
func bandSpec(band *config.BandConfig) (*transform.BandSpec, error) {
	if band == nil {
		return nil, nil
	}

	spec := &transform.BandSpec{
		Column: band.Column,
		Target: band.Target,
		Levels: make([]transform.Level, 0, len(band.Levels)),
		Min:    band.Min,
	}
	for _, level := range band.Levels {
		if level.Below == nil {
			spec.Levels = append(spec.Levels, transform.Unbounded(level.Label))
			continue
		}
		spec.Levels = append(spec.Levels, transform.Level{Label: level.Label, Below: *level.Below})
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return spec, nil
}

// bandings returns the pipeline bandings of a job band, none when band is nil.
func bandings(band *config.BandConfig) ([]pipeline.Banding, error) {
	spec, err := bandSpec(band)
	if err != nil || spec == nil {
		return nil, err
	}

	role := pipeline.BandOutcome
	if band.DerivesGroupBy() {
		role = pipeline.BandGroupBy
	}

	return []pipeline.Banding{{BandSpec: *spec, Role: role}}, nil
}

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), workbookExtension)
}
