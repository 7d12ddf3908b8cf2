// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mia-platform/cardiostat/internal/config"
	"github.com/mia-platform/cardiostat/internal/transform"
)

const (
	inputFlagName  = "input"
	inputFlagShort = "i"
	inputFlagUsage = "Path to the input table, a comma separated file or an .xlsx workbook (default from " + config.EnvPrefix + "INPUT_PATH)"

	sheetFlagName  = "sheet"
	sheetFlagUsage = "Name of the workbook sheet to read, the first one if empty (default from " + config.EnvPrefix + "SHEET)"

	outputFlagName  = "output"
	outputFlagShort = "o"
	outputFlagUsage = "Path of the JSON file to write, or " + stdoutPath + " to print the result"

	columnFlagName  = "column"
	columnFlagShort = "c"
	columnFlagUsage = "Column to export. Can be specified multiple times."

	localOutputFlagName  = "local-output"
	localOutputFlagUsage = "If set, writes the output to stdout instead of the output file"
	defaultLocalOutput   = false

	groupByFlagName  = "group-by"
	groupByFlagUsage = "Categorical column used to partition the rows"

	categoryFlagName  = "category"
	categoryFlagUsage = "Category of the group column to report, in output order. Can be specified multiple times."

	valueFlagName  = "value"
	valueFlagUsage = "Numeric column to summarize"

	outcomeFlagName  = "outcome"
	outcomeFlagUsage = "Column whose values are counted"

	outcomeValueFlagName  = "outcome-value"
	outcomeValueFlagUsage = "Outcome to count, in output order. Can be specified multiple times."

	bandColumnFlagName  = "band-column"
	bandColumnFlagUsage = "Numeric column to band into labelled ranges, used in place of the outcome column"

	bandTargetFlagName  = "band-target"
	bandTargetFlagUsage = "Name of the column holding the band labels"

	bandForFlagName  = "band-for"
	bandForFlagUsage = "Column replaced by the band labels, " + config.BandForOutcome + " or " + config.BandForGroupBy

	bandMinFlagName  = "band-min"
	bandMinFlagUsage = "Lowest value of the first band level, smaller values are left out"

	bandFlagName  = "band"
	bandFlagUsage = "Band level written as Label:below, or Label for the last open level. Can be specified multiple times."

	jobFileFlagName  = "job-file"
	jobFileFlagShort = "f"
	jobFileFlagUsage = "Path to a file or directory containing job definitions. Can be specified multiple times."
)

// inputFlags collects the CLI options shared by every job command.
type inputFlags struct {
	input  string
	sheet  string
	output string
}

func (f *inputFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, inputFlagName, inputFlagShort, "", inputFlagUsage)
	cmd.Flags().StringVar(&f.sheet, sheetFlagName, "", sheetFlagUsage)
	cmd.Flags().StringVarP(&f.output, outputFlagName, outputFlagShort, "", outputFlagUsage)
}

// toJob fills the input and output fields of a job of kind.
func (f *inputFlags) toJob(kind string) *config.Job {
	return &config.Job{
		Name:   kind,
		Kind:   kind,
		Input:  f.input,
		Sheet:  f.sheet,
		Output: f.output,
	}
}

// exportFlags holds the flags for the "export" command.
type exportFlags struct {
	inputFlags

	columns     []string
	localOutput bool
}

func (f *exportFlags) addFlags(cmd *cobra.Command) {
	f.inputFlags.addFlags(cmd)
	cmd.Flags().StringArrayVarP(&f.columns, columnFlagName, columnFlagShort, nil, columnFlagUsage)
	cmd.Flags().BoolVar(&f.localOutput, localOutputFlagName, defaultLocalOutput, localOutputFlagUsage)
	cmd.MarkFlagsMutuallyExclusive(outputFlagName, localOutputFlagName)
}

func (f *exportFlags) toOptions(cmd *cobra.Command, defaults *config.Config) *jobOptions {
	job := f.toJob(config.JobKindExport)
	job.Columns = f.columns
	if f.localOutput {
		job.Output = stdoutPath
	}

	return newJobOptions(cmd, job, defaults)
}

// summaryFlags holds the flags for the "summary" command.
type summaryFlags struct {
	inputFlags

	groupBy    string
	categories []string
	value      string
}

func (f *summaryFlags) addFlags(cmd *cobra.Command) {
	f.inputFlags.addFlags(cmd)
	cmd.Flags().StringVar(&f.groupBy, groupByFlagName, defaultGroupBy, groupByFlagUsage)
	cmd.Flags().StringArrayVar(&f.categories, categoryFlagName, nil, categoryFlagUsage)
	cmd.Flags().StringVar(&f.value, valueFlagName, defaultValueColumn, valueFlagUsage)
}

func (f *summaryFlags) toOptions(cmd *cobra.Command, defaults *config.Config) *jobOptions {
	job := f.toJob(config.JobKindSummary)
	job.GroupBy = f.groupBy
	job.Categories = f.categories
	job.Value = f.value

	return newJobOptions(cmd, job, defaults)
}

// crosstabFlags holds the flags for the "crosstab" command.
type crosstabFlags struct {
	inputFlags

	groupBy    string
	categories []string
	outcome    string
	outcomes   []string
	bandColumn string
	bandTarget string
	bandFor    string
	bandMin    float64
	bands      []string
}

func (f *crosstabFlags) addFlags(cmd *cobra.Command) {
	f.inputFlags.addFlags(cmd)
	cmd.Flags().StringVar(&f.groupBy, groupByFlagName, "", groupByFlagUsage+" (default \""+defaultGroupBy+"\")")
	cmd.Flags().StringArrayVar(&f.categories, categoryFlagName, nil, categoryFlagUsage)
	cmd.Flags().StringVar(&f.outcome, outcomeFlagName, "", outcomeFlagUsage)
	cmd.Flags().StringArrayVar(&f.outcomes, outcomeValueFlagName, nil, outcomeValueFlagUsage)
	cmd.Flags().StringVar(&f.bandColumn, bandColumnFlagName, "", bandColumnFlagUsage)
	cmd.Flags().StringVar(&f.bandTarget, bandTargetFlagName, "", bandTargetFlagUsage)
	cmd.Flags().StringVar(&f.bandFor, bandForFlagName, "", bandForFlagUsage+" (default \""+config.BandForOutcome+"\")")
	cmd.Flags().Float64Var(&f.bandMin, bandMinFlagName, 0, bandMinFlagUsage)
	cmd.Flags().StringArrayVar(&f.bands, bandFlagName, nil, bandFlagUsage)
	cmd.MarkFlagsRequiredTogether(bandColumnFlagName, bandFlagName)
}

func (f *crosstabFlags) toOptions(cmd *cobra.Command, defaults *config.Config) (*jobOptions, error) {
	job := f.toJob(config.JobKindCrossTab)
	job.GroupBy = f.groupBy
	job.Categories = f.categories
	job.Outcome = f.outcome
	job.Outcomes = f.outcomes

	if f.bandColumn == "" {
		for _, name := range []string{bandTargetFlagName, bandForFlagName, bandMinFlagName} {
			if cmd.Flags().Changed(name) {
				return nil, fmt.Errorf("%w: flag --%s requires --%s", errInvalidArgs, name, bandColumnFlagName)
			}
		}
	}

	if f.bandColumn != "" {
		band := &config.BandConfig{
			Column: f.bandColumn,
			Target: f.bandTarget,
			For:    f.bandFor,
		}
		if cmd.Flags().Changed(bandMinFlagName) {
			minimum := f.bandMin
			band.Min = &minimum
		}

		for _, text := range f.bands {
			level, err := transform.ParseLevel(text)
			if err != nil {
				return nil, err
			}

			levelConfig := config.LevelConfig{Label: level.Label}
			if !level.IsUnbounded() {
				below := level.Below
				levelConfig.Below = &below
			}
			band.Levels = append(band.Levels, levelConfig)
		}

		job.Band = band
	}

	return newJobOptions(cmd, job, defaults), nil
}

// runFlags holds the flags for the "run" command.
type runFlags struct {
	jobPaths []string
}

func (f *runFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(
		&f.jobPaths,
		jobFileFlagName,
		jobFileFlagShort,
		nil,
		jobFileFlagUsage)
}

// toOptions collects the job files and loads every job they contain.
func (f *runFlags) toOptions(cmd *cobra.Command, defaults *config.Config) (*runOptions, error) {
	jobPaths, err := collectPaths(f.jobPaths)
	if err != nil {
		return nil, err
	}

	jobs, err := loadJobs(jobPaths)
	if err != nil {
		return nil, err
	}

	options := &runOptions{jobs: make([]*jobOptions, 0, len(jobs))}
	for _, job := range jobs {
		options.jobs = append(options.jobs, newJobOptions(cmd, job, defaults))
	}

	return options, nil
}
