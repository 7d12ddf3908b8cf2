// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/cardiostat/internal/config"
)

const (
	exportCmdUsage = "export"
	exportCmdShort = "export the complete rows of a set of columns"
	exportCmdLong  = `Export the complete rows of a set of columns.
	The input table is loaded from a comma separated file or from an .xlsx
	workbook, only the requested columns are kept and every row with a missing
	value in one of them is dropped. The remaining rows are written as a JSON
	array of objects, one per row, with the keys in column order.`

	exportCmdExample = `# Export the family history columns to family_heart_disease.json
	cardiostat export

	# Export two custom columns and print the result instead of writing it
	cardiostat export -i survey.xlsx -c Gender -c Smoking --local-output`

	summaryCmdUsage = "summary"
	summaryCmdShort = "print per category statistics of a numeric column"
	summaryCmdLong  = `Print per category statistics of a numeric column.
	The rows are partitioned by the group column and, for every requested
	category in the given order, the minimum, maximum, mean and median of the
	value column are computed. Missing values are skipped, while a value that
	is not a number stops the command. A category without values is reported
	as "no data".`

	summaryCmdExample = `# Print the cholesterol statistics of male and female respondents
	cardiostat summary

	# Store the blood pressure statistics per smoking habit as JSON
	cardiostat summary --group-by Smoking --category Yes --category No --value "Blood Pressure" -o smoking.json`

	crosstabCmdUsage = "crosstab"
	crosstabCmdShort = "count the outcomes of every category"
	crosstabCmdLong  = `Count the outcomes of every category.
	For every requested category of the group column the rows holding each
	requested outcome are counted, and the counts are reported together with
	their share of the category total.

	Instead of an existing outcome column a numeric column can be banded into
	labelled ranges with the --band-column and --band flags: every band is
	written as "Label:below" and the last one can omit the bound to catch every
	remaining value.`

	crosstabCmdExample = `# Count heart disease cases per gender
	cardiostat crosstab

	# Count cholesterol status per gender
	cardiostat crosstab --band-column "Cholesterol Level" --band Healthy:200 --band "At risk:240" --band Dangerous`

	runCmdUsage = "run"
	runCmdShort = "execute the jobs described in one or more files"
	runCmdLong  = `Execute the jobs described in one or more files.
	Every file can contain multiple YAML documents, or a JSON one, each
	describing an export, summary or crosstab job. Jobs are executed in file
	order and the command stops at the first failure. Directories are read
	without descending into subdirectories.`

	runCmdExample = `# Execute all the jobs found in the jobs directory
	cardiostat run -f jobs/`
)

// ExportCmd returns the Cobra command that exports the complete rows of a set of columns.
func ExportCmd(defaults *config.Config) *cobra.Command {
	flags := &exportFlags{}
	cmd := &cobra.Command{
		Use:     exportCmdUsage,
		Short:   heredoc.Doc(exportCmdShort),
		Long:    heredoc.Doc(exportCmdLong),
		Example: heredoc.Doc(exportCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd, flags.toOptions(cmd, defaults))
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// SummaryCmd returns the Cobra command that prints per category statistics.
func SummaryCmd(defaults *config.Config) *cobra.Command {
	flags := &summaryFlags{}
	cmd := &cobra.Command{
		Use:     summaryCmdUsage,
		Short:   heredoc.Doc(summaryCmdShort),
		Long:    heredoc.Doc(summaryCmdLong),
		Example: heredoc.Doc(summaryCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd, flags.toOptions(cmd, defaults))
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// CrosstabCmd returns the Cobra command that counts the outcomes of every category.
func CrosstabCmd(defaults *config.Config) *cobra.Command {
	flags := &crosstabFlags{}
	cmd := &cobra.Command{
		Use:     crosstabCmdUsage,
		Short:   heredoc.Doc(crosstabCmdShort),
		Long:    heredoc.Doc(crosstabCmdLong),
		Example: heredoc.Doc(crosstabCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd, defaults)
			if err != nil {
				return handleError(cmd, err)
			}

			return runJob(cmd, opts)
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// RunCmd returns the Cobra command that executes the jobs described in files.
func RunCmd(defaults *config.Config) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:     runCmdUsage,
		Short:   heredoc.Doc(runCmdShort),
		Long:    heredoc.Doc(runCmdLong),
		Example: heredoc.Doc(runCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd, defaults)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// runJob validates and executes the options of a single job command.
func runJob(cmd *cobra.Command, opts *jobOptions) error {
	if err := opts.validate(); err != nil {
		return handleError(cmd, err)
	}

	if err := opts.execute(cmd.Context()); err != nil {
		return handleError(cmd, err)
	}

	return nil
}
