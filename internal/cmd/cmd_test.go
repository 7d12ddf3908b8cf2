// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/cardiostat/internal/config"
	"github.com/mia-platform/cardiostat/internal/pipeline"
	"github.com/mia-platform/cardiostat/internal/table"
	"github.com/mia-platform/cardiostat/internal/transform"
)

var surveyPath = filepath.Join("testdata", "survey.csv")

func testDefaults() *config.Config {
	return &config.Config{
		LogLevel:   "info",
		InputPath:  surveyPath,
		ExportPath: "family_heart_disease.json",
	}
}

func TestCmds(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		cmd                  func(*config.Config) *cobra.Command
		args                 []string
		expectedOutput       string
		expectedError        error
		expectedErrorMessage string
		expectedUsage        bool
	}{
		"export to stdout": {
			cmd:  ExportCmd,
			args: []string{"--" + localOutputFlagName},
			expectedOutput: `[
    {
        "Family Heart Disease": "Yes",
        "Heart Disease Status": "Yes"
    },
    {
        "Family Heart Disease": "No",
        "Heart Disease Status": "No"
    },
    {
        "Family Heart Disease": "No",
        "Heart Disease Status": "Yes"
    }
]
`,
		},
		"export custom columns to stdout": {
			cmd:  ExportCmd,
			args: []string{"-c", "Gender", "-c", "Family Heart Disease", "-o", stdoutPath},
			expectedOutput: `[
    {
        "Gender": "Male",
        "Family Heart Disease": "Yes"
    },
    {
        "Gender": "Female",
        "Family Heart Disease": "No"
    },
    {
        "Gender": "Male",
        "Family Heart Disease": "No"
    }
]
`,
		},
		"summary with default columns": {
			cmd: SummaryCmd,
			expectedOutput: `Male - Min: 180, Max: 220, Mean: 200.0, Median: 200.0
Female - Min: 190, Max: 190, Mean: 190.0, Median: 190.0
`,
		},
		"summary with custom categories": {
			cmd:  SummaryCmd,
			args: []string{"--" + categoryFlagName, "Female", "--" + categoryFlagName, "Other"},
			expectedOutput: `Female - Min: 190, Max: 190, Mean: 190.0, Median: 190.0
Other - no data
`,
		},
		"crosstab with default outcome": {
			cmd: CrosstabCmd,
			expectedOutput: `Male - Yes: 3 (100.0%), No: 0 (0.0%), Total: 3
Female - Yes: 0 (0.0%), No: 1 (100.0%), Total: 1
`,
		},
		"crosstab with bands": {
			cmd: CrosstabCmd,
			args: []string{
				"--" + bandColumnFlagName, "Cholesterol Level",
				"--" + bandFlagName, "Healthy:200",
				"--" + bandFlagName, "At risk:240",
				"--" + bandFlagName, "Dangerous",
			},
			expectedOutput: `Male - Healthy: 1 (33.3%), At risk: 2 (66.7%), Dangerous: 0 (0.0%), Total: 3
Female - Healthy: 1 (100.0%), At risk: 0 (0.0%), Dangerous: 0 (0.0%), Total: 1
`,
		},
		"crosstab with age groups": {
			cmd: CrosstabCmd,
			args: []string{
				"--" + bandColumnFlagName, "Age",
				"--" + bandForFlagName, config.BandForGroupBy,
				"--" + bandMinFlagName, "18",
				"--" + bandFlagName, "18-35:36",
				"--" + bandFlagName, "36-55:56",
				"--" + bandFlagName, ">55",
			},
			expectedOutput: `18-35 - Yes: 1 (100.0%), No: 0 (0.0%), Total: 1
36-55 - Yes: 0 (0.0%), No: 1 (100.0%), Total: 1
>55 - Yes: 1 (100.0%), No: 0 (0.0%), Total: 1
`,
		},
		"crosstab with band target and no band column prints usage": {
			cmd:                  CrosstabCmd,
			args:                 []string{"--" + bandTargetFlagName, "Cholesterol Status"},
			expectedError:        errInvalidArgs,
			expectedErrorMessage: "invalid arguments: flag --band-target requires --band-column\n",
			expectedUsage:        true,
		},
		"crosstab with outcome and outcome band": {
			cmd: CrosstabCmd,
			args: []string{
				"--" + outcomeFlagName, "Heart Disease Status",
				"--" + bandColumnFlagName, "Cholesterol Level",
				"--" + bandFlagName, "Healthy:200",
			},
			expectedError:        errInvalidJob,
			expectedErrorMessage: "invalid job: job \"crosstab\": fields 'outcome' and 'band' are mutually exclusive\n",
		},
		"crosstab with invalid band prints usage": {
			cmd:                  CrosstabCmd,
			args:                 []string{"--" + bandColumnFlagName, "Cholesterol Level", "--" + bandFlagName, "Healthy:low"},
			expectedError:        transform.ErrInvalidBands,
			expectedErrorMessage: "invalid bands: level \"Healthy:low\" has a non numeric bound\n",
			expectedUsage:        true,
		},
		"summary with missing input": {
			cmd:                  SummaryCmd,
			args:                 []string{"-i", filepath.Join("testdata", "missing.csv")},
			expectedError:        syscall.ENOENT,
			expectedErrorMessage: fmt.Sprintf("load stage failed: data source %q: no such file or directory\n", filepath.Join("testdata", "missing.csv")),
		},
		"summary with missing column": {
			cmd:                  SummaryCmd,
			args:                 []string{"--" + valueFlagName, "Blood Pressure"},
			expectedError:        table.ErrColumnNotFound,
			expectedErrorMessage: "aggregate stage failed: column \"Blood Pressure\": column not found\n",
		},
		"export with sheet on csv input": {
			cmd:                  ExportCmd,
			args:                 []string{"--" + sheetFlagName, "Results", "--" + localOutputFlagName},
			expectedError:        errInvalidJob,
			expectedErrorMessage: fmt.Sprintf("invalid job: job \"export\": sheet \"Results\" requires an .xlsx input, got %q\n", surveyPath),
		},
		"positional arguments are rejected": {
			cmd:                  SummaryCmd,
			args:                 []string{"extra"},
			expectedError:        errInvalidArgs,
			expectedErrorMessage: "invalid arguments: unknown command \"extra\" for \"summary\"\n",
			expectedUsage:        true,
		},
		"run without job files prints usage": {
			cmd:           RunCmd,
			expectedUsage: true,
		},
		"run with missing job file": {
			cmd:                  RunCmd,
			args:                 []string{"--" + jobFileFlagName, filepath.Join("testdata", "missing")},
			expectedError:        syscall.ENOENT,
			expectedErrorMessage: fmt.Sprintf("job file %q: %s\n", filepath.Join("testdata", "missing"), syscall.ENOENT),
		},
		"run a jobs directory": {
			cmd:  RunCmd,
			args: []string{"-f", filepath.Join("testdata", "jobs")},
			expectedOutput: `Male - Min: 180, Max: 220, Mean: 200.0, Median: 200.0
Female - Min: 190, Max: 190, Mean: 190.0, Median: 190.0
Male - Healthy: 1 (33.3%), Dangerous: 2 (66.7%), Total: 3
Female - Healthy: 1 (100.0%), Dangerous: 0 (0.0%), Total: 1
`,
		},
		"run validates every job first": {
			cmd:                  RunCmd,
			args:                 []string{"-f", filepath.Join("testdata", "invalid-job.yaml")},
			expectedError:        errInvalidJob,
			expectedErrorMessage: fmt.Sprintf("invalid job: job \"invalid-job.yaml#2\": sheet \"Results\" requires an .xlsx input, got %q\n", surveyPath),
		},
		"run stops at the first failing job": {
			cmd:                  RunCmd,
			args:                 []string{"-f", filepath.Join("testdata", "failing-job.yaml")},
			expectedError:        table.ErrColumnNotFound,
			expectedErrorMessage: "job \"first\": aggregate stage failed: column \"Blood Pressure\": column not found\n",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			cmd := test.cmd(testDefaults())
			errBuffer := new(bytes.Buffer)
			outBuffer := new(bytes.Buffer)
			cmd.SetOut(outBuffer)
			cmd.SetErr(errBuffer)
			cmd.SetUsageTemplate("usage string")
			cmd.SetArgs(append([]string{}, test.args...))

			err := cmd.ExecuteContext(t.Context())
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
				assert.Equal(t, test.expectedErrorMessage, errBuffer.String())
			} else {
				assert.NoError(t, err)
				assert.Empty(t, errBuffer)
			}

			if test.expectedUsage {
				assert.Equal(t, test.expectedOutput+"usage string", outBuffer.String())
			} else {
				assert.Equal(t, test.expectedOutput, outBuffer.String())
			}
		})
	}
}

func TestExportToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "family_heart_disease.json")
	defaults := testDefaults()
	defaults.ExportPath = path

	outBuffer := new(bytes.Buffer)
	cmd := ExportCmd(defaults)
	cmd.SetOut(outBuffer)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Equal(t, "Data saved to: "+path+"\n", outBuffer.String())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"Family Heart Disease": "Yes", "Heart Disease Status": "Yes"},
		{"Family Heart Disease": "No", "Heart Disease Status": "No"},
		{"Family Heart Disease": "No", "Heart Disease Status": "Yes"}
	]`, string(content))
}

func TestExportToUnwritablePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.json")
	errBuffer := new(bytes.Buffer)
	cmd := ExportCmd(testDefaults())
	cmd.SetErr(errBuffer)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"-o", path})

	err := cmd.ExecuteContext(t.Context())

	var stageErr *pipeline.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, pipeline.StageWrite, stageErr.Stage)
	assert.Equal(t, fmt.Sprintf("write stage failed: output %q: no such file or directory\n", path), errBuffer.String())
}
