// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mia-platform/cardiostat/internal/config"
	"github.com/mia-platform/cardiostat/internal/source"
	"github.com/mia-platform/cardiostat/internal/source/csvfile"
	"github.com/mia-platform/cardiostat/internal/source/xlsx"
	"github.com/mia-platform/cardiostat/internal/transform"
)

const (
	workbookExtension = ".xlsx"
)

var (
	errNoJobs      = errors.New("no job provided")
	errInvalidJob  = errors.New("invalid job")
	errInvalidArgs = errors.New("invalid arguments")

	// sourceGetter returns the loader for the table at path.
	// It can be overridden for testing purposes.
	sourceGetter = sourceFromPath
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoJobs):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, transform.ErrInvalidBands), errors.Is(err, errInvalidArgs):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// noArgs rejects positional arguments printing the usage.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return handleError(cmd, fmt.Errorf("%w: %w", errInvalidArgs, err))
	}

	return nil
}

// unwrappedError returns the unwrapped error if available, otherwise it returns the original error.
func unwrappedError(err error) error {
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		return unwrapped
	}

	return err
}

func collectPaths(paths []string) ([]string, error) {
	collected := make([]string, 0)
	for _, p := range paths {
		cleanedPath := filepath.Clean(p)
		err := filepath.Walk(cleanedPath, func(walkedPath string, info fs.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("job file %q: %w", walkedPath, unwrappedError(err))
			}

			switch {
			case !info.IsDir(): // it's a file add to the collection
				collected = append(collected, walkedPath)
			case info.IsDir() && cleanedPath != walkedPath: // skip directories if is not the root path
				return filepath.SkipDir
			}

			return nil
		})

		if err != nil {
			return nil, err
		}
	}

	return collected, nil
}

// loadJobs loads all the jobs from the provided paths, keeping the file order.
func loadJobs(paths []string) ([]*config.Job, error) {
	jobs := make([]*config.Job, 0)
	for _, path := range paths {
		fileJobs, err := config.NewJobsFromPath(path)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, fileJobs...)
	}

	return jobs, nil
}

// sourceFromPath returns a workbook source for .xlsx files and a comma
// separated source for everything else.
func sourceFromPath(path, sheet string) source.Loader {
	if isWorkbook(path) {
		return xlsx.NewSource(path, sheet)
	}

	return csvfile.NewSource(path)
}
