// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// JobKindExport selects columns and stores the complete rows.
	JobKindExport = "export"
	// JobKindSummary computes per category statistics of a numeric column.
	JobKindSummary = "summary"
	// JobKindCrossTab counts outcomes per category.
	JobKindCrossTab = "crosstab"

	// BandForOutcome derives the outcome column of a crosstab job.
	BandForOutcome = "outcome"
	// BandForGroupBy derives the group column of a crosstab job.
	BandForGroupBy = "groupBy"

	KindField       = "kind"
	ColumnField     = "column"
	LevelsField     = "levels"
	LabelField      = "label"
	OutcomeField    = "outcome"
	GroupByField    = "groupBy"
	BandField       = "band"
	ForField        = "for"
	CategoriesField = "categories"
)

var (
	// ErrParsing reports failures that occur while decoding job files.
	ErrParsing = errors.New("error parsing")

	jobKinds = []string{JobKindExport, JobKindSummary, JobKindCrossTab}
	bandFor  = []string{BandForOutcome, BandForGroupBy}
)

// Job describes a single pipeline execution. Empty fields fall back to the
// defaults of the matching command.
type Job struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Kind       string      `json:"kind" yaml:"kind"`
	Input      string      `json:"input,omitempty" yaml:"input,omitempty"`
	Sheet      string      `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Output     string      `json:"output,omitempty" yaml:"output,omitempty"`
	Columns    []string    `json:"columns,omitempty" yaml:"columns,omitempty"`
	GroupBy    string      `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	Categories []string    `json:"categories,omitempty" yaml:"categories,omitempty"`
	Value      string      `json:"value,omitempty" yaml:"value,omitempty"`
	Outcome    string      `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Outcomes   []string    `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Band       *BandConfig `json:"band,omitempty" yaml:"band,omitempty"`
}

// BandConfig derives a labelled column from a numeric one before counting.
// The derived column replaces the outcome column, or the group column when
// For is BandForGroupBy. Values under Min are left out.
type BandConfig struct {
	Column string        `json:"column" yaml:"column"`
	Target string        `json:"target,omitempty" yaml:"target,omitempty"`
	For    string        `json:"for,omitempty" yaml:"for,omitempty"`
	Min    *float64      `json:"min,omitempty" yaml:"min,omitempty"`
	Levels []LevelConfig `json:"levels" yaml:"levels"`
}

// DerivesGroupBy reports whether the band replaces the group column.
func (b *BandConfig) DerivesGroupBy() bool {
	return b != nil && b.For == BandForGroupBy
}

// LevelConfig is a labelled range of a band; a nil Below leaves the range open.
type LevelConfig struct {
	Label string   `json:"label" yaml:"label"`
	Below *float64 `json:"below,omitempty" yaml:"below,omitempty"`
}

// Validate returns the list of problems found in the job.
func (j *Job) Validate() []string {
	errorsList := []string{}

	switch j.Kind {
	case "":
		errorsList = append(errorsList, fmt.Sprintf("missing field '%s'", KindField))
	case JobKindExport, JobKindSummary:
		if j.Band != nil {
			errorsList = append(errorsList, fmt.Sprintf("field '%s' is only valid for %s jobs", BandField, JobKindCrossTab))
		}
	case JobKindCrossTab:
		if j.Band != nil {
			errorsList = append(errorsList, j.Band.validate()...)
			conflicting, field := j.Outcome, OutcomeField
			if j.Band.DerivesGroupBy() {
				conflicting, field = j.GroupBy, GroupByField
			}
			if conflicting != "" {
				errorsList = append(errorsList, fmt.Sprintf("fields '%s' and '%s' are mutually exclusive", field, BandField))
			}
		}
	default:
		errorsList = append(errorsList, fmt.Sprintf("unknown value '%s' for field '%s', expected one of: %s", j.Kind, KindField, strings.Join(jobKinds, ", ")))
	}

	for _, category := range j.Categories {
		if category == "" {
			errorsList = append(errorsList, fmt.Sprintf("empty value in field '%s'", CategoriesField))
			break
		}
	}

	return errorsList
}

func (b *BandConfig) validate() []string {
	errorsList := []string{}

	if b.Column == "" {
		errorsList = append(errorsList, fmt.Sprintf("missing field '%s.%s'", BandField, ColumnField))
	}
	if b.For != "" && !slices.Contains(bandFor, b.For) {
		errorsList = append(errorsList, fmt.Sprintf("unknown value '%s' for field '%s.%s', expected one of: %s", b.For, BandField, ForField, strings.Join(bandFor, ", ")))
	}
	if len(b.Levels) == 0 {
		errorsList = append(errorsList, fmt.Sprintf("missing field '%s.%s'", BandField, LevelsField))
	}
	for index, level := range b.Levels {
		if level.Label == "" {
			errorsList = append(errorsList, fmt.Sprintf("missing field '%s.%s[%d].%s'", BandField, LevelsField, index, LabelField))
		}
	}

	return errorsList
}

// NewJobsFromPath parses the file at path and returns the jobs it contains, in
// document order. Unnamed jobs are named after the file and their position.
func NewJobsFromPath(path string) ([]*Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	jobs := make([]*Job, 0)
	for {
		job := new(Job)
		err := decoder.Decode(&job)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
		}

		// empty documents
		if job == nil {
			continue
		}

		if job.Name == "" {
			job.Name = fmt.Sprintf("%s#%d", filepath.Base(path), len(jobs)+1)
		}

		if errorsList := job.Validate(); len(errorsList) > 0 {
			return nil, fmt.Errorf("%w %q: job %q: %s", ErrParsing, path, job.Name, strings.Join(errorsList, "; "))
		}

		jobs = append(jobs, job)
	}

	return jobs, nil
}
