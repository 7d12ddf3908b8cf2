// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mia-platform/cardiostat/internal/table"
)

var (
	// ErrInvalidBands reports an unusable list of band levels.
	ErrInvalidBands = errors.New("invalid bands")
)

// Level is a labelled numeric range. A value belongs to the first level whose
// Below bound is strictly greater than the value.
type Level struct {
	Label string
	Below float64
}

// Unbounded returns a level accepting every value not caught by the previous levels.
func Unbounded(label string) Level {
	return Level{Label: label, Below: math.Inf(1)}
}

// IsUnbounded reports whether l accepts every value not caught by the previous levels.
func (l Level) IsUnbounded() bool {
	return math.IsInf(l.Below, 1)
}

// ParseLevel reads a level written as "Label:below", or "Label" for an unbounded level.
func ParseLevel(text string) (Level, error) {
	label, bound, found := cutLast(text, ":")
	if !found {
		return levelWithLabel(text, math.Inf(1))
	}

	below, err := strconv.ParseFloat(strings.TrimSpace(bound), 64)
	if err != nil {
		return Level{}, fmt.Errorf("%w: level %q has a non numeric bound", ErrInvalidBands, text)
	}

	return levelWithLabel(label, below)
}

// BandSpec describes the derived column produced by Band.
type BandSpec struct {
	// Column is the numeric column to classify.
	Column string
	// Target is the name of the new column holding the labels.
	Target string
	// Levels are the ranges, in increasing order of their bounds.
	Levels []Level
	// Min, when set, is the lowest value of the first level: smaller values
	// stay missing.
	Min *float64
}

// Validate reports an error if the levels are empty, unlabelled or not strictly
// increasing, or if Min is not below the first bound.
func (s BandSpec) Validate() error {
	if len(s.Levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidBands)
	}

	for i, level := range s.Levels {
		if level.Label == "" {
			return fmt.Errorf("%w: level %d has no label", ErrInvalidBands, i+1)
		}
		if math.IsNaN(level.Below) {
			return fmt.Errorf("%w: level %q has no bound", ErrInvalidBands, level.Label)
		}
		if i > 0 && level.Below <= s.Levels[i-1].Below {
			return fmt.Errorf("%w: level %q bound is not greater than the previous one", ErrInvalidBands, level.Label)
		}
	}

	if s.Min != nil && (math.IsNaN(*s.Min) || *s.Min >= s.Levels[0].Below) {
		return fmt.Errorf("%w: minimum %s is not below the bound of level %q", ErrInvalidBands, strconv.FormatFloat(*s.Min, 'g', -1, 64), s.Levels[0].Label)
	}

	return nil
}

// Band returns a copy of input with an extra Target column labelling the
// Column value of every row. Missing values, values under Min and values above
// every bound stay missing. A non numeric value fails with a *table.TypeError.
func Band(input *table.Table, spec BandSpec) (*table.Table, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	position, err := input.ColumnIndex(spec.Column)
	if err != nil {
		return nil, err
	}

	output, err := table.New(append(input.Columns(), spec.Target))
	if err != nil {
		return nil, err
	}

	for index, row := range input.Rows() {
		value, err := row.At(position).ToNumber()
		if err != nil {
			return nil, &table.TypeError{Column: spec.Column, Row: index + 1, Text: value.Text()}
		}

		if err := output.Append(append(row.Values(), spec.classify(value))); err != nil {
			return nil, err
		}
	}

	return output, nil
}

func (s BandSpec) classify(value table.Value) table.Value {
	number, ok := value.Number()
	if !ok || (s.Min != nil && number < *s.Min) {
		return table.NewMissing()
	}

	for _, level := range s.Levels {
		if number < level.Below {
			return table.NewString(level.Label)
		}
	}

	return table.NewMissing()
}

func levelWithLabel(label string, below float64) (Level, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Level{}, fmt.Errorf("%w: empty label", ErrInvalidBands)
	}

	return Level{Label: label, Below: below}, nil
}

func cutLast(s, sep string) (string, string, bool) {
	index := strings.LastIndex(s, sep)
	if index < 0 {
		return s, "", false
	}

	return s[:index], s[index+len(sep):], true
}
