// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"errors"

	"github.com/mia-platform/cardiostat/internal/table"
)

var (
	// ErrNoColumns reports a selection without any column.
	ErrNoColumns = errors.New("no columns selected")
)

// SelectColumns returns a table made of the given columns, in the given order,
// keeping only the rows where none of them is missing. Row order is preserved.
// It fails with a *table.SchemaError when a column is unknown or repeated.
func SelectColumns(input *table.Table, columns []string) (*table.Table, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	positions := make([]int, 0, len(columns))
	for _, column := range columns {
		position, err := input.ColumnIndex(column)
		if err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}

	output, err := table.New(columns)
	if err != nil {
		return nil, err
	}

	values := make([]table.Value, len(positions))
rows:
	for _, row := range input.Rows() {
		for i, position := range positions {
			value := row.At(position)
			if value.IsMissing() {
				continue rows
			}
			values[i] = value
		}

		if err := output.Append(values); err != nil {
			return nil, err
		}
	}

	return output, nil
}
