// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package aggregate

import (
	"github.com/mia-platform/cardiostat/internal/table"
)

// CrossTabSpec selects the columns and values of a CrossTabulate run.
type CrossTabSpec struct {
	// GroupBy is the categorical column used to partition the rows.
	GroupBy string
	// Categories are the values of GroupBy to report, in output order.
	Categories []string
	// Outcome is the column whose values are counted.
	Outcome string
	// Outcomes are the values of Outcome to count, in output order.
	Outcomes []string
}

// CrossTabRow holds the outcome counts of one category.
type CrossTabRow struct {
	Category string
	// Counts follows the order of CrossTab.Outcomes.
	Counts []int
	Total  int
}

// Percent returns the share of the i-th outcome over the row total, from 0 to 100.
func (r CrossTabRow) Percent(i int) float64 {
	if r.Total == 0 {
		return 0
	}

	return float64(r.Counts[i]) * 100 / float64(r.Total)
}

// CrossTab is the result of CrossTabulate.
type CrossTab struct {
	GroupBy  string
	Outcome  string
	Outcomes []string
	Rows     []CrossTabRow
}

// CrossTabulate counts, for each requested category, the rows holding each
// requested outcome. Rows with a missing or not requested outcome are ignored,
// so every Total is the sum of its Counts.
func CrossTabulate(input *table.Table, spec CrossTabSpec) (*CrossTab, error) {
	categories := uniqueValues(spec.Categories)
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	outcomes := uniqueValues(spec.Outcomes)
	if len(outcomes) == 0 {
		return nil, ErrNoOutcomes
	}

	groupPosition, err := input.ColumnIndex(spec.GroupBy)
	if err != nil {
		return nil, err
	}

	outcomePosition, err := input.ColumnIndex(spec.Outcome)
	if err != nil {
		return nil, err
	}

	rowIndex := make(map[string]int, len(categories))
	rows := make([]CrossTabRow, 0, len(categories))
	for i, category := range categories {
		rowIndex[category] = i
		rows = append(rows, CrossTabRow{Category: category, Counts: make([]int, len(outcomes))})
	}

	outcomeIndex := make(map[string]int, len(outcomes))
	for i, outcome := range outcomes {
		outcomeIndex[outcome] = i
	}

	for _, row := range input.Rows() {
		group, outcome := row.At(groupPosition), row.At(outcomePosition)
		if group.IsMissing() || outcome.IsMissing() {
			continue
		}

		r, requested := rowIndex[group.Text()]
		if !requested {
			continue
		}

		o, counted := outcomeIndex[outcome.Text()]
		if !counted {
			continue
		}

		rows[r].Counts[o]++
		rows[r].Total++
	}

	return &CrossTab{
		GroupBy:  spec.GroupBy,
		Outcome:  spec.Outcome,
		Outcomes: outcomes,
		Rows:     rows,
	}, nil
}
