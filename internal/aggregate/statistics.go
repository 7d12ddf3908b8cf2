// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package aggregate

import (
	"github.com/montanaflynn/stats"

	"github.com/mia-platform/cardiostat/internal/table"
)

// GroupSpec selects the columns and categories of a GroupStatistics run.
type GroupSpec struct {
	// GroupBy is the categorical column used to partition the rows.
	GroupBy string
	// Categories are the values of GroupBy to report, in output order.
	Categories []string
	// Value is the numeric column summarized for every category.
	Value string
}

// Summary holds the descriptive statistics of one group.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	// Integral is true when every summarized value was an integer,
	// so that Min and Max can be rendered without a fractional part.
	Integral bool
}

// Group pairs a category with its statistics. Summary is nil when no row
// of the category holds a value.
type Group struct {
	Category string
	Summary  *Summary
}

// HasData reports whether the group has statistics.
func (g Group) HasData() bool {
	return g.Summary != nil
}

// Report is the result of GroupStatistics.
type Report struct {
	GroupBy string
	Value   string
	Groups  []Group
}

// Get returns the group of category and whether it was requested.
func (r *Report) Get(category string) (Group, bool) {
	for _, group := range r.Groups {
		if group.Category == category {
			return group, true
		}
	}

	return Group{}, false
}

// GroupStatistics partitions the rows of input by the GroupBy column and
// summarizes the Value column of every requested category. Missing values are
// skipped; a non numeric value of a requested category fails with a
// *table.TypeError. Repeated categories are reported once, at their first position.
func GroupStatistics(input *table.Table, spec GroupSpec) (*Report, error) {
	categories := uniqueValues(spec.Categories)
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	groupPosition, err := input.ColumnIndex(spec.GroupBy)
	if err != nil {
		return nil, err
	}

	valuePosition, err := input.ColumnIndex(spec.Value)
	if err != nil {
		return nil, err
	}

	values := make(map[string][]float64, len(categories))
	integral := make(map[string]bool, len(categories))
	for _, category := range categories {
		values[category] = nil
		integral[category] = true
	}

	for index, row := range input.Rows() {
		group := row.At(groupPosition)
		if group.IsMissing() {
			continue
		}

		category := group.Text()
		if _, requested := values[category]; !requested {
			continue
		}

		value, err := row.At(valuePosition).ToNumber()
		if err != nil {
			return nil, &table.TypeError{Column: spec.Value, Row: index + 1, Text: value.Text()}
		}

		number, ok := value.Number()
		if !ok {
			continue
		}

		values[category] = append(values[category], number)
		integral[category] = integral[category] && value.Integral()
	}

	report := &Report{
		GroupBy: spec.GroupBy,
		Value:   spec.Value,
		Groups:  make([]Group, 0, len(categories)),
	}

	for _, category := range categories {
		summary, err := summarize(values[category], integral[category])
		if err != nil {
			return nil, err
		}

		report.Groups = append(report.Groups, Group{Category: category, Summary: summary})
	}

	return report, nil
}

// summarize returns nil for an empty group.
func summarize(data stats.Float64Data, integral bool) (*Summary, error) {
	if data.Len() == 0 {
		return nil, nil
	}

	minimum, err := stats.Min(data)
	if err != nil {
		return nil, err
	}

	maximum, err := stats.Max(data)
	if err != nil {
		return nil, err
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Count:    data.Len(),
		Min:      minimum,
		Max:      maximum,
		Mean:     mean,
		Median:   median,
		Integral: integral,
	}, nil
}

// uniqueValues drops repeated entries keeping the first occurrence order.
func uniqueValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, found := seen[value]; found {
			continue
		}

		seen[value] = struct{}{}
		unique = append(unique, value)
	}

	return unique
}
