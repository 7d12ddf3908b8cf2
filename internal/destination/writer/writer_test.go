// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/table"
)

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	testDestination := NewDestination(buffer)

	err := testDestination.WriteSummary(t.Context(), &aggregate.Report{
		GroupBy: "Gender",
		Value:   "Cholesterol Level",
		Groups: []aggregate.Group{
			{Category: "Male", Summary: &aggregate.Summary{Count: 3, Min: 180, Max: 220, Mean: 200, Median: 200, Integral: true}},
			{Category: "Female", Summary: &aggregate.Summary{Count: 1, Min: 190, Max: 190, Mean: 190, Median: 190, Integral: true}},
			{Category: "Other"},
		},
	})
	require.NoError(t, err)

	expectedOutput := `Male - Min: 180, Max: 220, Mean: 200.0, Median: 200.0
Female - Min: 190, Max: 190, Mean: 190.0, Median: 190.0
Other - no data
`
	assert.Equal(t, expectedOutput, buffer.String())
}

func TestSummaryLine(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		group    aggregate.Group
		expected string
	}{
		"float values": {
			group: aggregate.Group{
				Category: "Male",
				Summary:  &aggregate.Summary{Count: 2, Min: 199.5, Max: 240.25, Mean: 219.875, Median: 219.875},
			},
			expected: "Male - Min: 199.5, Max: 240.25, Mean: 219.875, Median: 219.875",
		},
		"float column with integral values": {
			group: aggregate.Group{
				Category: "Female",
				Summary:  &aggregate.Summary{Count: 2, Min: 150, Max: 151, Mean: 150.5, Median: 150.5},
			},
			expected: "Female - Min: 150.0, Max: 151.0, Mean: 150.5, Median: 150.5",
		},
		"repeating mean": {
			group: aggregate.Group{
				Category: "Male",
				Summary:  &aggregate.Summary{Count: 3, Min: 1, Max: 2, Mean: 4.0 / 3, Median: 1, Integral: true},
			},
			expected: "Male - Min: 1, Max: 2, Mean: 1.3333333333333333, Median: 1.0",
		},
		"no data": {
			group:    aggregate.Group{Category: "Female"},
			expected: "Female - no data",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, SummaryLine(test.group))
		})
	}
}

func TestWriteCrossTab(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	testDestination := NewDestination(buffer)

	err := testDestination.WriteCrossTab(t.Context(), &aggregate.CrossTab{
		GroupBy:  "Gender",
		Outcome:  "Heart Disease Status",
		Outcomes: []string{"Yes", "No"},
		Rows: []aggregate.CrossTabRow{
			{Category: "Male", Counts: []int{3, 2}, Total: 5},
			{Category: "Female", Counts: []int{1, 2}, Total: 3},
			{Category: "Other", Counts: []int{0, 0}, Total: 0},
		},
	})
	require.NoError(t, err)

	expectedOutput := `Male - Yes: 3 (60.0%), No: 2 (40.0%), Total: 5
Female - Yes: 1 (33.3%), No: 2 (66.7%), Total: 3
Other - no data
`
	assert.Equal(t, expectedOutput, buffer.String())
}

func TestWriteRows(t *testing.T) {
	t.Parallel()

	rows, err := table.FromRecords(
		[]string{"Family Heart Disease", "Heart Disease Status"},
		[][]string{{"Yes", "No"}},
	)
	require.NoError(t, err)

	buffer := new(bytes.Buffer)
	require.NoError(t, NewDestination(buffer).WriteRows(t.Context(), rows))

	expectedOutput := `[
    {
        "Family Heart Disease": "Yes",
        "Heart Disease Status": "No"
    }
]
`
	assert.Equal(t, expectedOutput, buffer.String())
}
