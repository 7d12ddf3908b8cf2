// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/table"
)

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		payload  any
		expected string
	}{
		"summary records": {
			payload: SummaryRecords(&aggregate.Report{
				GroupBy: "Gender",
				Value:   "Cholesterol Level",
				Groups: []aggregate.Group{
					{
						Category: "Male",
						Summary:  &aggregate.Summary{Count: 3, Min: 180, Max: 220, Mean: 200, Median: 200, Integral: true},
					},
					{Category: "Female"},
				},
			}),
			expected: `[
    {
        "category": "Male",
        "count": 3,
        "min": 180,
        "max": 220,
        "mean": 200.0,
        "median": 200.0
    },
    {
        "category": "Female",
        "count": 0,
        "min": null,
        "max": null,
        "mean": null,
        "median": null
    }
]`,
		},
		"cross tab records": {
			payload: CrossTabRecords(&aggregate.CrossTab{
				GroupBy:  "Gender",
				Outcome:  "Heart Disease Status",
				Outcomes: []string{"Yes", "No"},
				Rows: []aggregate.CrossTabRow{
					{Category: "Male", Counts: []int{1, 3}, Total: 4},
				},
			}),
			expected: `[
    {
        "category": "Male",
        "outcomes": [
            {
                "outcome": "Yes",
                "count": 1,
                "percent": 25
            },
            {
                "outcome": "No",
                "count": 3,
                "percent": 75
            }
        ],
        "total": 4
    }
]`,
		},
		"html characters are kept": {
			payload:  map[string]string{"note": "<b>&</b>"},
			expected: "{\n    \"note\": \"<b>&</b>\"\n}",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := new(bytes.Buffer)
			require.NoError(t, EncodeJSON(buffer, test.payload))
			assert.Equal(t, test.expected, buffer.String())
		})
	}
}

func TestEncodeJSONTable(t *testing.T) {
	t.Parallel()

	rows, err := table.FromRecords(
		[]string{"Family Heart Disease", "Heart Disease Status"},
		[][]string{{"Yes", "No"}},
	)
	require.NoError(t, err)

	buffer := new(bytes.Buffer)
	require.NoError(t, EncodeJSON(buffer, rows))
	assert.Equal(t, `[
    {
        "Family Heart Disease": "Yes",
        "Heart Disease Status": "No"
    }
]`, buffer.String())
}

func TestIOError(t *testing.T) {
	t.Parallel()

	err := NewIOError("out/data.json", assert.AnError)
	assert.Equal(t, "out/data.json", err.Path)
	assert.ErrorIs(t, err, assert.AnError)
	assert.EqualError(t, err, `output "out/data.json": `+assert.AnError.Error())
}
