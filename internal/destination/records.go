// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/table"
)

const indentation = "    "

// SummaryRecord is the serialized form of one group of a summary report.
// Statistics of a group without data are encoded as null.
type SummaryRecord struct {
	Category string      `json:"category"`
	Count    int         `json:"count"`
	Min      table.Value `json:"min"`
	Max      table.Value `json:"max"`
	Mean     table.Value `json:"mean"`
	Median   table.Value `json:"median"`
}

// OutcomeRecord is the serialized count of one outcome inside a category.
type OutcomeRecord struct {
	Outcome string  `json:"outcome"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CrossTabRecord is the serialized form of one category of a cross tabulation.
type CrossTabRecord struct {
	Category string          `json:"category"`
	Outcomes []OutcomeRecord `json:"outcomes"`
	Total    int             `json:"total"`
}

// SummaryRecords converts report into its serialized form, keeping the group order.
func SummaryRecords(report *aggregate.Report) []SummaryRecord {
	records := make([]SummaryRecord, 0, len(report.Groups))
	for _, group := range report.Groups {
		record := SummaryRecord{Category: group.Category}
		if summary := group.Summary; summary != nil {
			record.Count = summary.Count
			record.Min = extremum(summary.Min, summary.Integral)
			record.Max = extremum(summary.Max, summary.Integral)
			record.Mean = table.NewFloat(summary.Mean)
			record.Median = table.NewFloat(summary.Median)
		}

		records = append(records, record)
	}

	return records
}

// CrossTabRecords converts crossTab into its serialized form, keeping the row order.
func CrossTabRecords(crossTab *aggregate.CrossTab) []CrossTabRecord {
	records := make([]CrossTabRecord, 0, len(crossTab.Rows))
	for _, row := range crossTab.Rows {
		outcomes := make([]OutcomeRecord, 0, len(crossTab.Outcomes))
		for i, outcome := range crossTab.Outcomes {
			outcomes = append(outcomes, OutcomeRecord{
				Outcome: outcome,
				Count:   row.Counts[i],
				Percent: row.Percent(i),
			})
		}

		records = append(records, CrossTabRecord{
			Category: row.Category,
			Outcomes: outcomes,
			Total:    row.Total,
		})
	}

	return records
}

// EncodeJSON writes payload to w indented by four spaces, without escaping
// HTML characters and without a trailing newline.
func EncodeJSON(w io.Writer, payload any) error {
	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indentation)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	_, err := w.Write(bytes.TrimSuffix(buffer.Bytes(), []byte("\n")))
	return err
}

func extremum(value float64, integral bool) table.Value {
	if integral {
		return table.NewInteger(int64(value))
	}

	return table.NewFloat(value)
}
