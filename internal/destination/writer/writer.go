// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/destination"
	"github.com/mia-platform/cardiostat/internal/table"
)

var (
	_ destination.RowsWriter     = &Destination{}
	_ destination.SummaryWriter  = &Destination{}
	_ destination.CrossTabWriter = &Destination{}
)

const noData = "no data"

// Destination prints results to an io.Writer.
type Destination struct {
	writer io.Writer

	lock sync.Mutex
}

// NewDestination returns a destination printing to w.
func NewDestination(w io.Writer) *Destination {
	return &Destination{
		writer: w,
	}
}

func (d *Destination) WriteRows(_ context.Context, rows *table.Table) error {
	builder := new(strings.Builder)
	if err := destination.EncodeJSON(builder, rows); err != nil {
		return err
	}
	builder.WriteString("\n")

	return d.print(builder.String())
}

func (d *Destination) WriteSummary(_ context.Context, report *aggregate.Report) error {
	builder := new(strings.Builder)
	for _, group := range report.Groups {
		builder.WriteString(SummaryLine(group))
		builder.WriteString("\n")
	}

	return d.print(builder.String())
}

func (d *Destination) WriteCrossTab(_ context.Context, crossTab *aggregate.CrossTab) error {
	builder := new(strings.Builder)
	for _, row := range crossTab.Rows {
		builder.WriteString(CrossTabLine(crossTab.Outcomes, row))
		builder.WriteString("\n")
	}

	return d.print(builder.String())
}

func (d *Destination) print(output string) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	_, err := io.WriteString(d.writer, output)
	return err
}

// SummaryLine renders the statistics of group,
// e.g. Male - Min: 180, Max: 220, Mean: 200.0, Median: 200.0
func SummaryLine(group aggregate.Group) string {
	summary := group.Summary
	if summary == nil {
		return group.Category + " - " + noData
	}

	return fmt.Sprintf("%s - Min: %s, Max: %s, Mean: %s, Median: %s",
		group.Category,
		table.FormatNumber(summary.Min, summary.Integral),
		table.FormatNumber(summary.Max, summary.Integral),
		table.FormatFloat(summary.Mean),
		table.FormatFloat(summary.Median),
	)
}

// CrossTabLine renders the outcome counts of row,
// e.g. Male - Yes: 3 (60.0%), No: 2 (40.0%), Total: 5
func CrossTabLine(outcomes []string, row aggregate.CrossTabRow) string {
	if row.Total == 0 {
		return row.Category + " - " + noData
	}

	parts := make([]string, 0, len(outcomes)+1)
	for i, outcome := range outcomes {
		parts = append(parts, fmt.Sprintf("%s: %d (%s%%)", outcome, row.Counts[i], strconv.FormatFloat(row.Percent(i), 'f', 1, 64)))
	}
	parts = append(parts, "Total: "+strconv.Itoa(row.Total))

	return row.Category + " - " + strings.Join(parts, ", ")
}
