// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/table"
)

// RowsWriter is implemented by destinations that can store the rows of a table.
type RowsWriter interface {
	WriteRows(ctx context.Context, rows *table.Table) error
}

// SummaryWriter is implemented by destinations that can report group statistics.
type SummaryWriter interface {
	WriteSummary(ctx context.Context, report *aggregate.Report) error
}

// CrossTabWriter is implemented by destinations that can report outcome counts.
type CrossTabWriter interface {
	WriteCrossTab(ctx context.Context, crossTab *aggregate.CrossTab) error
}
