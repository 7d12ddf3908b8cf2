// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"testing"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/destination"
	"github.com/mia-platform/cardiostat/internal/table"
)

var (
	_ destination.RowsWriter     = &FakeDestination{}
	_ destination.SummaryWriter  = &FakeDestination{}
	_ destination.CrossTabWriter = &FakeDestination{}
)

// FakeDestination records every result it receives, or fails with err when set.
type FakeDestination struct {
	tb  testing.TB
	err error

	Rows      []*table.Table
	Reports   []*aggregate.Report
	CrossTabs []*aggregate.CrossTab
}

func NewFakeDestination(tb testing.TB) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb}
}

func NewFakeDestinationWithError(tb testing.TB, err error) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb, err: err}
}

func (f *FakeDestination) WriteRows(_ context.Context, rows *table.Table) error {
	f.tb.Helper()
	if f.err != nil {
		return f.err
	}

	f.Rows = append(f.Rows, rows)
	return nil
}

func (f *FakeDestination) WriteSummary(_ context.Context, report *aggregate.Report) error {
	f.tb.Helper()
	if f.err != nil {
		return f.err
	}

	f.Reports = append(f.Reports, report)
	return nil
}

func (f *FakeDestination) WriteCrossTab(_ context.Context, crossTab *aggregate.CrossTab) error {
	f.tb.Helper()
	if f.err != nil {
		return f.err
	}

	f.CrossTabs = append(f.CrossTabs, crossTab)
	return nil
}
