// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"testing"

	"github.com/mia-platform/cardiostat/internal/source"
	"github.com/mia-platform/cardiostat/internal/table"
)

var (
	_ source.Loader    = &FakeLoader{}
	_ source.Describer = &FakeLoader{}
)

// FakeLoader returns a fixed table or error and counts how many times it is loaded.
type FakeLoader struct {
	tb testing.TB

	table *table.Table
	err   error

	Loads int
}

// NewFakeLoader returns a FakeLoader producing loaded.
func NewFakeLoader(tb testing.TB, loaded *table.Table) *FakeLoader {
	tb.Helper()
	return &FakeLoader{tb: tb, table: loaded}
}

// NewFakeLoaderWithError returns a FakeLoader failing with err wrapped in a DataSourceError.
func NewFakeLoaderWithError(tb testing.TB, err error) *FakeLoader {
	tb.Helper()
	return &FakeLoader{tb: tb, err: err}
}

// NewFakeLoaderFromRecords builds the table from header and records, failing the test on error.
func NewFakeLoaderFromRecords(tb testing.TB, header []string, records [][]string) *FakeLoader {
	tb.Helper()

	loaded, err := table.FromRecords(header, records)
	if err != nil {
		tb.Fatalf("building fake table: %s", err)
	}

	return NewFakeLoader(tb, loaded)
}

// Location returns a fixed fake location.
func (f *FakeLoader) Location() string {
	return "fake"
}

// Load returns the configured table or error.
func (f *FakeLoader) Load(ctx context.Context) (*table.Table, error) {
	f.tb.Helper()
	f.Loads++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.err != nil {
		return nil, source.NewDataSourceError(f.Location(), f.err)
	}

	return f.table, nil
}
