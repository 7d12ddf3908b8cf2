// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package xlsx implements a source reading one sheet of an Excel workbook.
// The first row of the sheet is the header.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/mia-platform/cardiostat/internal/logger"
	"github.com/mia-platform/cardiostat/internal/source"
	"github.com/mia-platform/cardiostat/internal/table"
)

const (
	loggerName = "cardiostat:source:xlsx"
)

var (
	// ErrSheetNotFound reports a workbook without the requested sheet.
	ErrSheetNotFound = errors.New("sheet not found")

	_ source.Loader    = &Source{}
	_ source.Describer = &Source{}
)

// Source loads a sheet of a workbook.
type Source struct {
	path  string
	sheet string
}

// NewSource returns a Source reading sheet from the workbook at path. An empty
// sheet name selects the first sheet of the workbook.
func NewSource(path, sheet string) *Source {
	return &Source{
		path:  path,
		sheet: sheet,
	}
}

// Location returns the path of the workbook.
func (s *Source) Location() string {
	return s.path
}

// Load reads the sheet and returns its content. Cells are read as stored,
// ignoring their number format. Blank rows are skipped and rows shorter than
// the header are padded with missing cells.
func (s *Source) Load(ctx context.Context) (*table.Table, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	log.Trace("opening workbook", "path", s.path)
	workbook, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, source.NewDataSourceError(s.path, err)
	}
	defer workbook.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	}
	if !slices.Contains(workbook.GetSheetList(), sheet) {
		return nil, source.NewDataSourceError(s.path, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet))
	}

	rows, err := workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, source.NewDataSourceError(s.path, err)
	}

	loaded, err := toTable(ctx, rows)
	if err != nil {
		return nil, source.NewDataSourceError(s.path, err)
	}

	log.Debug("workbook loaded", "path", s.path, "sheet", sheet, "rows", loaded.Len(), "columns", len(loaded.Columns()))
	return loaded, nil
}

func toTable(ctx context.Context, rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, source.ErrMissingHeader
	}

	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for line, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if len(row) == 0 {
			continue
		}

		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", table.ErrColumnCount, line+2, len(row), len(header))
		}

		record := make([]string, len(header))
		copy(record, row)
		records = append(records, record)
	}

	return table.FromRecords(header, records)
}
