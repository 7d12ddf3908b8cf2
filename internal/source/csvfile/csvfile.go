// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/mia-platform/cardiostat/internal/logger"
	"github.com/mia-platform/cardiostat/internal/source"
	"github.com/mia-platform/cardiostat/internal/table"
)

const (
	loggerName = "cardiostat:source:csv"
)

var (
	_ source.Loader    = &Source{}
	_ source.Describer = &Source{}
)

// Source loads a comma separated file whose first record is the header.
type Source struct {
	path string
}

// NewSource returns a Source reading the file at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Location returns the path of the file.
func (s *Source) Location() string {
	return s.path
}

// Load reads the file and returns its content. Every record must have the same
// number of fields as the header.
func (s *Source) Load(ctx context.Context) (*table.Table, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	log.Trace("opening file", "path", s.path)
	file, err := os.Open(s.path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return nil, source.NewDataSourceError(s.path, err)
	}
	defer file.Close()

	loaded, err := read(ctx, file)
	if err != nil {
		return nil, source.NewDataSourceError(s.path, err)
	}

	log.Debug("file loaded", "path", s.path, "rows", loaded.Len(), "columns", len(loaded.Columns()))
	return loaded, nil
}

func read(ctx context.Context, r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, source.ErrMissingHeader
	}
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return table.FromRecords(header, records)
}
