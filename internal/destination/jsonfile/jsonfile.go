// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/mia-platform/cardiostat/internal/aggregate"
	"github.com/mia-platform/cardiostat/internal/destination"
	"github.com/mia-platform/cardiostat/internal/logger"
	"github.com/mia-platform/cardiostat/internal/table"
)

const (
	loggerName = "cardiostat:destination:jsonfile"

	filePermissions = 0o644
)

var (
	_ destination.RowsWriter     = &Destination{}
	_ destination.SummaryWriter  = &Destination{}
	_ destination.CrossTabWriter = &Destination{}
)

// Destination writes JSON documents to a single file path.
type Destination struct {
	path string
}

// NewDestination returns a Destination writing to path.
func NewDestination(path string) *Destination {
	return &Destination{path: path}
}

// Location returns the path of the output file.
func (d *Destination) Location() string {
	return d.path
}

// WriteRows stores rows as an array of objects, one per row.
func (d *Destination) WriteRows(ctx context.Context, rows *table.Table) error {
	return d.write(ctx, rows)
}

// WriteSummary stores report as an array of per category statistics.
func (d *Destination) WriteSummary(ctx context.Context, report *aggregate.Report) error {
	return d.write(ctx, destination.SummaryRecords(report))
}

// WriteCrossTab stores crossTab as an array of per category outcome counts.
func (d *Destination) WriteCrossTab(ctx context.Context, crossTab *aggregate.CrossTab) error {
	return d.write(ctx, destination.CrossTabRecords(crossTab))
}

func (d *Destination) write(ctx context.Context, payload any) (err error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	buffer := new(bytes.Buffer)
	if err := destination.EncodeJSON(buffer, payload); err != nil {
		return destination.NewIOError(d.path, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Trace("creating output file", "path", d.path)
	file, err := os.OpenFile(d.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePermissions)
	if err != nil {
		return destination.NewIOError(d.path, unwrapPathError(err))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = destination.NewIOError(d.path, unwrapPathError(closeErr))
		}
	}()

	written, err := buffer.WriteTo(file)
	if err != nil {
		return destination.NewIOError(d.path, unwrapPathError(err))
	}

	log.Debug("output file written", "path", d.path, "bytes", written)
	return nil
}

// unwrapPathError drops the path from err since IOError already carries it.
func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}

	return err
}
