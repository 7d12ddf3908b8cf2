// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHeader reports a source without any header row.
	ErrMissingHeader = errors.New("missing header row")
)

// Ensure DataSourceError implements the error interface.
var _ error = &DataSourceError{}

// DataSourceError wraps every failure met while reading a tabular source.
type DataSourceError struct {
	Path string
	err  error
}

// NewDataSourceError returns a DataSourceError for path wrapping err.
func NewDataSourceError(path string, err error) *DataSourceError {
	return &DataSourceError{
		Path: path,
		err:  err,
	}
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %q: %s", e.Path, e.err)
}

func (e *DataSourceError) Unwrap() error {
	return e.err
}

func (e *DataSourceError) Is(target error) bool {
	t, ok := target.(*DataSourceError)
	if !ok || t == nil {
		return false
	}

	if e.err == nil || t.err == nil {
		return e.Path == t.Path && e.err == t.err
	}
	return e.Path == t.Path && e.err.Error() == t.err.Error()
}
