// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is wrapped by SchemaError when a column is absent from the schema.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn is wrapped by SchemaError when a column name appears more than once.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrColumnCount reports a row whose length does not match the schema.
	ErrColumnCount = errors.New("wrong number of fields")
	// ErrNotNumeric is wrapped by TypeError.
	ErrNotNumeric = errors.New("value is not numeric")
)

// Ensure the typed errors implement the error interface.
var (
	_ error = &SchemaError{}
	_ error = &TypeError{}
)

// SchemaError reports an operation referencing a column the table cannot provide.
type SchemaError struct {
	Column string
	err    error
}

// NewSchemaError returns a SchemaError for column wrapping err.
func NewSchemaError(column string, err error) *SchemaError {
	return &SchemaError{Column: column, err: err}
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.err)
}

func (e *SchemaError) Unwrap() error {
	return e.err
}

// TypeError reports a non missing cell that cannot be read as a number.
type TypeError struct {
	Column string
	// Row is the 1-based position of the offending row in its table.
	Row  int
	Text string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("column %q row %d: %q is not a number", e.Column, e.Row, e.Text)
}

func (e *TypeError) Unwrap() error {
	return ErrNotNumeric
}
