// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

const byteOrderMark = "\ufeff"

// Table is an ordered sequence of rows sharing the same columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NormalizeColumnName strips surrounding whitespace and a leading byte order mark from name.
func NormalizeColumnName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
}

// New returns an empty Table with the given columns. Names are normalized
// before anything else, and must be unique once normalized.
func New(columns []string) (*Table, error) {
	normalized := make([]string, 0, len(columns))
	index := make(map[string]int, len(columns))
	for position, column := range columns {
		name := NormalizeColumnName(column)
		if _, found := index[name]; found {
			return nil, NewSchemaError(name, ErrDuplicateColumn)
		}

		index[name] = position
		normalized = append(normalized, name)
	}

	return &Table{
		columns: normalized,
		index:   index,
	}, nil
}

// Columns returns the column names in schema order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Append adds a row at the end of the table. values must follow the column order.
func (t *Table) Append(values []Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: got %d, expected %d", ErrColumnCount, len(values), len(t.columns))
	}

	t.rows = append(t.rows, slices.Clone(values))
	return nil
}

// ColumnIndex returns the position of column in the schema.
func (t *Table) ColumnIndex(column string) (int, error) {
	position, found := t.index[column]
	if !found {
		return 0, NewSchemaError(column, ErrColumnNotFound)
	}

	return position, nil
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return Row{table: t, values: t.rows[i]}
}

// Rows returns all the rows in order.
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, len(t.rows))
	for _, values := range t.rows {
		rows = append(rows, Row{table: t, values: values})
	}

	return rows
}

// MarshalJSON encodes the table as an array of row objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	buffer := new(bytes.Buffer)
	buffer.WriteByte('[')
	for i, row := range t.Rows() {
		if i > 0 {
			buffer.WriteByte(',')
		}

		encoded, err := row.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buffer.Write(encoded)
	}
	buffer.WriteByte(']')

	return buffer.Bytes(), nil
}

// Row is a read only view over one record of a Table.
type Row struct {
	table  *Table
	values []Value
}

// Columns returns the column names of the row in order.
func (r Row) Columns() []string {
	return r.table.Columns()
}

// Get returns the value stored under column.
func (r Row) Get(column string) (Value, bool) {
	position, found := r.table.index[column]
	if !found {
		return Value{}, false
	}

	return r.values[position], true
}

// At returns the value at the given column position.
func (r Row) At(position int) Value {
	return r.values[position]
}

// Values returns a copy of the row values in column order.
func (r Row) Values() []Value {
	return slices.Clone(r.values)
}

// MarshalJSON encodes the row as a JSON object keeping the column order.
func (r Row) MarshalJSON() ([]byte, error) {
	buffer := new(bytes.Buffer)
	buffer.WriteByte('{')
	for position, column := range r.table.columns {
		if position > 0 {
			buffer.WriteByte(',')
		}

		if err := encodeString(buffer, column); err != nil {
			return nil, err
		}
		buffer.WriteByte(':')

		encoded, err := r.values[position].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buffer.Write(encoded)
	}
	buffer.WriteByte('}')

	return buffer.Bytes(), nil
}
