// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"fmt"
	"strconv"
	"strings"
)

// missingMarkers lists the cell contents read as missing data.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissingMarker reports whether the raw cell content means missing data.
func IsMissingMarker(text string) bool {
	_, found := missingMarkers[text]
	return found
}

type columnType int

const (
	integerColumn columnType = iota
	floatColumn
	stringColumn
)

// FromRecords builds a Table from a header and raw string records, typing each
// column from its content. A column is integer typed when every cell is an
// integer, float typed when every non missing cell is a number, and textual
// otherwise.
func FromRecords(header []string, records [][]string) (*Table, error) {
	t, err := New(header)
	if err != nil {
		return nil, err
	}

	for line, record := range records {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: record %d has %d fields, expected %d", ErrColumnCount, line+1, len(record), len(header))
		}
	}

	types := make([]columnType, len(header))
	for position := range header {
		types[position] = inferColumnType(records, position)
	}

	t.rows = make([][]Value, 0, len(records))
	for _, record := range records {
		values := make([]Value, len(record))
		for position, text := range record {
			values[position] = parseCell(text, types[position])
		}
		t.rows = append(t.rows, values)
	}

	return t, nil
}

func inferColumnType(records [][]string, position int) columnType {
	kind := integerColumn
	for _, record := range records {
		text := record[position]
		if IsMissingMarker(text) {
			kind = max(kind, floatColumn)
			continue
		}

		trimmed := strings.TrimSpace(text)
		if kind == integerColumn {
			if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
				continue
			}
			kind = floatColumn
		}

		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return stringColumn
		}
	}

	return kind
}

func parseCell(text string, kind columnType) Value {
	if IsMissingMarker(text) {
		return NewMissing()
	}

	trimmed := strings.TrimSpace(text)
	switch kind {
	case integerColumn:
		i, _ := strconv.ParseInt(trimmed, 10, 64)
		return Value{kind: KindNumber, raw: text, number: float64(i), integral: true, integer: i}
	case floatColumn:
		f, _ := strconv.ParseFloat(trimmed, 64)
		return Value{kind: KindNumber, raw: text, number: f}
	default:
		return Value{kind: KindString, raw: text}
	}
}
