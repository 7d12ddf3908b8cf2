// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

//go:generate ${TOOLS_BIN}/stringer -type=Kind -trimprefix Kind
type Kind int

const (
	// KindMissing marks a cell without data.
	KindMissing Kind = iota
	// KindString marks a textual cell.
	KindString
	// KindNumber marks a numeric cell.
	KindNumber
)

// Value is a single cell of a Table.
type Value struct {
	kind     Kind
	raw      string
	number   float64
	integral bool
	// integer holds the exact content of integral numbers.
	integer int64
}

// NewMissing returns a missing Value.
func NewMissing() Value {
	return Value{kind: KindMissing}
}

// NewString returns a textual Value.
func NewString(s string) Value {
	return Value{kind: KindString, raw: s}
}

// NewFloat returns a non integral numeric Value.
func NewFloat(f float64) Value {
	return Value{kind: KindNumber, raw: FormatFloat(f), number: f}
}

// NewInteger returns an integral numeric Value.
func NewInteger(i int64) Value {
	return Value{kind: KindNumber, raw: strconv.FormatInt(i, 10), number: float64(i), integral: true, integer: i}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether v holds no data.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Text returns the cell content as it was read from the source.
func (v Value) Text() string {
	return v.raw
}

// Number returns the numeric content of v and whether v is a number.
func (v Value) Number() (float64, bool) {
	return v.number, v.kind == KindNumber
}

// Integral reports whether v is a number coming from an integer typed column.
func (v Value) Integral() bool {
	return v.kind == KindNumber && v.integral
}

// String returns the display form of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.raw
	case KindNumber:
		return v.formatNumber()
	default:
		return ""
	}
}

// ToNumber converts a textual cell holding a number into a numeric Value.
// Missing and numeric values are returned unchanged.
func (v Value) ToNumber() (Value, error) {
	if v.kind != KindString {
		return v, nil
	}

	text := strings.TrimSpace(v.raw)
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Value{kind: KindNumber, raw: v.raw, number: float64(i), integral: true, integer: i}, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return v, ErrNotNumeric
	}

	return Value{kind: KindNumber, raw: v.raw, number: f}, nil
}

// MarshalJSON encodes strings as JSON strings, numbers as JSON numbers and missing cells as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		buffer := new(bytes.Buffer)
		if err := encodeString(buffer, v.raw); err != nil {
			return nil, err
		}
		return buffer.Bytes(), nil
	case KindNumber:
		if math.IsNaN(v.number) || math.IsInf(v.number, 0) {
			return []byte("null"), nil
		}
		return []byte(v.formatNumber()), nil
	default:
		return []byte("null"), nil
	}
}

func (v Value) formatNumber() string {
	if v.integral {
		return strconv.FormatInt(v.integer, 10)
	}

	return FormatFloat(v.number)
}

// FormatNumber renders f as an integer when integral is true, or as a float otherwise.
func FormatNumber(f float64, integral bool) string {
	if integral && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}

	return FormatFloat(f)
}

// FormatFloat renders f in its shortest round-trip form, keeping at least one
// fractional digit and switching to exponent notation outside [1e-4, 1e16).
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	formatted := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(formatted, ".") {
		formatted += ".0"
	}

	return formatted
}

// encodeString writes s as a JSON string without escaping HTML characters.
func encodeString(buffer *bytes.Buffer, s string) error {
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return err
	}

	// Encode always terminates the value with a newline
	buffer.Truncate(buffer.Len() - 1)
	return nil
}
