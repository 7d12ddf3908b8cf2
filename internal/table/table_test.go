// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesColumns(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		columns         []string
		expectedColumns []string
		expectedErr     error
	}{
		"surrounding whitespace is stripped": {
			columns:         []string{" Gender ", "\tCholesterol Level", "Age\n"},
			expectedColumns: []string{"Gender", "Cholesterol Level", "Age"},
		},
		"byte order mark is stripped from the first column": {
			columns:         []string{"\ufeffGender", "Age"},
			expectedColumns: []string{"Gender", "Age"},
		},
		"duplicate after normalization": {
			columns:     []string{"Gender", " Gender"},
			expectedErr: ErrDuplicateColumn,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tbl, err := New(test.columns)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				var schemaErr *SchemaError
				assert.ErrorAs(t, err, &schemaErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedColumns, tbl.Columns())
			assert.Zero(t, tbl.Len())
		})
	}
}

func TestAppendAndLookup(t *testing.T) {
	t.Parallel()

	tbl, err := New([]string{"Gender", "Cholesterol Level"})
	require.NoError(t, err)

	require.NoError(t, tbl.Append([]Value{NewString("Male"), NewInteger(210)}))
	err = tbl.Append([]Value{NewString("Female")})
	assert.ErrorIs(t, err, ErrColumnCount)
	assert.Equal(t, 1, tbl.Len())

	row := tbl.Row(0)
	value, found := row.Get("Cholesterol Level")
	require.True(t, found)
	number, ok := value.Number()
	assert.True(t, ok)
	assert.Equal(t, 210.0, number)

	_, found = row.Get("Age")
	assert.False(t, found)

	position, err := tbl.ColumnIndex("Gender")
	require.NoError(t, err)
	assert.Equal(t, 0, position)
	assert.Equal(t, "Male", row.At(position).Text())

	_, err = tbl.ColumnIndex("Age")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "Age", schemaErr.Column)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Equal(t, `column "Age": column not found`, err.Error())
}

func TestFromRecordsTyping(t *testing.T) {
	t.Parallel()

	header := []string{"Gender", "Cholesterol Level", "BMI", "Age"}
	records := [][]string{
		{"Male", "210", "24.5", "45"},
		{"Female", "190", "", "NA"},
		{"", "200", "31", "50"},
	}

	tbl, err := FromRecords(header, records)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	rows := tbl.Rows()

	gender, _ := rows[2].Get("Gender")
	assert.True(t, gender.IsMissing())
	gender, _ = rows[0].Get("Gender")
	assert.Equal(t, KindString, gender.Kind())

	cholesterol, _ := rows[0].Get("Cholesterol Level")
	assert.True(t, cholesterol.Integral())
	assert.Equal(t, "210", cholesterol.String())

	bmi, _ := rows[2].Get("BMI")
	assert.Equal(t, KindNumber, bmi.Kind())
	assert.False(t, bmi.Integral())
	assert.Equal(t, "31.0", bmi.String())

	// a missing cell turns an integer column into a float column
	age, _ := rows[0].Get("Age")
	assert.False(t, age.Integral())
	assert.Equal(t, "45.0", age.String())
	assert.Equal(t, "45", age.Text())
}

func TestFromRecordsRaggedRecord(t *testing.T) {
	t.Parallel()

	_, err := FromRecords([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	assert.ErrorIs(t, err, ErrColumnCount)
}

func TestFromRecordsMixedColumnIsTextual(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords([]string{"value"}, [][]string{{"12"}, {"high"}, {"1e3"}})
	require.NoError(t, err)

	for _, row := range tbl.Rows() {
		value, _ := row.Get("value")
		assert.Equal(t, KindString, value.Kind())
	}

	converted, err := tbl.Row(2).At(0).ToNumber()
	require.NoError(t, err)
	number, _ := converted.Number()
	assert.Equal(t, 1000.0, number)
	assert.False(t, converted.Integral())

	_, err = tbl.Row(1).At(0).ToNumber()
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestRowJSONKeepsColumnOrder(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords(
		[]string{"Zeta", "Alpha", "Score"},
		[][]string{{"a", "Yes", "1.5"}, {"x", "No", ""}},
	)
	require.NoError(t, err)

	encoded, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t, `[{"Zeta":"a","Alpha":"Yes","Score":1.5},{"Zeta":"x","Alpha":"No","Score":null}]`, string(encoded))
}

func TestLargeIntegersKeepPrecision(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords([]string{"Id"}, [][]string{{"9007199254740993"}, {" -9007199254740995 "}})
	require.NoError(t, err)

	encoded, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t, `[{"Id":9007199254740993},{"Id":-9007199254740995}]`, string(encoded))
	assert.Equal(t, "9007199254740993", tbl.Row(0).At(0).String())

	converted, err := NewString("9007199254740993").ToNumber()
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", converted.String())
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		value    float64
		integral bool
		expected string
	}{
		"integral value":            {value: 180, integral: true, expected: "180"},
		"float with integral value": {value: 200, expected: "200.0"},
		"float with fraction":       {value: 201.25, expected: "201.25"},
		"repeating fraction":        {value: 200.0 / 3, expected: "66.66666666666667"},
		"small value":               {value: 0.00001, expected: "1e-05"},
		"large value":               {value: 1e16, expected: "1e+16"},
		"zero":                      {value: 0, expected: "0.0"},
		"negative":                  {value: -12.5, expected: "-12.5"},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, FormatNumber(test.value, test.integral))
		})
	}
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Missing", KindMissing.String())
	assert.Equal(t, "String", KindString.String())
	assert.Equal(t, "Number", KindNumber.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
