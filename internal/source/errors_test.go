// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataSourceError(t *testing.T) {
	t.Parallel()

	err := NewDataSourceError("survey.csv", ErrMissingHeader)
	assert.Equal(t, `data source "survey.csv": missing header row`, err.Error())
	assert.ErrorIs(t, err, ErrMissingHeader)

	wrapped := fmt.Errorf("load stage: %w", err)
	var dataSourceErr *DataSourceError
	assert.True(t, errors.As(wrapped, &dataSourceErr))
	assert.Equal(t, "survey.csv", dataSourceErr.Path)

	assert.ErrorIs(t, wrapped, NewDataSourceError("survey.csv", ErrMissingHeader))
	assert.NotErrorIs(t, wrapped, NewDataSourceError("other.csv", ErrMissingHeader))
	assert.NotErrorIs(t, err, assert.AnError)
}

func TestDataSourceErrorIsWithoutCause(t *testing.T) {
	t.Parallel()

	err := NewDataSourceError("survey.csv", ErrMissingHeader)
	assert.NotErrorIs(t, err, &DataSourceError{Path: "survey.csv"})
	assert.NotErrorIs(t, err, (*DataSourceError)(nil))
	assert.ErrorIs(t, &DataSourceError{Path: "survey.csv"}, &DataSourceError{Path: "survey.csv"})
	assert.NotErrorIs(t, &DataSourceError{Path: "survey.csv"}, err)
}
