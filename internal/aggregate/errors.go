// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package aggregate

import "errors"

var (
	// ErrNoCategories reports an aggregation without any requested category.
	ErrNoCategories = errors.New("no categories requested")
	// ErrNoOutcomes reports a cross tabulation without any requested outcome.
	ErrNoOutcomes = errors.New("no outcomes requested")
)
