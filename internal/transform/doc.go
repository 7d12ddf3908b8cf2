// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package transform contains the row level transformations applied to a loaded
// table before it reaches a destination. Every transformation returns a new
// table and leaves its input untouched.
package transform
