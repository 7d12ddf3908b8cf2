// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package aggregate computes per category results over a table: descriptive
// statistics of a numeric column and outcome counts. Categories are always
// reported in the order requested by the caller, including the ones without
// any matching row.
package aggregate
