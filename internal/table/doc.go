// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package table holds the in-memory representation of a loaded dataset.
// A Table is an ordered list of rows sharing one schema; every cell is a Value
// that is either missing, a string or a number.
package table
