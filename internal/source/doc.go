// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package source defines the contract implemented by cardiostat data loaders.
// A loader reads a tabular file and returns it as a table.Table, reporting any
// problem with the file as a DataSourceError.
package source
