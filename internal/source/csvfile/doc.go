// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package csvfile implements a source reading comma separated files with a header row.
package csvfile
