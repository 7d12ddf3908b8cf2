// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package destination defines the capabilities a pipeline sink can expose and
// the JSON shapes shared by every sink that serializes pipeline results.
package destination
