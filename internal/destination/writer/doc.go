// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package writer implements a destination that prints the received results to the
// given io.Writer instance.
// Summaries and cross tabulations are rendered as one human readable line per
// category, while rows are printed as the same JSON document a file destination
// would store, which is useful for inspecting an export before writing it.
package writer
