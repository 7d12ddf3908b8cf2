// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"context"

	"github.com/mia-platform/cardiostat/internal/table"
)

// Loader defines the interface for a tabular data source.
type Loader interface {
	// Load reads the whole source and returns it as a Table. Column names of the
	// returned table are already normalized.
	Load(ctx context.Context) (*table.Table, error)
}

// Describer can be implemented by a Loader to expose where it reads from.
type Describer interface {
	// Location returns a human readable location of the source, typically its path.
	Location() string
}
