// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"fmt"
)

// IOError reports a failure while creating or writing an output artifact.
type IOError struct {
	Path string

	err error
}

// NewIOError wraps err with the path of the artifact that could not be written.
func NewIOError(path string, err error) *IOError {
	return &IOError{Path: path, err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("output %q: %s", e.Path, e.err)
}

func (e *IOError) Unwrap() error {
	return e.err
}
