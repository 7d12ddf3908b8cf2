// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestFileStructure creates a test file structure under the given baseDir.
func setupTestFileStructure(tb testing.TB, baseDir string) {
	tb.Helper()

	require.NoError(tb, os.MkdirAll(filepath.Join(baseDir, "valid", "subdir"), os.ModePerm))
	require.NoError(tb, os.Symlink(filepath.Join(baseDir, "valid", "subdir"), filepath.Join(baseDir, "valid", "link")))
	require.NoError(tb, os.WriteFile(filepath.Join(baseDir, "valid", "jobs.yaml"), []byte("kind: summary\n"), os.ModePerm))
	require.NoError(tb, os.WriteFile(filepath.Join(baseDir, "valid", "subdir", "file.txt"), []byte("txt file"), os.ModePerm))
	require.NoError(tb, os.Mkdir(filepath.Join(baseDir, "secret"), os.ModePerm))
	require.NoError(tb, os.Chmod(filepath.Join(baseDir, "secret"), 0o0000))
}
