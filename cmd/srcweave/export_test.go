package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand(t *testing.T) {
	// Arrange
	db := seedSite(t)
	out := filepath.Join(t.TempDir(), "site")

	// Act
	output, err := executeCmd(t, newExportCmd(), db, out)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, output, "Export complete:")
	assert.Contains(t, output, "Pages exported: 2")

	content, err := os.ReadFile(filepath.Join(out, "main.go.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>main</html>", string(content))
	assert.FileExists(t, filepath.Join(out, "index.html"))
}

func TestExportCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCmd(t, newExportCmd(), filepath.Join(dir, "missing.db"), filepath.Join(dir, "out"))
	assert.Error(t, err)

	_, err = executeCmd(t, newExportCmd(), dir, filepath.Join(dir, "out"))
	assert.Error(t, err, "directories are not databases")

	_, err = executeCmd(t, newExportCmd(), seedSite(t))
	assert.Error(t, err, "destination is required")
}
