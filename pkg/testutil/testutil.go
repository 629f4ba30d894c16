// Package testutil provides testing utilities for msbench
package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TempTable returns a table path inside a per-test temporary directory,
// removed automatically when the test completes.
func TempTable(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "table.data")
}
