// Package testutil provides testing utilities for tabclean
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/tabclean/pkg/table"
)

// Tolerance used when comparing numeric cells
const Tolerance = 1e-9

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ testing.TB) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// Table builds a text table from CSV-style records and fails the test on a
// shape error.
func Table(t testing.TB, header []string, rows ...[]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(header, rows)
	require.NoError(t, err)
	return tbl
}

// AssertCells checks every cell of the named column. Each expected entry is
// nil for missing, a string for text or a float64 for a number.
func AssertCells(t testing.TB, tbl *table.Table, name string, want ...interface{}) {
	t.Helper()
	col, ok := tbl.ColumnByName(name)
	require.True(t, ok, "column %q not found in %v", name, tbl.Names())
	require.Len(t, col.Cells, len(want), "column %q", name)

	for i, w := range want {
		cell := col.Cells[i]
		switch w := w.(type) {
		case nil:
			assert.True(t, cell.IsMissing(), "%s[%d]: want missing, got %s %q", name, i, cell.Kind(), cell)
		case string:
			got, ok := cell.AsText()
			if assert.True(t, ok, "%s[%d]: want text %q, got %s", name, i, w, cell.Kind()) {
				assert.Equal(t, w, got, "%s[%d]", name, i)
			}
		case float64:
			got, ok := cell.AsNumber()
			if assert.True(t, ok, "%s[%d]: want number %v, got %s %q", name, i, w, cell.Kind(), cell) {
				assert.InDelta(t, w, got, Tolerance*max(1, w), "%s[%d]", name, i)
			}
		default:
			t.Fatalf("AssertCells: unsupported expectation %T", w)
		}
	}
}
