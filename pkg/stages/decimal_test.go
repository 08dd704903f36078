package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabclean/pkg/table"
	"github.com/ajitpratap0/tabclean/pkg/testutil"
)

func TestRepairDecimalsRetypes(t *testing.T) {
	in := table.MustNew(
		table.NewColumn("x", table.Text("1,25"), table.Missing(), table.Text("-3"), table.Text("2.5e2")),
	)
	out, retyped := RepairDecimals(in)

	assert.Equal(t, []string{"x"}, retyped)
	testutil.AssertCells(t, out, "x", 1.25, nil, -3.0, 250.0)
	col, _ := out.ColumnByName("x")
	assert.Equal(t, table.KindNumeric, col.Kind())
}

func TestRepairDecimalsOnlyBetweenDigits(t *testing.T) {
	in := table.MustNew(
		table.TextColumn("mixed", "1,234", "a, b", "x,1", "1,", "1,234,567"),
	)
	out, retyped := RepairDecimals(in)

	assert.Empty(t, retyped)
	testutil.AssertCells(t, out, "mixed", "1.234", "a, b", "x,1", "1,", "1.234.567")
}

func TestRepairDecimalsKeepsTextWhenAnyCellFails(t *testing.T) {
	in := table.MustNew(
		table.TextColumn("v", "1,5", "2,0 mm", "7"),
		table.NewColumn("allMissing", table.Missing(), table.Missing(), table.Missing()),
		table.NumberColumn("n", 1, 2, 3),
	)
	out, retyped := RepairDecimals(in)

	assert.Empty(t, retyped)
	testutil.AssertCells(t, out, "v", "1.5", "2.0 mm", "7")
	testutil.AssertCells(t, out, "allMissing", nil, nil, nil)
	testutil.AssertCells(t, out, "n", 1.0, 2.0, 3.0)
}

func TestRepairDecimalsRejectsSpecialFloats(t *testing.T) {
	in := table.MustNew(table.TextColumn("v", "1", "inf"))
	_, retyped := RepairDecimals(in)
	assert.Empty(t, retyped)

	in = table.MustNew(table.TextColumn("v", "1", "NaN"))
	_, retyped = RepairDecimals(in)
	assert.Empty(t, retyped)
}

func TestDecimalRepairerApply(t *testing.T) {
	d := NewDecimalRepairer(testutil.TestLogger(t))
	assert.Equal(t, NameRepairDecimals, d.Name())

	in := testutil.Table(t, []string{"price"}, []string{"3,99"}, []string{"0,5"})
	out, err := d.Apply(context.Background(), in)
	require.NoError(t, err)
	testutil.AssertCells(t, out, "price", 3.99, 0.5)
	testutil.AssertCells(t, in, "price", "3,99", "0,5")
}
