package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/table"
	"github.com/ajitpratap0/tabclean/pkg/testutil"
)

func TestSplitQuantity(t *testing.T) {
	tests := []struct {
		in        string
		magnitude string
		unit      string
		ok        bool
	}{
		{"12.5 mm", "12.5", "mm", true},
		{"  3,5kg ", "3.5", "kg", true},
		{"20 °C", "20", "°C", true},
		{"20°C", "20", "°C", true},
		{"5µm", "5", "µm", true},
		{"5 μm", "5", "μm", true},
		{"50 %", "50", "%", true},
		{"12.5\u00a0mm", "12.5", "mm", true},
		{"12,5\u202fmm", "12.5", "mm", true},
		{"12.5\u2009kg", "12.5", "kg", true},
		{"\u00a07 h\u00a0", "7", "h", true},
		{"7. h", "7.", "h", true},
		{"12", "", "", false},
		{"mm", "", "", false},
		{"-5 mm", "", "", false},
		{"1.5e3 m", "", "", false},
		{"5 m/s", "", "", false},
		{"12 mm extra", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			mag, unit, ok := SplitQuantity(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.magnitude, mag)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestExtractUnitsSplitsInPlace(t *testing.T) {
	in := table.MustNew(
		table.TextColumn("id", "a", "b", "c", "d"),
		table.NewColumn("size", table.Text("12.5 mm"), table.Missing(), table.Text("3,5 cm"), table.Text("large")),
		table.NumberColumn("count", 1, 2, 3, 4),
	)
	out, split, err := ExtractUnits(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"size"}, split)
	assert.Equal(t, []string{"id", "size_value", "size_unit", "count"}, out.Names())
	testutil.AssertCells(t, out, "size_value", 12.5, nil, 3.5, nil)
	testutil.AssertCells(t, out, "size_unit", "mm", nil, "cm", nil)
	testutil.AssertCells(t, out, "id", "a", "b", "c", "d")
	testutil.AssertCells(t, out, "count", 1.0, 2.0, 3.0, 4.0)
}

func TestExtractUnitsAfterTagging(t *testing.T) {
	in := testutil.Table(t, []string{"len"}, []string{"12.5 mm"}, []string{"N/A"})
	tagged, _ := TagMissing(in)
	out, _, err := ExtractUnits(tagged)
	require.NoError(t, err)

	testutil.AssertCells(t, out, "len_value", 12.5, nil)
	testutil.AssertCells(t, out, "len_unit", "mm", nil)
}

func TestExtractUnitsOneMatchPromotes(t *testing.T) {
	in := table.MustNew(table.TextColumn("note", "n/a", "x", "y", "4 kg", "z"))
	out, split, err := ExtractUnits(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"note"}, split)
	testutil.AssertCells(t, out, "note_value", nil, nil, nil, 4.0, nil)
	testutil.AssertCells(t, out, "note_unit", nil, nil, nil, "kg", nil)
}

func TestExtractUnitsPassThrough(t *testing.T) {
	in := table.MustNew(
		table.TextColumn("name", "alice", "bob"),
		table.NumberColumn("mm", 1, 2),
		table.NewColumn("mixed", table.Text("n/a"), table.Number(3)),
	)
	out, split, err := ExtractUnits(in)
	require.NoError(t, err)

	assert.Empty(t, split)
	assert.True(t, in.Equal(out))
}

func TestExtractUnitsUnicodeSpaces(t *testing.T) {
	in := table.MustNew(table.TextColumn("len", "12.5\u00a0mm", "3\u2009cm"))
	out, err := NewUnitExtractor(nil).Apply(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, []string{"len_value", "len_unit"}, out.Names())
	testutil.AssertCells(t, out, "len_value", 12.5, 3.0)
	testutil.AssertCells(t, out, "len_unit", "mm", "cm")
}

func TestExtractUnitsNameCollision(t *testing.T) {
	in := table.MustNew(
		table.TextColumn("w", "3 kg"),
		table.TextColumn("w_value", "x"),
	)
	_, _, err := ExtractUnits(in)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestUnitExtractorApply(t *testing.T) {
	u := NewUnitExtractor(testutil.TestLogger(t))
	assert.Equal(t, NameExtractUnits, u.Name())

	in := testutil.Table(t, []string{"t"}, []string{"20 °C"}, []string{"68°F"})
	out, err := u.Apply(context.Background(), in)
	require.NoError(t, err)
	testutil.AssertCells(t, out, "t_value", 20.0, 68.0)
	testutil.AssertCells(t, out, "t_unit", "°C", "°F")
	assert.Equal(t, []string{"t"}, in.Names())
}
