package stages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabclean/pkg/table"
	"github.com/ajitpratap0/tabclean/pkg/testutil"
)

func TestIsSentinel(t *testing.T) {
	for _, s := range []string{"", "   ", "na", "n/a", "null", "none", "?", "-", "."} {
		for _, variant := range []string{s, strings.ToUpper(s), " " + s + "\t"} {
			assert.True(t, IsSentinel(variant), "%q", variant)
		}
	}
	for _, s := range []string{"Na", "nUlL", "N/a", "NoNe"} {
		assert.True(t, IsSentinel(s), "%q", s)
	}
	for _, s := range []string{"nan", "n.a.", "nah", "none!", "--", "0", "-1", ".5", "not null", "NA NA"} {
		assert.False(t, IsSentinel(s), "%q", s)
	}
}

func TestTagMissing(t *testing.T) {
	in := table.MustNew(
		table.TextColumn("a", "NA", "N/A", "Null", "value", "None", "?"),
		table.TextColumn("b", "-", ".", "  ", "n/a x", "na", "x"),
		table.NumberColumn("c", 1, 2, 3, 4, 5, 6),
	)
	out, tagged := TagMissing(in)

	assert.Equal(t, 9, tagged)
	testutil.AssertCells(t, out, "a", nil, nil, nil, "value", nil, nil)
	testutil.AssertCells(t, out, "b", nil, nil, nil, "n/a x", nil, "x")
	testutil.AssertCells(t, out, "c", 1.0, 2.0, 3.0, 4.0, 5.0, 6.0)
	testutil.AssertCells(t, in, "a", "NA", "N/A", "Null", "value", "None", "?")
}

func TestTagMissingIdempotent(t *testing.T) {
	in := testutil.Table(t, []string{"a"}, []string{"NULL"}, []string{"3 mm"})
	once, _ := TagMissing(in)
	twice, tagged := TagMissing(once)

	assert.Equal(t, 0, tagged)
	assert.True(t, once.Equal(twice))
}

func TestMissingTaggerApply(t *testing.T) {
	m := NewMissingTagger(testutil.TestLogger(t))
	assert.Equal(t, NameTagMissing, m.Name())

	out, err := m.Apply(context.Background(), testutil.Table(t, []string{"a"}, []string{"none"}, []string{"1"}))
	require.NoError(t, err)
	testutil.AssertCells(t, out, "a", nil, "1")
}
