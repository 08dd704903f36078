package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.25", 1.25, true},
		{"  42 ", 42, true},
		{"-3", -3, true},
		{"+0.5", 0.5, true},
		{".5", 0.5, true},
		{"12.", 12, true},
		{"1e3", 1000, true},
		{"2.5E-1", 0.25, true},
		{"", 0, false},
		{"   ", 0, false},
		{"1,25", 0, false},
		{"1.234.567", 0, false},
		{"12 mm", 0, false},
		{"0x1p-2", 0, false},
		{"1_000", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"1e400", 0, false},
		{".", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res := Parse(tt.in)
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.in, res.Original)
			if tt.ok {
				assert.Equal(t, tt.want, res.Value)
			} else {
				assert.Zero(t, res.Value)
			}
		})
	}
}

func TestRepairDecimalComma(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1,25", "1.25"},
		{"1,234", "1.234"},
		{"1,234,567", "1.234.567"},
		{"12,5 mm", "12.5 mm"},
		{"a, b", "a, b"},
		{"1, 2", "1, 2"},
		{",5", ",5"},
		{"5,", "5,"},
		{"x,1", "x,1"},
		{"no commas", "no commas"},
		{"°C 3,5", "°C 3.5"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairDecimalComma(tt.in))
		})
	}
}

func TestRepairThenParse(t *testing.T) {
	res := Parse(RepairDecimalComma("1,25"))
	assert.True(t, res.OK)
	assert.Equal(t, 1.25, res.Value)
}
