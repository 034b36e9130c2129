package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain integer", "42", 42, true},
		{"decimal", "3.14", 3.14, true},
		{"negative", "-7.5", -7.5, true},
		{"surrounding whitespace", "  12 ", 12, true},
		{"percentage", "50%", 50, true},
		{"percentage with space", " 87.5 % ", 87.5, true},
		{"scientific notation", "1e3", 1000, true},
		{"text", "abc", 0, false},
		{"empty", "", 0, false},
		{"lone percent", "%", 0, false},
		{"nan literal rejected", "NaN", 0, false},
		{"infinity rejected", "Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFloat(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(Absent()))
	assert.True(t, IsEmpty(String("")))
	assert.True(t, IsEmpty(String("   ")))
	assert.True(t, IsEmpty(String("nan")))
	assert.True(t, IsEmpty(String("NaN")))
	assert.True(t, IsEmpty(String("NULL")))
	assert.False(t, IsEmpty(String("0")))
	assert.False(t, IsEmpty(String("none")))
}

func TestIsNumericCell(t *testing.T) {
	// Empty cells pass the check; only non-empty, non-parseable values fail
	assert.True(t, IsNumericCell(Absent()))
	assert.True(t, IsNumericCell(String("nan")))
	assert.True(t, IsNumericCell(String("88")))
	assert.True(t, IsNumericCell(String("50%")))
	assert.False(t, IsNumericCell(String("eighty")))
}

func TestCellFloat_EmptyNeverParses(t *testing.T) {
	_, ok := CellFloat(String("null"))
	assert.False(t, ok)

	v, ok := CellFloat(String("90"))
	assert.True(t, ok)
	assert.Equal(t, 90.0, v)
}
