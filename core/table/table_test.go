package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendRow_PadsAndTruncates(t *testing.T) {
	tbl := New([]string{"A", "B", "C"})

	// Short row gets padded with absent cells
	tbl.AppendRow([]Cell{String("1")})
	// Long row gets truncated to the column count
	tbl.AppendRow([]Cell{String("x"), String("y"), String("z"), String("overflow")})

	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "1", tbl.Cell(0, "A").Value)
	assert.True(t, tbl.Cell(0, "B").Absent)
	assert.True(t, tbl.Cell(0, "C").Absent)
	assert.Equal(t, "z", tbl.Cell(1, "C").Value)
}

func TestCell_UnknownColumnAndOutOfRange(t *testing.T) {
	tbl := New([]string{"A"})
	tbl.AppendRow([]Cell{String("1")})

	assert.True(t, tbl.Cell(0, "Nope").Absent)
	assert.True(t, tbl.Cell(5, "A").Absent)
	assert.True(t, tbl.Cell(-1, "A").Absent)
}

func TestColumnIndex_FirstMatchWins(t *testing.T) {
	tbl := New([]string{"A", "B", "A"})
	assert.Equal(t, 0, tbl.ColumnIndex("A"))
	assert.Equal(t, -1, tbl.ColumnIndex("C"))
	assert.True(t, tbl.HasDuplicateColumns())
}

func TestClone_Independent(t *testing.T) {
	tbl := New([]string{"A"})
	tbl.AppendRow([]Cell{String("original")})

	clone := tbl.Clone()
	clone.Cols[0][0] = String("changed")
	clone.Columns[0] = "Renamed"

	assert.Equal(t, "original", tbl.Cell(0, "A").Value)
	assert.Equal(t, "A", tbl.Columns[0])
}
