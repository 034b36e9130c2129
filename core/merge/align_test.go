package merge

import (
	"testing"

	"table-steward/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign_ReordersAndDiffs(t *testing.T) {
	baseline := []string{"Name", "Class", "Score"}
	src, err := table.ReadCSV([]byte("Class,Name,Score,Bonus\n1A,Ann,90,5\n1B,Bob,85,3\n"))
	require.NoError(t, err)

	aligned, missing, extra := Align(baseline, src)

	assert.Equal(t, baseline, aligned.Columns)
	assert.Empty(t, missing)
	assert.Equal(t, []string{"Bonus"}, extra)
	assert.Equal(t, 2, aligned.RowCount())
	assert.Equal(t, "Ann", aligned.Cell(0, "Name").Value)
	assert.Equal(t, "1B", aligned.Cell(1, "Class").Value)
}

func TestAlign_FillsMissingWithAbsent(t *testing.T) {
	baseline := []string{"Name", "Class", "Score"}
	src, err := table.ReadCSV([]byte("Name,Score\nAnn,90\n"))
	require.NoError(t, err)

	aligned, missing, extra := Align(baseline, src)

	assert.Equal(t, []string{"Class"}, missing)
	assert.Empty(t, extra)
	assert.True(t, aligned.Cell(0, "Class").Absent)
	assert.Equal(t, "90", aligned.Cell(0, "Score").Value)
}

func TestAlign_DoesNotMutateInput(t *testing.T) {
	src, err := table.ReadCSV([]byte("B,A\n2,1\n"))
	require.NoError(t, err)

	aligned, _, _ := Align([]string{"A", "B"}, src)
	aligned.Cols[0][0] = table.String("mutated")

	assert.Equal(t, []string{"B", "A"}, src.Columns)
	assert.Equal(t, "1", src.Cell(0, "A").Value)
}

func TestAlign_Idempotent(t *testing.T) {
	baseline := []string{"Name", "Score"}
	src, err := table.ReadCSV([]byte("Score,Name,Extra\n90,Ann,x\n"))
	require.NoError(t, err)

	once, _, _ := Align(baseline, src)
	twice, missing, extra := Align(baseline, once)

	assert.Empty(t, missing)
	assert.Empty(t, extra)
	assert.Equal(t, once.Columns, twice.Columns)
	assert.Equal(t, once.Cols, twice.Cols)
}
