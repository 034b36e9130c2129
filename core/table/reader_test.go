package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("scores.csv"))
	assert.True(t, Supported("SCORES.CSV"))
	assert.True(t, Supported("roster.xlsx"))
	assert.False(t, Supported("roster.xls"))
	assert.False(t, Supported("notes.txt"))
	assert.False(t, Supported("noextension"))
}

func TestReadCSV_Basic(t *testing.T) {
	tbl, err := ReadCSV([]byte("Name,Class,Score\nAnn,1A,90\nBob,1B,85\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Class", "Score"}, tbl.Columns)
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "85", tbl.Cell(1, "Score").Value)
}

func TestReadCSV_StripsBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name,Score\nAnn,90\n")...)
	tbl, err := ReadCSV(content)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Score"}, tbl.Columns)
}

func TestReadCSV_RaggedRows(t *testing.T) {
	tbl, err := ReadCSV([]byte("A,B,C\n1\n1,2,3,4\n"))
	require.NoError(t, err)

	require.Equal(t, 2, tbl.RowCount())
	assert.True(t, tbl.Cell(0, "B").Absent)
	assert.True(t, tbl.Cell(0, "C").Absent)
	assert.Equal(t, "3", tbl.Cell(1, "C").Value)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV([]byte(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("data.parquet", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestReadHeader_CSV(t *testing.T) {
	header, err := ReadHeader("x.csv", []byte("Name,Class,Score\nAnn,1A,90\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Class", "Score"}, header)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "Score"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Ann", 90}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Bob", 85}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := Read("scores.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Score"}, tbl.Columns)
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "90", tbl.Cell(0, "Score").Value)
}

func TestReadXLSX_Garbage(t *testing.T) {
	_, err := ReadXLSX([]byte("this is not a zip archive"))
	require.Error(t, err)
}
