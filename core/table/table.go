package table

// Cell is a single table value. Absent cells mark positions that have no
// source value at all, typically because a merge filled in a missing column.
type Cell struct {
	Value  string `json:"value"`
	Absent bool   `json:"absent,omitempty"`
}

// Absent returns a cell with no value.
func Absent() Cell {
	return Cell{Absent: true}
}

// String returns a cell holding the given text.
func String(v string) Cell {
	return Cell{Value: v}
}

// Table is an ordered sequence of named columns of equal length.
// Cols is parallel to Columns: Cols[i] holds the cells of Columns[i].
// Duplicate column names can occur in freshly decoded input; the merge
// engine rejects them where they matter.
type Table struct {
	Columns []string
	Cols    [][]Cell
}

// New creates an empty table with the given column names.
func New(columns []string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Cols:    make([][]Cell, len(columns)),
	}
	return t
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return len(t.Cols[0])
}

// ColumnIndex returns the index of the first column with the given name,
// or -1 if no such column exists.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the cells of the first column with the given name.
// The second return value reports whether the column exists.
func (t *Table) Column(name string) ([]Cell, bool) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil, false
	}
	return t.Cols[i], true
}

// Cell returns the cell at the given row in the named column.
// An absent cell is returned for unknown columns or out-of-range rows.
func (t *Table) Cell(row int, name string) Cell {
	i := t.ColumnIndex(name)
	if i < 0 || row < 0 || row >= len(t.Cols[i]) {
		return Absent()
	}
	return t.Cols[i][row]
}

// AppendRow appends one row of cells. Short rows are padded with absent
// cells and long rows are truncated to the column count.
func (t *Table) AppendRow(cells []Cell) {
	for i := range t.Cols {
		if i < len(cells) {
			t.Cols[i] = append(t.Cols[i], cells[i])
		} else {
			t.Cols[i] = append(t.Cols[i], Absent())
		}
	}
}

// HasDuplicateColumns reports whether any column name occurs more than once.
func (t *Table) HasDuplicateColumns() bool {
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Cols:    make([][]Cell, len(t.Cols)),
	}
	for i, col := range t.Cols {
		out.Cols[i] = append([]Cell(nil), col...)
	}
	return out
}
