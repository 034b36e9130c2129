package scan

import (
	"fmt"
	"strings"

	"table-steward/core/merge"
	"table-steward/core/table"
)

// checkNulls classifies every empty cell. A null is structural when the
// cell's column is listed as missing for the file that produced the row;
// otherwise the source data genuinely lacks the value.
func checkNulls(t *table.Table, rep *merge.Report) []Defect {
	var out []Defect
	missingByFile := rep.MissingColumnsByFile()
	for row := 0; row < t.RowCount(); row++ {
		fileIdx := rep.FileForRow(row)
		var missing map[string]struct{}
		if fileIdx < len(missingByFile) {
			missing = missingByFile[fileIdx]
		}
		for _, col := range t.Columns {
			if !table.IsEmpty(t.Cell(row, col)) {
				continue
			}
			if _, ok := missing[col]; ok {
				out = append(out, Defect{
					RowIndex: row,
					Column:   col,
					Kind:     KindNullStructural,
					Severity: SeverityStructural,
					Message:  "column was missing from the source file and filled during merge",
				})
			} else {
				out = append(out, Defect{
					RowIndex: row,
					Column:   col,
					Kind:     KindNullBusiness,
					Severity: SeverityBusiness,
					Message:  "empty value in source data",
				})
			}
		}
	}
	return out
}

// checkTypes flags non-empty cells in numeric columns that do not parse as
// numbers. Percentage notation ("50%") counts as numeric.
func checkTypes(t *table.Table, numericCols []string) []Defect {
	var out []Defect
	for _, col := range numericCols {
		cells, ok := t.Column(col)
		if !ok {
			continue
		}
		for row, c := range cells {
			if table.IsEmpty(c) || table.IsNumericCell(c) {
				continue
			}
			out = append(out, Defect{
				RowIndex: row,
				Column:   col,
				Kind:     KindTypeInconsistent,
				Severity: SeverityBusiness,
				Message:  fmt.Sprintf("expected a number, got: %s", truncate(c.Value, 50)),
			})
		}
	}
	return out
}

// checkDuplicates flags the second and later occurrences of an identical
// composite key. First seen wins and is never flagged.
func checkDuplicates(t *table.Table, keyCols []string) []Defect {
	present := []string{}
	for _, c := range keyCols {
		if t.ColumnIndex(c) >= 0 {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return nil
	}

	var out []Defect
	seen := make(map[string]struct{})
	colName := strings.Join(present, ",")
	for row := 0; row < t.RowCount(); row++ {
		parts := make([]string, len(present))
		for i, c := range present {
			cell := t.Cell(row, c)
			if !cell.Absent {
				parts[i] = cell.Value
			}
		}
		key := strings.Join(parts, "\x1f")
		if _, dup := seen[key]; dup {
			out = append(out, Defect{
				RowIndex: row,
				Column:   colName,
				Kind:     KindDuplicate,
				Severity: SeverityBusiness,
				Message:  fmt.Sprintf("duplicate of an earlier row on composite key [%s]", colName),
			})
		} else {
			seen[key] = struct{}{}
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
