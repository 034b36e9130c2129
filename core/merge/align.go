package merge

import "table-steward/core/table"

// Align re-indexes a table onto the baseline column sequence.
//
// The aligned table has exactly the baseline columns in baseline order:
// columns present in both are copied verbatim, missing columns are filled
// with absent cells, and columns outside the baseline are dropped. The input
// table is never mutated.
//
// missing preserves baseline order; extra preserves the table's own order.
func Align(baseline []string, t *table.Table) (aligned *table.Table, missing, extra []string) {
	actual := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		actual[c] = struct{}{}
	}
	baseSet := make(map[string]struct{}, len(baseline))
	for _, c := range baseline {
		baseSet[c] = struct{}{}
	}

	missing = []string{}
	for _, c := range baseline {
		if _, ok := actual[c]; !ok {
			missing = append(missing, c)
		}
	}
	extra = []string{}
	for _, c := range t.Columns {
		if _, ok := baseSet[c]; !ok {
			extra = append(extra, c)
		}
	}

	rows := t.RowCount()
	aligned = table.New(baseline)
	for i, name := range baseline {
		if src, ok := t.Column(name); ok {
			aligned.Cols[i] = append([]table.Cell(nil), src...)
			continue
		}
		col := make([]table.Cell, rows)
		for r := range col {
			col[r] = table.Absent()
		}
		aligned.Cols[i] = col
	}
	return aligned, missing, extra
}
