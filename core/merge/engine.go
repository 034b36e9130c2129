package merge

import (
	"math"
	"sort"
	"strings"

	"table-steward/core/table"
)

// MatchRateWarnThreshold is the join match rate below which a merge-level
// warning is recorded.
const MatchRateWarnThreshold = 0.8

// keySep joins key column values into one composite key. Unit separator,
// so tuples like ("a,b", "c") and ("a", "b,c") stay distinct.
const keySep = "\x1f"

// Merge reconciles the input files against a baseline column sequence and
// combines them under the chosen strategy. It always returns a best-effort
// merged table plus a report describing every anomaly; the report's Error
// field is set only for the unrecoverable conditions (empty input, broken
// first file), in which case the table is empty.
func Merge(files []File, opts Options) (*table.Table, *Report) {
	if len(files) == 0 {
		return table.New(nil), &Report{
			Tables: []TableEntry{},
			Error:  "no input files",
		}
	}

	rep := &Report{
		ReferenceFile:    files[0].Name,
		ReferenceColumns: []string{},
		Tables:           []TableEntry{},
	}
	baseline := append([]string(nil), opts.BaselineColumns...)
	keyCols := opts.PrimaryKeyColumns

	if opts.Incremental {
		baseline = incrementalBaseline(files, baseline)
	}

	type keptTable struct {
		t     *table.Table
		entry int
	}
	var kept []keptTable

	for i, f := range files {
		entry := TableEntry{
			File:           f.Name,
			MissingColumns: []string{},
			ExtraColumns:   []string{},
			Status:         StatusOK,
		}

		if f.ReadErr != nil {
			entry.Status = StatusReadError
			entry.Message = f.ReadErr.Error()
			rep.Tables = append(rep.Tables, entry)
			if i == 0 {
				rep.Error = "reference file could not be read: " + f.ReadErr.Error()
				return table.New(nil), rep
			}
			continue
		}

		t := f.Table
		if len(keyCols) > 0 {
			t = stripKeyColumns(t, keyCols)
		}
		entry.RowCount = t.RowCount()

		if i == 0 {
			if t.HasDuplicateColumns() {
				rep.ReferenceColumns = append([]string(nil), t.Columns...)
				rep.Error = "reference file has duplicate column names; cannot merge"
				return table.New(nil), rep
			}
			if len(baseline) == 0 {
				baseline = append([]string(nil), t.Columns...)
			}
			rep.ReferenceColumns = append([]string(nil), baseline...)

			entry.MissingColumns, entry.ExtraColumns = columnDiff(baseline, t.Columns)
			rep.Tables = append(rep.Tables, entry)

			if len(keyCols) > 0 && opts.Incremental {
				// Keep the anchor's own columns so that incremental
				// columns arriving in later files can still be joined in.
				kept = append(kept, keptTable{t: t.Clone(), entry: 0})
			} else {
				aligned, _, _ := Align(baseline, t)
				kept = append(kept, keptTable{t: aligned, entry: 0})
			}
			continue
		}

		missing, extra := columnDiff(baseline, t.Columns)
		if overlapEmpty(baseline, missing) {
			entry.Status = StatusFatalMismatch
			entry.MissingColumns = append([]string(nil), baseline...)
			entry.ExtraColumns = append([]string(nil), t.Columns...)
			entry.Message = "no columns in common with the reference file; table skipped"
			rep.Tables = append(rep.Tables, entry)
			rep.FatalMismatchCount++
			continue
		}

		entry.MissingColumns = missing
		entry.ExtraColumns = extra
		rep.Tables = append(rep.Tables, entry)

		aligned, _, _ := Align(baseline, t)
		kept = append(kept, keptTable{t: aligned, entry: len(rep.Tables) - 1})
	}

	if len(kept) == 0 {
		rep.MergedRowCount = 0
		return table.New(rep.ReferenceColumns), rep
	}

	var result *table.Table
	keyUse := presentColumns(keyCols, kept[0].t)
	if len(keyUse) > 0 {
		anchor := kept[0].t
		left := anchor.Clone()
		for _, k := range kept[1:] {
			mergeOn := presentColumns(keyUse, k.t)
			if len(mergeOn) == 0 {
				continue
			}
			left = leftJoin(left, k.t, mergeOn)

			matched := countMatchedKeys(anchor, k.t, mergeOn)
			rate := 1.0
			if anchor.RowCount() > 0 {
				rate = float64(matched) / float64(anchor.RowCount())
			}
			rate = math.Round(rate*10000) / 10000
			rep.Tables[k.entry].MatchRate = &rate
			if rate < MatchRateWarnThreshold && rep.MergeWarning == "" {
				rep.MergeWarning = "a large share of primary keys could not be matched; check for column naming or value format mismatches"
			}
		}
		// Re-project onto the baseline order so the column sequence is
		// deterministic regardless of join mechanics.
		result, _, _ = Align(rep.ReferenceColumns, left)
	} else {
		tables := make([]*table.Table, len(kept))
		for i, k := range kept {
			tables[i] = k.t
		}
		result = stack(rep.ReferenceColumns, tables)
	}

	rep.MergedRowCount = result.RowCount()
	return result, rep
}

// incrementalBaseline unions every readable file's columns into the baseline:
// baseline columns first, newly discovered columns after, in sorted order.
func incrementalBaseline(files []File, explicit []string) []string {
	all := make(map[string]struct{})
	for _, f := range files {
		if f.Table == nil {
			continue
		}
		for _, c := range f.Table.Columns {
			all[c] = struct{}{}
		}
	}
	baseline := append([]string(nil), explicit...)
	if len(baseline) == 0 && files[0].Table != nil {
		baseline = append(baseline, files[0].Table.Columns...)
	}
	inBase := make(map[string]struct{}, len(baseline))
	for _, c := range baseline {
		inBase[c] = struct{}{}
	}
	var extras []string
	for c := range all {
		if _, ok := inBase[c]; !ok {
			extras = append(extras, c)
		}
	}
	sort.Strings(extras)
	return append(baseline, extras...)
}

// columnDiff computes baseline columns missing from actual (baseline order)
// and actual columns outside the baseline (actual order).
func columnDiff(baseline, actual []string) (missing, extra []string) {
	actualSet := make(map[string]struct{}, len(actual))
	for _, c := range actual {
		actualSet[c] = struct{}{}
	}
	baseSet := make(map[string]struct{}, len(baseline))
	for _, c := range baseline {
		baseSet[c] = struct{}{}
	}
	missing = []string{}
	for _, c := range baseline {
		if _, ok := actualSet[c]; !ok {
			missing = append(missing, c)
		}
	}
	extra = []string{}
	for _, c := range actual {
		if _, ok := baseSet[c]; !ok {
			extra = append(extra, c)
		}
	}
	return missing, extra
}

// overlapEmpty reports whether the file shares no columns with the baseline,
// i.e. every distinct baseline column is missing.
func overlapEmpty(baseline, missing []string) bool {
	distinct := make(map[string]struct{}, len(baseline))
	for _, c := range baseline {
		distinct[c] = struct{}{}
	}
	return len(missing) == len(distinct) && len(distinct) > 0
}

// presentColumns filters names to those present in the table, keeping order.
func presentColumns(names []string, t *table.Table) []string {
	var out []string
	for _, n := range names {
		if t.ColumnIndex(n) >= 0 {
			out = append(out, n)
		}
	}
	return out
}

// stripKeyColumns trims surrounding whitespace on the key columns so joins
// are not defeated by invisible characters. Returns a new table.
func stripKeyColumns(t *table.Table, keyCols []string) *table.Table {
	out := t.Clone()
	for _, name := range keyCols {
		i := out.ColumnIndex(name)
		if i < 0 {
			continue
		}
		for r, c := range out.Cols[i] {
			if !c.Absent {
				out.Cols[i][r] = table.String(strings.TrimSpace(c.Value))
			}
		}
	}
	return out
}

// rowKey builds the composite key of one row over the given columns.
// Absent cells contribute an empty component.
func rowKey(t *table.Table, row int, cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		cell := t.Cell(row, c)
		if !cell.Absent {
			parts[i] = cell.Value
		}
	}
	return strings.Join(parts, keySep)
}

// leftJoin joins right onto left by the key columns. Left rows are preserved
// exactly; only right columns not already present on the left are carried
// over, and duplicate right keys are dropped (first occurrence wins).
func leftJoin(left, right *table.Table, mergeOn []string) *table.Table {
	inLeft := make(map[string]struct{}, len(left.Columns))
	for _, c := range left.Columns {
		inLeft[c] = struct{}{}
	}
	var rightOnly []string
	for _, c := range right.Columns {
		if _, ok := inLeft[c]; !ok {
			rightOnly = append(rightOnly, c)
		}
	}
	if len(rightOnly) == 0 {
		return left
	}

	// First occurrence wins on duplicate right keys.
	index := make(map[string]int, right.RowCount())
	for r := 0; r < right.RowCount(); r++ {
		key := rowKey(right, r, mergeOn)
		if _, ok := index[key]; !ok {
			index[key] = r
		}
	}

	out := left.Clone()
	rows := out.RowCount()
	for _, name := range rightOnly {
		col := make([]table.Cell, rows)
		for r := 0; r < rows; r++ {
			if rr, ok := index[rowKey(left, r, mergeOn)]; ok {
				col[r] = right.Cell(rr, name)
			} else {
				col[r] = table.Absent()
			}
		}
		out.Columns = append(out.Columns, name)
		out.Cols = append(out.Cols, col)
	}
	return out
}

// countMatchedKeys counts the distinct anchor keys also present in the
// joined file. Distinct keys, not rows: the rate must not double-count
// anchor rows that repeat a key.
func countMatchedKeys(anchor, right *table.Table, mergeOn []string) int {
	rightKeys := make(map[string]struct{}, right.RowCount())
	for r := 0; r < right.RowCount(); r++ {
		rightKeys[rowKey(right, r, mergeOn)] = struct{}{}
	}
	anchorKeys := make(map[string]struct{}, anchor.RowCount())
	for r := 0; r < anchor.RowCount(); r++ {
		anchorKeys[rowKey(anchor, r, mergeOn)] = struct{}{}
	}
	matched := 0
	for k := range anchorKeys {
		if _, ok := rightKeys[k]; ok {
			matched++
		}
	}
	return matched
}

// stack concatenates the tables vertically after aligning each one onto the
// baseline, preserving per-file row order.
func stack(baseline []string, items []*table.Table) *table.Table {
	out := table.New(baseline)
	for _, item := range items {
		aligned, _, _ := Align(baseline, item)
		for i := range out.Cols {
			out.Cols[i] = append(out.Cols[i], aligned.Cols[i]...)
		}
	}
	return out
}
