package scan

import (
	"fmt"
	"sort"

	"table-steward/core/table"
)

// minOutlierSamples is the minimum number of parsed numeric values a column
// needs before IQR bounds are meaningful.
const minOutlierSamples = 4

const iqrFactor = 1.5

// checkOutliers runs IQR outlier detection over the union of the numeric and
// outlier columns. Columns with too few parseable values are skipped; a
// degenerate IQR of zero collapses the bounds to [Q1, Q3].
func checkOutliers(t *table.Table, numericCols, outlierCols []string) []Defect {
	var out []Defect
	for _, col := range unionColumns(numericCols, outlierCols) {
		cells, ok := t.Column(col)
		if !ok {
			continue
		}
		var values []float64
		for _, c := range cells {
			if f, ok := table.CellFloat(c); ok {
				values = append(values, f)
			}
		}
		lower, upper, ok := outlierBounds(values)
		if !ok {
			continue
		}
		for row, c := range cells {
			f, ok := table.CellFloat(c)
			if !ok {
				continue
			}
			if f < lower || f > upper {
				out = append(out, Defect{
					RowIndex: row,
					Column:   col,
					Kind:     KindOutlier,
					Severity: SeverityBusiness,
					Message:  fmt.Sprintf("value %s is outside the column's normal range [%g, %g]", c.Value, lower, upper),
				})
			}
		}
	}
	return out
}

// unionColumns merges the two lists preserving first-seen order.
func unionColumns(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, c := range append(append([]string{}, a...), b...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// outlierBounds computes [Q1 - 1.5*IQR, Q3 + 1.5*IQR] over the values.
// Returns ok=false when fewer than minOutlierSamples values are available.
func outlierBounds(values []float64) (lower, upper float64, ok bool) {
	if len(values) < minOutlierSamples {
		return 0, 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	if iqr == 0 {
		return q1, q3, true
	}
	return q1 - iqrFactor*iqr, q3 + iqrFactor*iqr, true
}

// quantile computes the q-th quantile of sorted values using linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
