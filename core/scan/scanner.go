package scan

import (
	"fmt"
	"strings"

	"table-steward/core/merge"
	"table-steward/core/table"
)

// Scan runs all defect-detection passes over the merged table and returns
// the aggregated manifest. It is stateless and deterministic: the same
// table, report, and configuration always produce the same manifest.
func Scan(t *table.Table, rep *merge.Report, cfg Config) *Manifest {
	defects := []Defect{}
	defects = append(defects, checkNulls(t, rep)...)
	defects = append(defects, checkTypes(t, cfg.NumericColumns)...)
	defects = append(defects, checkDuplicates(t, cfg.CompositeKeyColumns)...)
	defects = append(defects, checkOutliers(t, cfg.NumericColumns, cfg.OutlierColumns)...)
	defects = append(defects, checkPatterns(t, cfg.PatternColumns)...)
	defects = append(defects, checkConstraints(t, cfg.Constraints)...)

	counts := tally(defects)
	return &Manifest{
		Defects: defects,
		Summary: summarize(counts),
		Counts:  counts,
	}
}

func tally(defects []Defect) Counts {
	var c Counts
	for _, d := range defects {
		switch d.Kind {
		case KindNullStructural:
			c.StructuralNulls++
		case KindNullBusiness:
			c.BusinessNulls++
		case KindTypeInconsistent:
			c.TypeErrors++
		case KindDuplicate:
			c.Duplicates++
		case KindOutlier:
			c.Outliers++
		case KindPatternMismatch:
			c.PatternMismatches++
		case KindConstraintViolation:
			c.ConstraintViolations++
		}
	}
	c.Total = len(defects)
	return c
}

// summarize lists the non-zero categories in fixed order.
func summarize(c Counts) string {
	var parts []string
	if c.StructuralNulls > 0 {
		parts = append(parts, fmt.Sprintf("%d structural nulls (columns filled during merge)", c.StructuralNulls))
	}
	if c.BusinessNulls > 0 {
		parts = append(parts, fmt.Sprintf("%d business nulls", c.BusinessNulls))
	}
	if c.TypeErrors > 0 {
		parts = append(parts, fmt.Sprintf("%d type inconsistencies", c.TypeErrors))
	}
	if c.Duplicates > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicates", c.Duplicates))
	}
	if c.Outliers > 0 {
		parts = append(parts, fmt.Sprintf("%d outliers", c.Outliers))
	}
	if c.PatternMismatches > 0 {
		parts = append(parts, fmt.Sprintf("%d pattern mismatches", c.PatternMismatches))
	}
	if c.ConstraintViolations > 0 {
		parts = append(parts, fmt.Sprintf("%d constraint violations", c.ConstraintViolations))
	}
	if len(parts) == 0 {
		return "no defects found"
	}
	return "found " + strings.Join(parts, ", ")
}
