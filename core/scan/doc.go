// Package scan implements the rule-based data health scanner.
//
// The scanner consumes a merged table together with the merge engine's
// reconciliation report and runs seven independent defect-detection passes:
//
//   - Null classification: every empty cell is attributed to the merge
//     (structural) or to the source data (business) using the report's
//     per-file missing-column lists.
//   - Type consistency: configured numeric columns must parse as numbers,
//     percentage notation included.
//   - Duplicates: later occurrences of an identical composite key are flagged.
//   - Outliers: IQR bounds over each numeric column's parsed values.
//   - Pattern: configured regular expressions, partial match on trimmed text.
//   - Cross-column constraints: numeric comparisons between column pairs.
//   - Aggregation: per-kind counts and a readable summary.
//
// Passes are independent by design: the same cell may appear in records from
// several passes. Defects are data, never errors; configuration problems
// (unknown column, invalid regex) silently skip the affected check.
//
// The scanner is configuration-driven and performs no inference of its own;
// see feature/tables for the keyword-based configuration builder.
package scan
