// Package merge implements the schema-alignment merge engine.
//
// The engine reconciles multiple tabular files that are expected to share a
// schema but may differ in column order, completeness, or naming. The first
// file's columns become the baseline unless the caller overrides them; every
// other file is re-indexed onto the baseline, with missing columns filled as
// absent and unmatched columns dropped.
//
// # Strategies
//
//   - Stack (default): aligned tables are concatenated vertically.
//   - Key-joined: the first file anchors the result; subsequent files are
//     left-joined onto it by the configured primary key columns, with a match
//     rate audited per joined file.
//
// # Report as contract
//
// Merge returns a Report describing every input file: row counts, missing and
// extra columns, per-file status, and join match rates. The report is the
// only carrier of "why is this cell empty" information; the health scanner
// consumes it to attribute nulls to the merge or to the source data.
//
// Expected data-quality anomalies are recorded on the report, never returned
// as errors. The only fatal conditions are an empty input list and a first
// file that is unreadable or has duplicate column names.
package merge
