// Package tables provides the HTTP surface for merging tabular uploads and
// scanning the result for data-quality defects.
//
// The feature wires the schema-alignment merge engine (core/merge) and the
// rule-based health scanner (core/scan) behind a small upload workflow aimed
// at data stewards:
//
//  1. POST /tables/analyze-headers uploads a set of CSV/XLSX files, caches
//     them, and returns a header diff plus merge-strategy suggestions and a
//     cache token.
//  2. POST /tables/merge-and-scan consumes the token (or a fresh upload),
//     merges the files, scans the merged table, and returns the
//     reconciliation report, the health manifest, and the merged rows.
//
// # Rule inference
//
// Scanner configuration is proposed from column-name keywords (numeric,
// outlier, date, email). The inference is a replaceable convenience layer:
// the scanner only ever sees the resulting configuration value.
//
// # HTTP Endpoints
//
//   - POST /tables/analyze-headers : header diff + strategy analysis + cache token.
//   - POST /tables/merge-and-scan  : merge, scan, and return the full result.
//   - POST /tables/propose-rules   : proposed rules for a set of columns.
//   - POST /tables/get-scan-rules  : effective scan configuration for a set of columns.
//   - GET  /tables/check-status    : fingerprint of the last successful merge.
package tables
