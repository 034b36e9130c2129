// Package table provides the in-memory tabular data model shared by the
// merge engine and the health scanner.
//
// All cell values are text. A cell is either a string or explicitly absent;
// absence is a first-class state so that columns filled in during a merge can
// be told apart from empty values present in the source file.
//
// # Readers
//
// The package decodes CSV and XLSX byte streams into Tables. Every column is
// read as text to avoid premature type coercion; numeric interpretation is
// deferred to the percent-aware parser in this package.
//
// # Usage
//
//	t, err := table.Read("scores.csv", content)
//	if err != nil {
//	    return err
//	}
//	v, ok := table.ParseFloat("87.5%") // 87.5, true
package table
