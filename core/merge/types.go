package merge

import "table-steward/core/table"

// Status classifies the outcome of processing one input file.
type Status string

const (
	// StatusOK marks a file that was aligned and included in the merge.
	StatusOK Status = "ok"
	// StatusReadError marks a file that could not be decoded.
	StatusReadError Status = "read_error"
	// StatusFatalMismatch marks a file with zero column overlap against the
	// baseline. The file is excluded but the merge continues.
	StatusFatalMismatch Status = "fatal_mismatch"
)

// TableEntry records how one input file was reconciled against the baseline.
// Entries are append-only; once added to a Report they are never mutated.
type TableEntry struct {
	// File is the input file name.
	File string `json:"file"`

	// RowCount is the number of data rows read from the file.
	RowCount int `json:"row_count"`

	// MissingColumns lists baseline columns absent from this file,
	// in baseline order.
	MissingColumns []string `json:"missing_columns"`

	// ExtraColumns lists this file's columns absent from the baseline,
	// in the file's own order.
	ExtraColumns []string `json:"extra_columns"`

	// Status is the processing outcome for this file.
	Status Status `json:"status"`

	// MatchRate is the fraction of the anchor file's keys found in this
	// file. Only set for joined files under the key-joined strategy.
	MatchRate *float64 `json:"match_rate"`

	// Message carries a human-readable note for degraded entries.
	Message string `json:"message,omitempty"`
}

// Report is the reconciliation report built across a merge pass. It is the
// contract between the merge engine and the health scanner.
type Report struct {
	// ReferenceFile is the name of the baseline (first) file.
	ReferenceFile string `json:"reference_file"`

	// ReferenceColumns is the canonical column order of the merged table.
	ReferenceColumns []string `json:"reference_columns"`

	// Tables holds one entry per input file, in processing order.
	Tables []TableEntry `json:"tables"`

	// MergedRowCount is the row count of the merged table.
	MergedRowCount int `json:"merged_row_count"`

	// FatalMismatchCount is the number of files excluded for having no
	// column overlap with the baseline.
	FatalMismatchCount int `json:"fatal_mismatch_count"`

	// MergeWarning is set once when any join match rate falls below the
	// warning threshold.
	MergeWarning string `json:"merge_warning,omitempty"`

	// Error is set only for the fatal conditions: empty input, or a first
	// file that is unreadable or has duplicate column names.
	Error string `json:"error,omitempty"`
}

// MissingColumnsByFile returns, per file index, the set of baseline columns
// the file was missing. The scanner uses it to classify merge-induced nulls.
func (r *Report) MissingColumnsByFile() []map[string]struct{} {
	out := make([]map[string]struct{}, len(r.Tables))
	for i, t := range r.Tables {
		set := make(map[string]struct{}, len(t.MissingColumns))
		for _, c := range t.MissingColumns {
			set[c] = struct{}{}
		}
		out[i] = set
	}
	return out
}

// FileForRow maps a row index in the merged table back to the index of the
// file that produced it, by scanning cumulative row counts in report order.
// Skipped files contribute no rows to the merged table, so only ok entries
// advance the offset. Only meaningful for stack-strategy merges, where rows
// are concatenated.
func (r *Report) FileForRow(row int) int {
	cum := 0
	for i, t := range r.Tables {
		if t.Status != StatusOK {
			continue
		}
		if row < cum+t.RowCount {
			return i
		}
		cum += t.RowCount
	}
	return 0
}

// File is one merge input: a named table, or a read failure.
type File struct {
	// Name is the input file name. Files are processed in slice order;
	// callers sort by name for reproducibility.
	Name string

	// Table is the decoded table. Nil when ReadErr is set.
	Table *table.Table

	// ReadErr records a decode failure for this file.
	ReadErr error
}

// FileFromBytes decodes a byte stream into a merge input. Decode failures
// are captured on the File rather than returned, so the engine can record
// them as per-file degradations.
func FileFromBytes(name string, content []byte) File {
	t, err := table.Read(name, content)
	if err != nil {
		return File{Name: name, ReadErr: err}
	}
	return File{Name: name, Table: t}
}

// Options controls a merge operation.
type Options struct {
	// BaselineColumns overrides the baseline instead of using the first
	// file's own columns.
	BaselineColumns []string

	// PrimaryKeyColumns switches the strategy to key-joined when non-empty.
	PrimaryKeyColumns []string

	// Incremental unions all input columns into the baseline up front:
	// baseline columns first, newly discovered columns sorted after.
	Incremental bool
}
