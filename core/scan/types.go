package scan

// Severity classifies a defect as merge-induced or source-induced.
type Severity string

const (
	// SeverityStructural marks defects manufactured by the merge itself.
	SeverityStructural Severity = "structural"
	// SeverityBusiness marks defects present in the source data.
	SeverityBusiness Severity = "business"
)

// Kind identifies one of the fixed defect categories.
type Kind string

const (
	KindNullStructural      Kind = "null_structural"
	KindNullBusiness        Kind = "null_business"
	KindTypeInconsistent    Kind = "type_inconsistent"
	KindDuplicate           Kind = "duplicate"
	KindOutlier             Kind = "outlier"
	KindPatternMismatch     Kind = "pattern_mismatch"
	KindConstraintViolation Kind = "constraint_violation"
)

// Defect is one finding. Defects are write-once outputs and are never
// deduplicated across passes.
type Defect struct {
	// RowIndex is the 0-based row in the merged table.
	RowIndex int `json:"row_index"`

	// Column is the column name, or a composite descriptor such as
	// "Score vs Bonus" for cross-column constraints.
	Column string `json:"col_name"`

	// Kind is the defect category.
	Kind Kind `json:"error_type"`

	// Severity is structural or business.
	Severity Severity `json:"severity"`

	// Message is a human-readable explanation.
	Message string `json:"message"`
}

// Constraint is a cross-column numeric rule: left op right must hold.
// Supported operators: > < >= <= = (== is accepted as a spelling of =).
type Constraint struct {
	Left  string `json:"left"`
	Op    string `json:"op"`
	Right string `json:"right"`
}

// Config controls which checks run and over which columns. The scanner
// consumes this as-is and does not care how it was derived.
type Config struct {
	// CompositeKeyColumns define the key tuple for the duplicate check.
	CompositeKeyColumns []string `json:"composite_key_columns"`

	// NumericColumns are checked for type consistency and outliers.
	NumericColumns []string `json:"numeric_columns"`

	// OutlierColumns are additionally checked for outliers. May overlap
	// with NumericColumns.
	OutlierColumns []string `json:"outlier_columns"`

	// PatternColumns maps a column name to a regular expression its
	// non-empty values must match.
	PatternColumns map[string]string `json:"pattern_columns"`

	// Constraints are cross-column numeric rules.
	Constraints []Constraint `json:"constraints"`
}

// Counts tallies defects per kind.
type Counts struct {
	StructuralNulls      int `json:"structural_nulls"`
	BusinessNulls        int `json:"business_nulls"`
	TypeErrors           int `json:"type_errors"`
	Duplicates           int `json:"duplicates"`
	Outliers             int `json:"outliers"`
	PatternMismatches    int `json:"pattern_mismatch"`
	ConstraintViolations int `json:"constraint_violation"`
	Total                int `json:"total"`
}

// Manifest is the scanner's output: every defect, per-kind counts, and a
// readable summary.
type Manifest struct {
	Defects []Defect `json:"errors"`
	Summary string   `json:"summary"`
	Counts  Counts   `json:"counts"`
}
