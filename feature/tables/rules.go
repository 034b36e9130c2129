package tables

import (
	"fmt"
	"strings"

	"table-steward/core/scan"
)

// Default rules applied when the matching columns exist.
var (
	defaultNumericColumns      = []string{"score"}
	defaultCompositeKeyColumns = []string{"name", "class"}
)

// Column-name keywords driving rule inference. Matching is case-insensitive
// substring matching over the trimmed column name.
var (
	// outlierKeywords propose numeric type checks plus IQR outlier monitoring.
	outlierKeywords = []string{"score", "area", "amount", "price", "quantity", "seats", "value"}
	// numericTypeKeywords propose the type check only.
	numericTypeKeywords = []string{"floor", "level", "index", "serial"}
	dateKeywords        = []string{"date", "time", "created", "updated"}
	emailKeywords       = []string{"email", "mail"}
	// textNameKeywords exempt a column from numeric, date, and outlier rules.
	textNameKeywords = []string{"name", "title", "label", "description", "notes", "remark"}
	// proportionKeywords keep the type check but skip IQR outlier detection,
	// since bounded ratios make the IQR bounds meaningless.
	proportionKeywords = []string{"ratio", "rate", "percent", "proportion", "share"}
)

const (
	datePattern  = `^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`
	emailPattern = `^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`
)

// RuleProposal describes one proposed rule for display to the user.
type RuleProposal struct {
	RuleType    string   `json:"rule_type"`
	Columns     []string `json:"columns"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Handling    string   `json:"handling"`
}

// InferredRules is the output of column-name rule inference: the effective
// scanner configuration plus display material for a rule-confirmation view.
type InferredRules struct {
	RequiredColumns     []string          `json:"required_columns"`
	NumericColumns      []string          `json:"numeric_columns"`
	CompositeKeyColumns []string          `json:"composite_key_columns"`
	OutlierColumns      []string          `json:"outlier_columns"`
	PatternColumns      map[string]string `json:"pattern_columns"`
	Constraints         []scan.Constraint `json:"constraints"`
	Proposed            []RuleProposal    `json:"proposed_rules"`
}

// ScanConfig converts the inferred rules into a scanner configuration.
func (r InferredRules) ScanConfig() scan.Config {
	return scan.Config{
		CompositeKeyColumns: r.CompositeKeyColumns,
		NumericColumns:      r.NumericColumns,
		OutlierColumns:      r.OutlierColumns,
		PatternColumns:      r.PatternColumns,
		Constraints:         r.Constraints,
	}
}

// InferRules proposes a scanner configuration from the merged table's column
// names. Pure policy: the scanner never depends on how its configuration was
// chosen, so this layer can be replaced wholesale.
func InferRules(baseColumns []string) InferredRules {
	out := InferredRules{
		RequiredColumns: append([]string{}, baseColumns...),
		PatternColumns:  map[string]string{},
		Constraints:     []scan.Constraint{},
		Proposed:        []RuleProposal{},
	}
	out.NumericColumns = presentDefaults(defaultNumericColumns, baseColumns)
	out.CompositeKeyColumns = presentDefaults(defaultCompositeKeyColumns, baseColumns)
	out.OutlierColumns = []string{}

	for _, col := range baseColumns {
		name := strings.ToLower(strings.TrimSpace(col))
		if containsAny(name, textNameKeywords) {
			continue
		}
		if containsAny(name, outlierKeywords) {
			appendUnique(&out.NumericColumns, col)
			if !containsAny(name, proportionKeywords) {
				appendUnique(&out.OutlierColumns, col)
			}
		}
		if containsAny(name, numericTypeKeywords) {
			appendUnique(&out.NumericColumns, col)
		}
		if containsAny(name, dateKeywords) {
			out.PatternColumns[col] = datePattern
			out.Proposed = append(out.Proposed, RuleProposal{
				RuleType:    "pattern",
				Columns:     []string{col},
				Description: fmt.Sprintf("%q date format consistency", col),
				Severity:    string(scan.SeverityBusiness),
				Handling:    "normalize to YYYY-MM-DD or YYYY/MM/DD; non-dates (e.g. TBD, n/a) will be flagged",
			})
		}
		if containsAny(name, emailKeywords) {
			out.PatternColumns[col] = emailPattern
			out.Proposed = append(out.Proposed, RuleProposal{
				RuleType:    "pattern",
				Columns:     []string{col},
				Description: fmt.Sprintf("%q email format validation", col),
				Severity:    string(scan.SeverityBusiness),
				Handling:    "values must look like an email address",
			})
		}
	}

	for _, col := range out.OutlierColumns {
		out.Proposed = append(out.Proposed, RuleProposal{
			RuleType:    "outlier",
			Columns:     []string{col},
			Description: fmt.Sprintf("%q outlier monitoring", col),
			Severity:    string(scan.SeverityBusiness),
			Handling:    "confirm or correct values outside the column's normal range",
		})
	}

	return out
}

// presentDefaults keeps the default columns that actually exist, matching
// case-insensitively and returning the header's own spelling.
func presentDefaults(defaults, baseColumns []string) []string {
	out := []string{}
	for _, d := range defaults {
		for _, c := range baseColumns {
			if strings.EqualFold(strings.TrimSpace(c), d) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func appendUnique(list *[]string, col string) {
	for _, c := range *list {
		if c == col {
			return
		}
	}
	*list = append(*list, col)
}
