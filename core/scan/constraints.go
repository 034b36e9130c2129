package scan

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"table-steward/core/table"
)

// checkPatterns flags non-empty cells whose trimmed value fails a partial
// match against the configured expression. An expression that does not
// compile is a configuration error and silently skips its column.
func checkPatterns(t *table.Table, patterns map[string]string) []Defect {
	var out []Defect
	for _, col := range sortedKeys(patterns) {
		cells, ok := t.Column(col)
		if !ok {
			continue
		}
		re, err := regexp.Compile(patterns[col])
		if err != nil {
			continue
		}
		for row, c := range cells {
			if table.IsEmpty(c) {
				continue
			}
			if !re.MatchString(strings.TrimSpace(c.Value)) {
				out = append(out, Defect{
					RowIndex: row,
					Column:   col,
					Kind:     KindPatternMismatch,
					Severity: SeverityBusiness,
					Message:  fmt.Sprintf("value does not match expected format (pattern: %s)", truncate(patterns[col], 30)),
				})
			}
		}
	}
	return out
}

// checkConstraints evaluates cross-column numeric rules. A row where either
// side fails to parse is vacuously compliant.
func checkConstraints(t *table.Table, constraints []Constraint) []Defect {
	var out []Defect
	for _, con := range constraints {
		if con.Left == "" || con.Right == "" {
			continue
		}
		leftCol, lok := t.Column(con.Left)
		rightCol, rok := t.Column(con.Right)
		if !lok || !rok {
			continue
		}
		for row := 0; row < t.RowCount(); row++ {
			lv, lok := table.CellFloat(leftCol[row])
			rv, rok := table.CellFloat(rightCol[row])
			if !lok || !rok {
				continue
			}
			if !evalConstraint(lv, con.Op, rv) {
				out = append(out, Defect{
					RowIndex: row,
					Column:   con.Left + " vs " + con.Right,
					Kind:     KindConstraintViolation,
					Severity: SeverityBusiness,
					Message:  fmt.Sprintf("%q should satisfy %s against %q", con.Left, con.Op, con.Right),
				})
			}
		}
	}
	return out
}

// evalConstraint returns true when the constraint holds. Unknown operators
// hold vacuously: a misconfigured rule must not raise defects.
func evalConstraint(left float64, op string, right float64) bool {
	switch op {
	case ">":
		return left > right
	case "<":
		return left < right
	case ">=":
		return left >= right
	case "<=":
		return left <= right
	case "=", "==":
		return left == right
	default:
		return true
	}
}

// sortedKeys gives the pattern map a deterministic evaluation order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
