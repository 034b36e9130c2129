package table

import (
	"math"
	"strconv"
	"strings"
)

// nullTokens are strings treated as empty regardless of case.
// "nan" survives round-trips through spreadsheet tooling, "null" through JSON.
var nullTokens = map[string]struct{}{
	"nan":  {},
	"null": {},
}

// IsEmptyString reports whether the string carries no value: blank after
// trimming, or a known null token.
func IsEmptyString(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	_, ok := nullTokens[strings.ToLower(trimmed)]
	return ok
}

// IsEmpty reports whether the cell carries no value.
func IsEmpty(c Cell) bool {
	return c.Absent || IsEmptyString(c.Value)
}

// ParseFloat parses a cell value as a number. A trailing "%" is accepted as
// percentage notation: "50%" parses to 50.0. NaN and infinities are rejected
// so downstream statistics stay finite.
func ParseFloat(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	if strings.HasSuffix(trimmed, "%") {
		body := strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
		if f, err := strconv.ParseFloat(body, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

// CellFloat parses the cell as a number. Empty cells never parse.
func CellFloat(c Cell) (float64, bool) {
	if IsEmpty(c) {
		return 0, false
	}
	return ParseFloat(c.Value)
}

// IsNumericCell reports whether a cell is acceptable for a numeric column:
// empty cells pass, everything else must parse as a number.
func IsNumericCell(c Cell) bool {
	if IsEmpty(c) {
		return true
	}
	_, ok := ParseFloat(c.Value)
	return ok
}
